package collector

import (
	"context"
	"fmt"

	"weather-fetcher/datasource"
	"weather-fetcher/export"
	"weather-fetcher/shaper"

	"github.com/pborman/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	log "gopkg.in/inconshreveable/log15.v2"
)

// State is a stage of a single collection run
type State int

const (
	StateStart State = iota
	StateFetched
	StateShaped
	StateWritten
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateFetched:
		return "fetched"
	case StateShaped:
		return "shaped"
	case StateWritten:
		return "written"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result describes how a run ended
type Result struct {
	RunID string
	State State
	// Skipped is set when the provider gave nothing worth writing
	Skipped bool
	Rows    int
	Path    string
}

// DataCollector fetches one forecast, flattens it and writes it to a CSV file
type DataCollector struct {
	source    datasource.ForecastSource
	shaper    *shaper.Shaper
	output    string
	precision int
	log       log.Logger
	tracer    trace.Tracer
}

// NewDataCollector creates a collector writing to output
func NewDataCollector(source datasource.ForecastSource, output string, logger log.Logger) *DataCollector {
	return &DataCollector{
		source:    source,
		shaper:    shaper.New(logger),
		output:    output,
		precision: export.DefaultPrecision,
		log:       logger,
		tracer:    otel.Tracer("weather-fetcher/collector"),
	}
}

// SetPrecision changes the number of temperature decimals written
func (dc *DataCollector) SetPrecision(precision int) {
	dc.precision = precision
}

// Run performs fetch, shape and write for city. A missing response or a
// response without forecast entries ends the run early without error.
func (dc *DataCollector) Run(ctx context.Context, city string) (Result, error) {
	res := Result{RunID: uuid.New(), State: StateStart, Path: dc.output}

	ctx, span := dc.tracer.Start(ctx, "collect-forecast", trace.WithAttributes(
		attribute.String("run.id", res.RunID),
		attribute.String("city", city),
		attribute.String("source", dc.source.Name()),
	))
	defer span.End()

	dc.log.Info("Run started", "run", res.RunID, "source", dc.source.Name())

	fail := func(err error) (Result, error) {
		dc.log.Error(fmt.Sprintf("An error occurred during execution: %v", err), "state", res.State)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		res.State = StateFailed
		return res, err
	}

	fetchCtx, fetchSpan := dc.tracer.Start(ctx, "fetch")
	resp, err := dc.source.FetchForecast(fetchCtx, city)
	fetchSpan.End()
	if err != nil {
		return fail(err)
	}
	res.State = StateFetched
	if resp == nil {
		return dc.skip(res, span)
	}

	_, shapeSpan := dc.tracer.Start(ctx, "shape")
	table, err := dc.shaper.Shape(resp)
	shapeSpan.End()
	if err != nil {
		return fail(err)
	}
	res.State = StateShaped
	if table == nil {
		return dc.skip(res, span)
	}

	_, writeSpan := dc.tracer.Start(ctx, "write")
	err = export.WriteCSV(table, dc.output, dc.precision)
	writeSpan.End()
	if err != nil {
		dc.log.Error("Error saving data to CSV", "path", dc.output, "err", err)
		return fail(err)
	}
	res.State = StateWritten
	res.Rows = table.Len()
	dc.log.Info(fmt.Sprintf("Weather data saved to %s.", dc.output), "rows", res.Rows)

	res.State = StateDone
	span.SetAttributes(attribute.Int("rows", res.Rows))
	return res, nil
}

func (dc *DataCollector) skip(res Result, span trace.Span) (Result, error) {
	dc.log.Warn("No forecast data to save", "state", res.State)
	span.SetAttributes(attribute.Bool("skipped", true))
	res.State = StateDone
	res.Skipped = true
	return res, nil
}
