// Package shaper flattens a decoded forecast into the columns written to disk.
package shaper

import (
	"errors"
	"fmt"
	"math"

	"weather-fetcher/models"

	log "gopkg.in/inconshreveable/log15.v2"
)

// KelvinOffset converts Kelvin to Celsius
const KelvinOffset = 273.15

// ErrMissingField matches any *MissingFieldError
var ErrMissingField = errors.New("forecast entry is missing a field")

// MissingFieldError reports the first forecast entry that lacks a required key
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("forecast entry %d is missing %q", e.Index, e.Field)
}

// Is makes errors.Is(err, ErrMissingField) hold
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Shaper turns forecast responses into tables
type Shaper struct {
	log log.Logger
}

// New creates a shaper logging to logger
func New(logger log.Logger) *Shaper {
	return &Shaper{log: logger}
}

// Shape projects every list entry onto date, Celsius temperature and humidity.
// A response without a list yields a nil table and no error.
func (s *Shaper) Shape(resp *models.ForecastResponse) (*models.Table, error) {
	if resp == nil || resp.List == nil {
		s.log.Error("'list' key not found in the API response.")
		if resp != nil {
			s.log.Error(fmt.Sprintf("Response: %s", resp.Raw))
		}
		return nil, nil
	}

	entries := *resp.List
	table := &models.Table{
		Dates:        make([]string, 0, len(entries)),
		Temperatures: make([]float64, 0, len(entries)),
		Humidity:     make([]int, 0, len(entries)),
	}

	for i, entry := range entries {
		if err := validate(i, entry); err != nil {
			s.log.Error("Key error while processing data", "err", err)
			return nil, err
		}
		table.Append(*entry.DtTxt, *entry.Main.Temp-KelvinOffset, int(math.Round(*entry.Main.Humidity)))
	}

	s.log.Info("Weather data processed successfully.", "rows", len(entries))
	return table, nil
}

func validate(i int, entry models.ForecastEntry) error {
	switch {
	case entry.DtTxt == nil:
		return &MissingFieldError{Index: i, Field: "dt_txt"}
	case entry.Main == nil:
		return &MissingFieldError{Index: i, Field: "main"}
	case entry.Main.Temp == nil:
		return &MissingFieldError{Index: i, Field: "main.temp"}
	case entry.Main.Humidity == nil:
		return &MissingFieldError{Index: i, Field: "main.humidity"}
	}
	return nil
}
