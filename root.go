package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"text/tabwriter"
	"time"

	"weather-fetcher/collector"
	"weather-fetcher/console"
	"weather-fetcher/datasource"
	"weather-fetcher/export"
	"weather-fetcher/logging"
	"weather-fetcher/selector"
	"weather-fetcher/telemetry"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const loggerName = "WeatherFetcher"

type options struct {
	configFile string
	output     string
	logFile    string
	logLevel   string
	city       string
	precision  int
	timeout    time.Duration
	zipkinURL  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "weather-fetcher",
		Short:         "Fetch a city forecast and save it as CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "config.json", "Path to configuration file")
	flags.StringVar(&opts.output, "output", "weather_data.csv", "Path of the CSV file to write")
	flags.StringVar(&opts.logFile, "log-file", "weather_app.log", "Path of the rotating log file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warning, error)")
	flags.StringVar(&opts.city, "city", "", "Configured city to fetch instead of prompting")
	flags.IntVar(&opts.precision, "precision", export.DefaultPrecision, "Temperature decimals, negative rounds to 10 places and trims zeros")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout, overrides the configuration")
	flags.StringVar(&opts.zipkinURL, "zipkin-url", "", "Zipkin span endpoint, tracing is off when empty")

	cmd.AddCommand(newShowCmd())
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		console.New(cmd.ErrOrStderr()).Warn("Warning: Error loading .env file: %v", err)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := logging.Setup(loggerName, opts.logFile, level)
	defer logging.Close()

	shutdown, err := telemetry.Setup(opts.zipkinURL, "weather-fetcher")
	if err != nil {
		logger.Error("Tracing setup failed", "err", err)
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("Tracing shutdown failed", "err", err)
		}
	}()

	config, err := datasource.LoadConfig(opts.configFile)
	if err != nil {
		switch {
		case errors.Is(err, datasource.ErrConfigNotFound):
			logger.Error(fmt.Sprintf("Configuration file %s not found.", opts.configFile))
		default:
			logger.Error(fmt.Sprintf("Error decoding configuration file: %v", err))
		}
		return err
	}
	logger.Info("Configuration file loaded successfully.", "path", opts.configFile)
	if opts.timeout > 0 {
		config.Timeout = opts.timeout
	}

	sel := selector.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	var city string
	if opts.city != "" {
		city, err = sel.Resolve(config, opts.city)
	} else {
		city, err = sel.Choose(config)
	}
	if err != nil {
		return err
	}

	source := datasource.NewOpenWeatherMapSource(config, logger)
	dc := collector.NewDataCollector(source, opts.output, logger)
	dc.SetPrecision(opts.precision)

	res, err := dc.Run(cmd.Context(), city)
	if err != nil {
		return err
	}

	out := console.New(cmd.OutOrStdout())
	if res.Skipped {
		out.Warn("No forecast data saved for %s, see %s.", city, opts.logFile)
		return nil
	}
	out.Info("Weather data saved to '%s' (%d rows).", res.Path, res.Rows)
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print a saved forecast CSV as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "weather_data.csv"
			if len(args) == 1 {
				path = args[0]
			}

			table, err := export.ReadCSV(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTEMPERATURE (°C)\tHUMIDITY (%)")
			for i := 0; i < table.Len(); i++ {
				fmt.Fprintf(w, "%s\t%.2f\t%d\n", table.Dates[i], table.Temperatures[i], table.Humidity[i])
			}
			return w.Flush()
		},
	}
}
