package datasource

import (
	"context"

	"weather-fetcher/models"
)

// ForecastSource defines the interface for any forecast provider.
// A nil response with a nil error means the provider answered without usable
// data and the run should end quietly.
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error)
}
