package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-fetcher/models"

	log "gopkg.in/inconshreveable/log15.v2"
)

// ErrRequest is returned when the forecast cannot be retrieved or decoded
var ErrRequest = errors.New("forecast request failed")

// OpenWeatherMapSource implements ForecastSource against the 5-day/3-hour endpoint
type OpenWeatherMapSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        log.Logger
}

// NewOpenWeatherMapSource creates a forecast source from the loaded configuration
func NewOpenWeatherMapSource(config *Config, logger log.Logger) *OpenWeatherMapSource {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenWeatherMapSource{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// Name returns the provider name
func (p *OpenWeatherMapSource) Name() string {
	return "OpenWeatherMap"
}

// URL builds the request URL for a city
func (p *OpenWeatherMapSource) URL(city string) string {
	sep := "?"
	if strings.Contains(p.baseURL, "?") {
		sep = "&"
	}
	return p.baseURL + sep + "q=" + url.QueryEscape(city) + "&appid=" + url.QueryEscape(p.apiKey)
}

// FetchForecast fetches the forecast for a city.
// A non-200 answer is logged and yields a nil response without an error.
func (p *OpenWeatherMapSource) FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	p.log.Info(fmt.Sprintf("Fetching weather data for %s.", city))
	start := time.Now()

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(city), nil)
	if err != nil {
		p.log.Error("Request error", "err", err)
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrRequest, err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Error("Request error", "err", err)
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.log.Error("Request error", "err", err)
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrRequest, err)
	}

	// A provider error envelope ends the run without output
	if resp.StatusCode != http.StatusOK {
		p.log.Error(fmt.Sprintf("Error: Received status code %d.", resp.StatusCode))
		p.log.Error(fmt.Sprintf("Message: %s", strings.TrimSpace(string(body))))
		return nil, nil
	}

	// Parse response
	var forecast models.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		p.log.Error("Error decoding forecast response", "err", err)
		return nil, fmt.Errorf("%w: failed to parse response: %w", ErrRequest, err)
	}
	forecast.Raw = body

	p.log.Info("Weather data fetched successfully.", "elapsed", time.Since(start).Round(time.Millisecond))
	return &forecast, nil
}

// Ensure OpenWeatherMapSource implements ForecastSource
var _ ForecastSource = (*OpenWeatherMapSource)(nil)
