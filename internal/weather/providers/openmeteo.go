package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-resolver/internal/weather"
)

const (
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastBaseURL  = "https://api.open-meteo.com/v1/forecast"

	isoDate = "2006-01-02"
)

// geocodeAttempts is how many sequential tries a single lookup gets on
// transport failure. Retries are immediate; empty result sets are a valid
// "not found" answer and never retried.
const geocodeAttempts = 3

// OpenMeteoGeocoder implements weather.GeocodingProvider over the Open-Meteo
// geocoding search API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates the geocoding adapter. baseURL may be empty
// for the production endpoint; tests point it at a local server.
func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = defaultGeocodingBaseURL
	}
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Retry:  RetryConfig{MaxRetries: geocodeAttempts - 1},
		},
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

// Search looks up a free-text place name. A nil error with an empty slice
// means the upstream found nothing.
func (p *OpenMeteoGeocoder) Search(ctx context.Context, query string) ([]weather.GeocodeResult, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", "10")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []weather.GeocodeResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}
	return payload.Results, nil
}

// OpenMeteoForecast implements weather.TimeSeriesProvider over the Open-Meteo
// daily forecast API, which covers roughly 16 days ahead.
type OpenMeteoForecast struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoForecast creates the forecast adapter. baseURL may be empty
// for the production endpoint.
func NewOpenMeteoForecast(client *http.Client, baseURL string) *OpenMeteoForecast {
	if baseURL == "" {
		baseURL = defaultForecastBaseURL
	}
	return &OpenMeteoForecast{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			// No retry budget: a single transport failure here is reported
			// upward as "no data", only geocoding retries.
			Retry: RetryConfig{MaxRetries: 0},
		},
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

// DailyPoint fetches the requested daily variables for the date range and
// returns them keyed by variable name and ISO date. A payload without the
// daily block yields an empty series.
func (p *OpenMeteoForecast) DailyPoint(ctx context.Context, coords weather.Coordinates, start, end time.Time, variables []string) (weather.DailySeries, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(coords.Latitude))
		values.Set("longitude", formatCoord(coords.Longitude))
		values.Set("daily", joinComma(variables))
		values.Set("timezone", "auto")
		values.Set("start_date", start.Format(isoDate))
		values.Set("end_date", end.Format(isoDate))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily map[string]json.RawMessage `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	series := make(weather.DailySeries)
	if payload.Daily == nil {
		return series, nil
	}

	var dates []string
	if raw, ok := payload.Daily["time"]; ok {
		if err := json.Unmarshal(raw, &dates); err != nil {
			return nil, fmt.Errorf("decode forecast dates: %w", err)
		}
	}

	for _, name := range variables {
		raw, ok := payload.Daily[name]
		if !ok {
			continue
		}
		var values []any
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("decode forecast variable %s: %w", name, err)
		}

		byDate := make(map[string]any, len(values))
		for i, date := range dates {
			if i >= len(values) {
				break
			}
			byDate[date] = values[i]
		}
		series[name] = byDate
	}
	return series, nil
}
