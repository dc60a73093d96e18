package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-resolver/internal/weather"
)

const (
	defaultNASAPowerBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	// NASA POWER keys its per-day values by compact dates (20060102).
	nasaDate = "20060102"
)

// NASAPower implements weather.TimeSeriesProvider over the NASA POWER daily
// point API, the archive behind both the historical tier and the trailing
// regression window.
type NASAPower struct {
	baseURL   string
	community string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewNASAPower creates the historical adapter. baseURL may be empty for the
// production endpoint.
func NewNASAPower(client *http.Client, baseURL string) *NASAPower {
	if baseURL == "" {
		baseURL = defaultNASAPowerBaseURL
	}
	return &NASAPower{
		baseURL:   baseURL,
		community: "RE",
		httpCfg: HTTPClientConfig{
			Client: client,
			// No retry budget, same asymmetry as the forecast adapter.
			Retry: RetryConfig{MaxRetries: 0},
		},
		circuit: newCircuitBreaker("nasa-power"),
	}
}

// DailyPoint fetches the requested daily parameters for the date range. Day
// keys are normalized from NASA's compact form to ISO dates so every series
// in the engine shares one vocabulary for time. A payload without the
// parameter block yields an empty series.
func (p *NASAPower) DailyPoint(ctx context.Context, coords weather.Coordinates, start, end time.Time, variables []string) (weather.DailySeries, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("parameters", joinComma(variables))
		values.Set("community", p.community)
		values.Set("latitude", formatCoord(coords.Latitude))
		values.Set("longitude", formatCoord(coords.Longitude))
		values.Set("start", start.Format(nasaDate))
		values.Set("end", end.Format(nasaDate))
		values.Set("format", "JSON")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Parameter map[string]map[string]any `json:"parameter"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode nasa power response: %w", err)
	}

	series := make(weather.DailySeries, len(payload.Properties.Parameter))
	for name, byDate := range payload.Properties.Parameter {
		normalized := make(map[string]any, len(byDate))
		for day, value := range byDate {
			normalized[normalizeNASADate(day)] = value
		}
		series[name] = normalized
	}
	return series, nil
}

// normalizeNASADate rewrites 20060102 as 2006-01-02, passing through any key
// that is not a compact date.
func normalizeNASADate(day string) string {
	t, err := time.Parse(nasaDate, day)
	if err != nil {
		return day
	}
	return t.Format(isoDate)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinComma(parts []string) string {
	return strings.Join(parts, ",")
}
