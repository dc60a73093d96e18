package weather

import (
	"context"
	"time"
)

// GeocodeResult is one candidate returned by a geocoding lookup.
type GeocodeResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
}

// GeocodingProvider abstracts a free-text place search. An empty result slice
// with a nil error is a valid "not found" answer, not a fault.
type GeocodingProvider interface {
	Search(ctx context.Context, query string) ([]GeocodeResult, error)
}

// DailySeries maps a variable name to its per-day raw scalars, keyed by ISO
// calendar date (2006-01-02). Values stay untyped until the sanitizer runs.
type DailySeries map[string]map[string]any

// TimeSeriesProvider abstracts a daily point time-series source. The
// historical and forecast upstreams both satisfy it; they differ only in
// variable vocabulary and horizon.
type TimeSeriesProvider interface {
	DailyPoint(ctx context.Context, coords Coordinates, start, end time.Time, variables []string) (DailySeries, error)
}

// variableSet names the five engine variables in one upstream's vocabulary.
type variableSet struct {
	TempMax       string
	TempMin       string
	Precipitation string
	Wind          string
	Humidity      string
}

func (v variableSet) list() []string {
	names := []string{v.TempMax, v.TempMin, v.Precipitation}
	if v.Wind != "" {
		names = append(names, v.Wind)
	}
	if v.Humidity != "" {
		names = append(names, v.Humidity)
	}
	return names
}

// historicalVars is the NASA POWER daily point vocabulary.
var historicalVars = variableSet{
	TempMax:       "T2M_MAX",
	TempMin:       "T2M_MIN",
	Precipitation: "PRECTOTCORR",
	Wind:          "WS2M",
	Humidity:      "RH2M",
}

// forecastVars is the Open-Meteo daily forecast vocabulary.
var forecastVars = variableSet{
	TempMax:       "temperature_2m_max",
	TempMin:       "temperature_2m_min",
	Precipitation: "precipitation_sum",
	Wind:          "windspeed_10m_max",
	Humidity:      "relative_humidity_2m_max",
}

// trendVars is the subset fetched for the trailing regression window; wind
// and humidity are not carried in that tier.
var trendVars = variableSet{
	TempMax:       "T2M_MAX",
	TempMin:       "T2M_MIN",
	Precipitation: "PRECTOTCORR",
}
