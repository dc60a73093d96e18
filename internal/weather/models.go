package weather

import (
	"fmt"
	"strings"
)

// Condition represents a normalized high-level weather condition label.
type Condition string

const (
	ConditionUnknown     Condition = "unknown"
	ConditionVeryWet     Condition = "very wet"
	ConditionVeryHot     Condition = "very hot"
	ConditionVeryCold    Condition = "very cold"
	ConditionVeryWindy   Condition = "very windy"
	ConditionVeryHumid   Condition = "very humid"
	ConditionComfortable Condition = "comfortable"
)

// Tier identifies which upstream strategy answers a query, decided purely by
// how far the query date lies from today.
type Tier int

const (
	TierHistorical Tier = iota
	TierNearFuture
	TierFarFuture
)

func (t Tier) String() string {
	switch t {
	case TierHistorical:
		return "historical"
	case TierNearFuture:
		return "near-future"
	case TierFarFuture:
		return "far-future"
	default:
		return "unknown"
	}
}

// Provenance tags recorded in Result.SourceTag. Successful resolutions carry
// the long form; failure paths carry the short name of the stage that failed.
const (
	SourceHistorical = "NASA POWER (Historical)"
	SourceForecast   = "Open-Meteo (Forecast)"
	SourcePredicted  = "Predicted via NASA Trend Model"

	SourceGeocodingFailure  = "Geocoding"
	SourceHistoricalFailure = "NASA POWER"
	SourceForecastFailure   = "Open-Meteo"
	SourceTrendFailure      = "Trend Prediction"
	SourceNone              = "N/A"
)

// ErrorKind classifies a terminal resolution failure.
type ErrorKind string

const (
	ErrInvalidInput          ErrorKind = "invalid_input"
	ErrLocationNotFound      ErrorKind = "location_not_found"
	ErrDataUnavailable       ErrorKind = "data_unavailable"
	ErrInsufficientTrendData ErrorKind = "insufficient_trend_data"
	ErrTransportFailure      ErrorKind = "transport_failure"
)

// ResolutionError is the typed failure attached to a Result. It never crosses
// the Resolve boundary as a raised error; callers inspect Result.Err.
type ResolutionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Coordinates is an immutable latitude/longitude pair produced once per query
// by the geocoding resolver.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationQuery identifies the place a query asks about: either a single
// free-text string or a structured city/state/country triple.
type LocationQuery struct {
	Freeform string
	City     string
	State    string
	Country  string
}

// IsZero reports whether the query carries no usable location input.
func (q LocationQuery) IsZero() bool {
	return strings.TrimSpace(q.Freeform) == "" && strings.TrimSpace(q.City) == ""
}

// Display returns the human-readable form echoed back in results.
func (q LocationQuery) Display() string {
	if s := strings.TrimSpace(q.Freeform); s != "" {
		return s
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{q.City, q.State, q.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Observation holds the sanitized values for one day. A nil field means the
// upstream reported a sentinel, an implausible magnitude, or nothing at all;
// that absence propagates instead of being coerced to zero.
type Observation struct {
	TempMax       *float64
	TempMin       *float64
	Precipitation *float64
	Wind          *float64
	Humidity      *float64
}

// Empty reports whether no variable carries a value.
func (o Observation) Empty() bool {
	return o.TempMax == nil && o.TempMin == nil && o.Precipitation == nil &&
		o.Wind == nil && o.Humidity == nil
}

// Result is the structured answer to a single (location, date) query. All
// numeric fields are optional; nil renders as a "not available" marker at the
// presentation boundary. Err is nil on success.
type Result struct {
	Location string `json:"location"`
	Date     string `json:"date"`

	Condition       Condition `json:"condition"`
	TempAvgC        *float64  `json:"tempAvgC"`
	TempF           *float64  `json:"tempF"`
	PrecipitationMM *float64  `json:"precipitationMm"`
	HumidityPct     *float64  `json:"humidityPercent"`
	WindSpeed       *float64  `json:"windSpeed"`

	// SourceTag records which tier/resolution path produced the data.
	SourceTag string `json:"source"`

	Err *ResolutionError `json:"-"`
}
