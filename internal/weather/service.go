package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Resolver composes geocoding, tier selection, the per-tier fetch strategies
// and the condition classifier into one Resolve call. Today's date and every
// upstream client are injected, so tests run with a fixed clock and fakes.
type Resolver struct {
	geocoder   *GeocodeResolver
	historical TimeSeriesProvider
	forecast   TimeSeriesProvider
	now        func() time.Time
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithClock replaces the wall clock, fixing what "today" means.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver over the given geocoder and the historical
// and forecast time-series providers.
func NewResolver(geocoder *GeocodeResolver, historical, forecast TimeSeriesProvider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		geocoder:   geocoder,
		historical: historical,
		forecast:   forecast,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve answers "what will the weather be like at loc on dateStr". It
// never panics or returns a raised error: every failure path produces a
// Result with condition unknown, all numeric fields absent, a provenance tag
// naming the stage that failed, and a typed Err.
func (r *Resolver) Resolve(ctx context.Context, loc LocationQuery, dateStr string) Result {
	queryID := uuid.NewString()
	result := Result{
		Location: loc.Display(),
		Date:     dateStr,
	}

	if loc.IsZero() || dateStr == "" {
		return failed(result, ErrInvalidInput, "location and date are required", SourceNone)
	}
	queryDate, err := time.Parse(isoDate, dateStr)
	if err != nil {
		return failed(result, ErrInvalidInput, "date must be formatted as YYYY-MM-DD", SourceNone)
	}

	coords, err := r.geocoder.Resolve(ctx, loc)
	if err != nil {
		log.Printf("ERROR: query %s: geocoding failed: %v", queryID, err)
		return failed(result, ErrTransportFailure, "geocoding failed after retries", SourceGeocodingFailure)
	}
	if coords == nil {
		log.Printf("DEBUG: query %s: no coordinates for %q", queryID, result.Location)
		return failed(result, ErrLocationNotFound, "location not found", SourceGeocodingFailure)
	}

	today := startOfDay(r.now())
	tier := SelectTier(today, queryDate)
	log.Printf("DEBUG: query %s: %q %s -> tier %s", queryID, result.Location, dateStr, tier)

	var obs Observation
	switch tier {
	case TierHistorical:
		obs, err = fetchHistorical(ctx, r.historical, *coords, queryDate)
		if err != nil {
			log.Printf("ERROR: query %s: historical fetch failed: %v", queryID, err)
			return failed(result, ErrDataUnavailable, "historical data not available", SourceHistoricalFailure)
		}
		if obs.Empty() {
			return failed(result, ErrDataUnavailable, "no historical data for that date", SourceHistoricalFailure)
		}
		result.SourceTag = SourceHistorical

	case TierNearFuture:
		obs, err = fetchForecast(ctx, r.forecast, *coords, queryDate)
		if err != nil {
			log.Printf("ERROR: query %s: forecast fetch failed: %v", queryID, err)
			return failed(result, ErrDataUnavailable, "forecast data not available", SourceForecastFailure)
		}
		if obs.Empty() {
			return failed(result, ErrDataUnavailable, "no forecast data for that date", SourceForecastFailure)
		}
		result.SourceTag = SourceForecast

	case TierFarFuture:
		obs, err = extrapolateTrend(ctx, r.historical, *coords, queryDate, today)
		switch {
		case errors.Is(err, errInsufficientTrend):
			return failed(result, ErrInsufficientTrendData, "insufficient historical data to fit a trend", SourceTrendFailure)
		case errors.Is(err, errNoTrendData):
			return failed(result, ErrDataUnavailable, "no data to predict future weather", SourceTrendFailure)
		case err != nil:
			log.Printf("ERROR: query %s: trend window fetch failed: %v", queryID, err)
			return failed(result, ErrDataUnavailable, "trend window not available", SourceTrendFailure)
		}
		result.SourceTag = SourcePredicted
	}

	result.TempAvgC = tempAverage(obs)
	if result.TempAvgC != nil {
		f := *result.TempAvgC*9/5 + 32
		result.TempF = &f
	}
	result.PrecipitationMM = obs.Precipitation
	result.HumidityPct = obs.Humidity
	result.WindSpeed = obs.Wind
	result.Condition = Classify(obs)

	return result
}

// tempAverage is (max+min)/2 when both bounds are present, the single bound
// when only one is, and absent otherwise. Never fabricated.
func tempAverage(obs Observation) *float64 {
	switch {
	case obs.TempMax != nil && obs.TempMin != nil:
		avg := (*obs.TempMax + *obs.TempMin) / 2
		return &avg
	case obs.TempMax != nil:
		return obs.TempMax
	default:
		return obs.TempMin
	}
}

func failed(res Result, kind ErrorKind, msg, tag string) Result {
	res.Condition = ConditionUnknown
	res.SourceTag = tag
	res.Err = &ResolutionError{Kind: kind, Message: msg}
	return res
}
