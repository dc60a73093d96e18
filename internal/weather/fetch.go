package weather

import (
	"context"
	"time"
)

const isoDate = "2006-01-02"

// fetchHistorical pulls the five engine variables for a single past date from
// the historical archive. A payload without the expected parameter block
// yields an all-absent observation, not an error; only transport faults
// surface as errors and those are never retried here.
func fetchHistorical(ctx context.Context, provider TimeSeriesProvider, coords Coordinates, date time.Time) (Observation, error) {
	series, err := provider.DailyPoint(ctx, coords, date, date, historicalVars.list())
	if err != nil {
		return Observation{}, err
	}
	return observationFromSeries(series, date, historicalVars), nil
}

// fetchForecast pulls the same variables for a single date within the
// forecast horizon. Missing-block handling matches fetchHistorical.
func fetchForecast(ctx context.Context, provider TimeSeriesProvider, coords Coordinates, date time.Time) (Observation, error) {
	series, err := provider.DailyPoint(ctx, coords, date, date, forecastVars.list())
	if err != nil {
		return Observation{}, err
	}
	return observationFromSeries(series, date, forecastVars), nil
}

// observationFromSeries extracts the target date from a raw series in the
// given vocabulary, sanitizing every scalar on the way in.
func observationFromSeries(series DailySeries, date time.Time, vars variableSet) Observation {
	key := date.Format(isoDate)
	pick := func(name string) *float64 {
		if name == "" {
			return nil
		}
		byDate, ok := series[name]
		if !ok {
			return nil
		}
		return Sanitize(byDate[key])
	}

	return Observation{
		TempMax:       pick(vars.TempMax),
		TempMin:       pick(vars.TempMin),
		Precipitation: pick(vars.Precipitation),
		Wind:          pick(vars.Wind),
		Humidity:      pick(vars.Humidity),
	}
}
