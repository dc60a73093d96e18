package weather

import (
	"context"
	"errors"
	"sort"
	"time"
)

// trailingWindowDays spans the historical training window: the fetch covers
// today-31 through today-1, the 30 days ending yesterday inclusive.
const trailingWindowDays = 31

// minTrendPoints is the smallest window that still defines a line.
const minTrendPoints = 2

var (
	// errNoTrendData means the window fetch returned no parameter block.
	errNoTrendData = errors.New("no historical data to predict from")
	// errInsufficientTrend means fewer than two valid days survived
	// filtering, so a fit would be degenerate.
	errInsufficientTrend = errors.New("insufficient valid days for trend fit")
)

// linearModel is an ordinary-least-squares line y = slope*x + intercept.
type linearModel struct {
	slope     float64
	intercept float64
}

func (m linearModel) at(x float64) float64 {
	return m.slope*x + m.intercept
}

// fitLine fits a line to the (x, y) pairs by closed-form least squares.
// Callers guarantee at least two points with distinct x values.
func fitLine(xs, ys []float64) linearModel {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return linearModel{intercept: sumY / n}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return linearModel{
		slope:     slope,
		intercept: (sumY - slope*sumX) / n,
	}
}

// trendWindow holds the aligned, sanitized training series. Row i of every
// slice is the same day; its regression x value is i+1.
type trendWindow struct {
	index  []float64
	tmax   []float64
	tmin   []float64
	precip []float64
}

// buildTrendWindow orders the window days, sanitizes every scalar, and drops
// a day entirely when any of the three variables is missing: filtering one
// variable's point drops the same day from all of them so the index stays
// aligned. The regression axis is the row index of kept days, not the
// calendar offset, so gaps from dropped days are compressed.
func buildTrendWindow(series DailySeries) trendWindow {
	tmaxByDate := series[trendVars.TempMax]
	tminByDate := series[trendVars.TempMin]
	precipByDate := series[trendVars.Precipitation]

	dates := make([]string, 0, len(tmaxByDate))
	for d := range tmaxByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var w trendWindow
	for _, d := range dates {
		tmax := Sanitize(tmaxByDate[d])
		tmin := Sanitize(tminByDate[d])
		precip := Sanitize(precipByDate[d])
		if tmax == nil || tmin == nil || precip == nil {
			continue
		}
		w.index = append(w.index, float64(len(w.index)+1))
		w.tmax = append(w.tmax, *tmax)
		w.tmin = append(w.tmin, *tmin)
		w.precip = append(w.precip, *precip)
	}
	return w
}

// extrapolateTrend predicts temp-max, temp-min and precipitation for a date
// beyond the forecast horizon by fitting one line per variable over the
// trailing historical window and evaluating it at N_valid + delta days.
// Wind and humidity are not extrapolated; the window does not carry them.
// A negative precipitation prediction is floored at zero.
func extrapolateTrend(ctx context.Context, provider TimeSeriesProvider, coords Coordinates, targetDate, today time.Time) (Observation, error) {
	end := startOfDay(today).AddDate(0, 0, -1)
	start := startOfDay(today).AddDate(0, 0, -trailingWindowDays)

	series, err := provider.DailyPoint(ctx, coords, start, end, trendVars.list())
	if err != nil {
		return Observation{}, err
	}
	if len(series) == 0 || len(series[trendVars.TempMax]) == 0 {
		return Observation{}, errNoTrendData
	}

	w := buildTrendWindow(series)
	if len(w.index) < minTrendPoints {
		return Observation{}, errInsufficientTrend
	}

	modelTmax := fitLine(w.index, w.tmax)
	modelTmin := fitLine(w.index, w.tmin)
	modelPrecip := fitLine(w.index, w.precip)

	futureIndex := float64(len(w.index) + daysBetween(today, targetDate))
	tmax := modelTmax.at(futureIndex)
	tmin := modelTmin.at(futureIndex)
	precip := modelPrecip.at(futureIndex)
	if precip < 0 {
		precip = 0
	}

	return Observation{
		TempMax:       &tmax,
		TempMin:       &tmin,
		Precipitation: &precip,
	}, nil
}
