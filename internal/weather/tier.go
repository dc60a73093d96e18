package weather

import "time"

// forecastHorizonDays is how far ahead the near-term forecast source reaches.
const forecastHorizonDays = 16

// SelectTier decides which upstream strategy answers a query, purely from the
// day offset between the query date and today:
//
//	delta <= -2            historical archive (a 1-2 day buffer avoids the
//	                       archive's ingest latency for the newest days)
//	-1 <= delta <= 16      near-term forecast, "yesterday" through the horizon
//	delta > 16             beyond the horizon; predicted from trend
func SelectTier(today, queryDate time.Time) Tier {
	switch delta := daysBetween(today, queryDate); {
	case delta <= -2:
		return TierHistorical
	case delta <= forecastHorizonDays:
		return TierNearFuture
	default:
		return TierFarFuture
	}
}

// daysBetween returns queryDate - today in whole calendar days. Both inputs
// are normalized to UTC midnight so wall-clock time never shifts the tier.
func daysBetween(today, queryDate time.Time) int {
	t := startOfDay(today)
	q := startOfDay(queryDate)
	return int(q.Sub(t).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
