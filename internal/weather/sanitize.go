package weather

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// sentinelFloor matches the upstream missing-data convention: values at
	// or below -900 (typically -999) stand in for "no measurement".
	sentinelFloor = -900

	// plausibleMax bounds accepted magnitudes against corrupt payloads.
	plausibleMax = 1e6
)

// Sanitize converts a raw upstream scalar to a clean float. It returns nil
// when the value is not parseable as a number, is a missing-data sentinel
// (<= -900), or has an implausible magnitude (|v| > 1e6). Every scalar pulled
// from an upstream payload passes through here before entering the model.
func Sanitize(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return checkRange(v)
	case float32:
		return checkRange(float64(v))
	case int:
		return checkRange(float64(v))
	case int64:
		return checkRange(float64(v))
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil
		}
		return checkRange(n)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return checkRange(n)
	default:
		return nil
	}
}

func checkRange(n float64) *float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	if n <= sentinelFloor || math.Abs(n) > plausibleMax {
		return nil
	}
	return &n
}
