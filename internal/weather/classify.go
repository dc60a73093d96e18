package weather

// Classification thresholds, in the units the upstream sources report.
const (
	wetPrecipMM   = 5
	hotTempMaxC   = 32
	coldTempMinC  = 0
	windyWindMax  = 10
	humidPctFloor = 80
)

// Classify maps a sanitized observation to one condition label through a
// fixed priority cascade, first rule wins. The order is deliberate: a day
// that is both very hot and very windy is reported as very hot. Each rule
// only fires when its variable is present, so a partial observation (say a
// sentinel temperature alongside valid precipitation) still classifies on
// whatever survived sanitization.
//
// An all-absent observation (nothing was obtained for the date) classifies
// as unknown, which is distinct from comfortable.
func Classify(obs Observation) Condition {
	if obs.Empty() {
		return ConditionUnknown
	}

	switch {
	case obs.Precipitation != nil && *obs.Precipitation > wetPrecipMM:
		return ConditionVeryWet
	case obs.TempMax != nil && *obs.TempMax > hotTempMaxC:
		return ConditionVeryHot
	case obs.TempMin != nil && *obs.TempMin < coldTempMinC:
		return ConditionVeryCold
	case obs.Wind != nil && *obs.Wind > windyWindMax:
		return ConditionVeryWindy
	case obs.Humidity != nil && *obs.Humidity > humidPctFloor:
		return ConditionVeryHumid
	default:
		return ConditionComfortable
	}
}
