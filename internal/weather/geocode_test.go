package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGeocoder answers canned result sets per query string.
type fakeGeocoder struct {
	responses map[string][]GeocodeResult
	err       error
	calls     []string
}

func (f *fakeGeocoder) Search(_ context.Context, query string) ([]GeocodeResult, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[query], nil
}

// mapCache is a minimal CoordinateCache for tests.
type mapCache struct {
	data map[string]Coordinates
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]Coordinates)} }

func (m *mapCache) Get(key string) (Coordinates, bool) {
	c, ok := m.data[key]
	return c, ok
}

func (m *mapCache) Put(key string, coords Coordinates) { m.data[key] = coords }

func TestGeocodeCombinedQueryFirstResultWins(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"Austin, TX, USA": {
			{Latitude: 30.27, Longitude: -97.74, CountryCode: "US", Admin1: "Texas"},
			{Latitude: 44.8, Longitude: -69.0, CountryCode: "US", Admin1: "Maine"},
		},
	}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Austin", State: "tx", Country: "usa"})
	require.NoError(t, err)
	require.NotNil(t, coords)
	require.Equal(t, 30.27, coords.Latitude)
	require.Equal(t, []string{"Austin, TX, USA"}, geo.calls)
}

func TestGeocodeUSAFallbackPrefersStateMatch(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"Springfield": {
			{Latitude: 39.8, Longitude: -89.6, CountryCode: "US", Admin1: "Illinois"},
			{Latitude: 37.2, Longitude: -93.3, CountryCode: "US", Admin1: "MO"},
		},
	}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Springfield", State: "mo", Country: "United States"})
	require.NoError(t, err)
	require.NotNil(t, coords)
	require.Equal(t, 37.2, coords.Latitude)
	require.Equal(t, []string{"Springfield, MO, United States", "Springfield"}, geo.calls)
}

func TestGeocodeFallbackFirstResultWhenNoMatch(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"Springfield": {
			{Latitude: 39.8, Longitude: -89.6, CountryCode: "CA", Admin1: "Ontario"},
			{Latitude: 37.2, Longitude: -93.3, CountryCode: "AU", Admin1: "Victoria"},
		},
	}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Springfield", State: "mo", Country: "usa"})
	require.NoError(t, err)
	require.NotNil(t, coords)
	require.Equal(t, 39.8, coords.Latitude)
}

func TestGeocodeNonUSCountryTitleCased(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"paris, France": {
			{Latitude: 48.85, Longitude: 2.35, CountryCode: "FR"},
		},
	}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "paris", Country: "france"})
	require.NoError(t, err)
	require.NotNil(t, coords)
	require.Equal(t, 48.85, coords.Latitude)
}

func TestGeocodeNonUSFallbackTakesFirstResult(t *testing.T) {
	// The country preference matches upstream codes against the canonical
	// country, which outside the USA is a title-cased full name; a code like
	// "FR" never equals "France", so the first fallback result stands even
	// when a later entry carries the "matching" code.
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"Melbourne": {
			{Latitude: -28.08, Longitude: -80.6, CountryCode: "US", Admin1: "Florida"},
			{Latitude: -37.81, Longitude: 144.96, CountryCode: "AU", Admin1: "Victoria"},
		},
	}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Melbourne", Country: "australia"})
	require.NoError(t, err)
	require.NotNil(t, coords)
	require.Equal(t, -28.08, coords.Latitude)
	require.Equal(t, []string{"Melbourne, Australia", "Melbourne"}, geo.calls)
}

func TestGeocodeNotFound(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Nowhereville", Country: "France"})
	require.NoError(t, err)
	require.Nil(t, coords)
	// Structured queries get exactly one fallback attempt.
	require.Len(t, geo.calls, 2)
}

func TestGeocodeFreeformHasNoFallback(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{}}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{Freeform: "somewhere odd"})
	require.NoError(t, err)
	require.Nil(t, coords)
	require.Equal(t, []string{"somewhere odd"}, geo.calls)
}

func TestGeocodeTransportFailurePropagates(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("connect timeout")}
	r := NewGeocodeResolver(geo, nil)

	coords, err := r.Resolve(context.Background(), LocationQuery{City: "Austin", Country: "USA"})
	require.Error(t, err)
	require.Nil(t, coords)
}

func TestGeocodeCacheSkipsProvider(t *testing.T) {
	geo := &fakeGeocoder{responses: map[string][]GeocodeResult{
		"Lisbon, Portugal": {{Latitude: 38.72, Longitude: -9.14, CountryCode: "PT"}},
	}}
	r := NewGeocodeResolver(geo, newMapCache())
	q := LocationQuery{City: "Lisbon", Country: "portugal"}

	first, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, second)
	require.Equal(t, *first, *second)
	require.Len(t, geo.calls, 1)
}
