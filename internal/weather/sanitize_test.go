package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeNumbers(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"float", 21.5, 21.5},
		{"negative float", -40.0, -40.0},
		{"int", 7, 7},
		{"numeric string", "3.25", 3.25},
		{"padded string", "  12 ", 12},
		{"json number", json.Number("88.1"), 88.1},
		{"just above sentinel", -899.9, -899.9},
		{"at plausible bound", 1e6, 1e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.raw)
			require.NotNil(t, got)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestSanitizeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"sentinel -999", -999.0},
		{"sentinel boundary -900", -900.0},
		{"sentinel string", "-999"},
		{"implausible magnitude", 1e6 + 1},
		{"implausible negative", -2e6},
		{"garbage string", "n/a"},
		{"empty string", ""},
		{"bool", true},
		{"object", map[string]any{"v": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Nil(t, Sanitize(tt.raw))
		})
	}
}
