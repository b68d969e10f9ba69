package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Snail Kite", "snail-kite"},
		{"Cooper's Hawk", "cooper-s-hawk"},
		{"Black-crowned Night-Heron", "black-crowned-night-heron"},
		{"  Wood Stork  ", "wood-stork"},
		{"Ruff/Reeve (rare)", "ruff-reeve-rare"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlugID(tt.name), "SlugID(%q)", tt.name)
	}
}

func TestAvailableIn(t *testing.T) {
	noMap := Species{ID: "a"}
	assert.True(t, noMap.AvailableIn("Jan"), "species without a month map always passes")

	partial := Species{ID: "b", Months: map[string]bool{"Jun": true, "Jul": false}}
	assert.True(t, partial.AvailableIn("Jun"))
	assert.False(t, partial.AvailableIn("Jul"), "explicit false excludes")
	assert.False(t, partial.AvailableIn("Jan"), "missing key excludes when a map exists")
}

func TestNormalize(t *testing.T) {
	in := []Species{
		{CommonName: "Snail Kite"},                        // no ID: derived
		{ID: "snail-kite", CommonName: "Duplicate Kite"},  // collides: dropped
		{ID: "wood-stork", CommonName: "Wood Stork"},      // kept as-is
		{CommonName: ""},                                  // unidentifiable: dropped
	}
	out := Normalize(in)
	require.Len(t, out, 2)
	assert.Equal(t, "snail-kite", out[0].ID)
	assert.Equal(t, "Snail Kite", out[0].CommonName)
	assert.Equal(t, "wood-stork", out[1].ID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"commonName": "Snail Kite", "family": "Accipitridae"},
		{"id": "wood-stork", "commonName": "Wood Stork"}
	]`), 0o644))

	list := Load(context.Background(), path)
	require.Len(t, list, 2)
	assert.Equal(t, "snail-kite", list[0].ID)
	assert.Equal(t, "wood-stork", list[1].ID)
}

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
	}{
		{"empty source", func(t *testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"malformed json", func(t *testing.T) string {
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))
			return path
		}},
		{"empty array", func(t *testing.T) string {
			path := filepath.Join(t.TempDir(), "empty.json")
			require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
			return path
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := Load(context.Background(), tt.setup(t))
			require.Len(t, list, 1)
			assert.Equal(t, "snail-kite", list[0].ID)
			assert.Equal(t, "Snail Kite", list[0].CommonName)
		})
	}
}

func TestLoadFromHTTP(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://example.org/species.json",
		httpmock.NewStringResponder(200, `[{"commonName": "Snail Kite"}, {"commonName": "Limpkin"}]`))

	list := Load(context.Background(), "https://example.org/species.json")
	require.Len(t, list, 2)
	assert.Equal(t, "limpkin", list[1].ID)
}

func TestLoadHTTPErrorFallsBack(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://example.org/species.json",
		httpmock.NewStringResponder(500, "boom"))

	list := Load(context.Background(), "https://example.org/species.json")
	require.Len(t, list, 1)
	assert.Equal(t, "snail-kite", list[0].ID)
}
