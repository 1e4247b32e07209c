package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daylog.dev/backend/internal/model"
)

func testStaticMap() *StaticMap {
	return &StaticMap{baseURL: "https://maps.example.com/static"}
}

func parseMapURL(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestMapForPoints(t *testing.T) {
	t.Parallel()

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		assert.False(t, testStaticMap().MapForPoints(nil).Valid)
	})

	t.Run("SinglePoint", func(t *testing.T) {
		t.Parallel()
		got := testStaticMap().MapForPoints([]model.Coordinates{{Latitude: 35.6812, Longitude: 139.7671}})
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		assert.Equal(t, "35.68120,139.76710", q.Get("path"))
		assert.Equal(t, []string{"35.68120,139.76710"}, q["markers"])
	})

	t.Run("DistantPointsKeepIndividualMarkers", func(t *testing.T) {
		t.Parallel()
		got := testStaticMap().MapForPoints([]model.Coordinates{
			{Latitude: 35.68, Longitude: 139.76},
			{Latitude: 35.70, Longitude: 139.80},
			{Latitude: 35.60, Longitude: 139.70},
		})
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		assert.Len(t, q["markers"], 3)
		assert.Equal(t, "35.68000,139.76000|35.70000,139.80000|35.60000,139.70000", q.Get("path"))
	})

	t.Run("NearbyPointsCluster", func(t *testing.T) {
		t.Parallel()
		// two venues a block apart next to one across town: the pair collapses
		// into a single numbered marker, the outlier keeps its own
		got := testStaticMap().MapForPoints([]model.Coordinates{
			{Latitude: 35.6800, Longitude: 139.7600},
			{Latitude: 35.6801, Longitude: 139.7601},
			{Latitude: 35.7500, Longitude: 139.9000},
		})
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		require.Len(t, q["markers"], 2)
		assert.Equal(t, "35.68000,139.76000,2", q["markers"][0])
		assert.Equal(t, "35.75000,139.90000", q["markers"][1])
	})
}

func TestMapForTrack(t *testing.T) {
	t.Parallel()

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		assert.False(t, testStaticMap().MapForTrack("").Valid)
	})

	t.Run("Polyline", func(t *testing.T) {
		t.Parallel()
		got := testStaticMap().MapForTrack("_p~iF~ps|U_ulLnnqC")
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC", q.Get("polyline"))
		assert.Empty(t, q["markers"])
	})
}

func TestMapForTrackWithPoints(t *testing.T) {
	t.Parallel()

	t.Run("PolylineAndMarkers", func(t *testing.T) {
		t.Parallel()
		got := testStaticMap().MapForTrackWithPoints("_p~iF~ps|U_ulLnnqC", []model.Coordinates{
			{Latitude: 38.5, Longitude: -120.2},
		})
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC", q.Get("polyline"))
		assert.Equal(t, []string{"38.50000,-120.20000"}, q["markers"])
	})

	t.Run("EmptyPolylineFallsBackToPoints", func(t *testing.T) {
		t.Parallel()
		got := testStaticMap().MapForTrackWithPoints("", []model.Coordinates{
			{Latitude: 1, Longitude: 2},
		})
		require.True(t, got.Valid)

		q := parseMapURL(t, got.String)
		assert.Empty(t, q.Get("polyline"))
		assert.Equal(t, "1.00000,2.00000", q.Get("path"))
	})
}
