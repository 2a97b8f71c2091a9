package location

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tracklog/internal/geo"
	"github.com/ayoisaiah/tracklog/internal/track"
)

var start = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

func elev(v float64) *float64 {
	return &v
}

func samplePoints() []track.Point {
	return []track.Point{
		track.NewPoint(1, 2, elev(10), start),
		track.NewPoint(1.01, 2, nil, start.Add(36*time.Second)),
		track.NewPoint(1.02, 2.01, elev(12.5), start.Add(72*time.Second)),
	}
}

func TestFixed(t *testing.T) {
	f := Fixed{Lat: 6.5, Lon: 3.4}

	lat, lon, ok := f.Position()
	assert.True(t, ok)
	assert.InDelta(t, 6.5, lat, 1e-9)
	assert.InDelta(t, 3.4, lon, 1e-9)

	_, ok = f.Speed()
	assert.False(t, ok)

	_, ok = f.Elevation()
	assert.False(t, ok)
}

func TestReplay(t *testing.T) {
	r, err := NewReplay(samplePoints(), false)
	require.NoError(t, err)

	_, ok := r.Elevation()
	assert.False(t, ok, "no point returned yet")

	lat, _, ok := r.Position()
	require.True(t, ok)
	assert.InDelta(t, 1.0, lat, 1e-9)

	_, ok = r.Speed()
	assert.False(t, ok, "first point has no speed")

	e, ok := r.Elevation()
	assert.True(t, ok)
	assert.InDelta(t, 10.0, e, 1e-9)

	_, _, ok = r.Position()
	require.True(t, ok)

	speed, ok := r.Speed()
	require.True(t, ok)

	km := geo.HaversineKm(1, 2, 1.01, 2)
	assert.InDelta(t, km*100, speed, 1e-6)

	_, ok = r.Elevation()
	assert.False(t, ok)

	_, _, ok = r.Position()
	require.True(t, ok)
	assert.False(t, r.Done())

	_, _, ok = r.Position()
	assert.False(t, ok)
	assert.True(t, r.Done())

	_, ok = r.Speed()
	assert.False(t, ok)
}

func TestReplayLoop(t *testing.T) {
	r, err := NewReplay(samplePoints(), true)
	require.NoError(t, err)

	var lats []float64

	for range 5 {
		lat, _, ok := r.Position()
		require.True(t, ok)

		lats = append(lats, lat)
	}

	assert.InDeltaSlice(t, []float64{1, 1.01, 1.02, 1, 1.01}, lats, 1e-9)
	assert.False(t, r.Done())
}

func TestReplayEmpty(t *testing.T) {
	_, err := NewReplay(nil, false)
	assert.ErrorIs(t, err, errEmptyReplay)
}

func TestReplayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.gpx")

	err := track.WriteGPX(
		track.Meta{Name: "trip", Start: start},
		samplePoints(),
		path,
	)
	require.NoError(t, err)

	r, err := ReplayFile(path, false)
	require.NoError(t, err)

	_, lon, ok := r.Position()
	require.True(t, ok)
	assert.InDelta(t, 2.0, lon, 1e-9)
}
