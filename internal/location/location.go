// Package location provides the position sources a recording can draw its
// fixes from.
package location

import (
	"errors"
	"sync"

	"github.com/ayoisaiah/tracklog/internal/geo"
	"github.com/ayoisaiah/tracklog/internal/track"
)

var errEmptyReplay = errors.New("replay track has no points")

// Fixed reports the same position on every call. It has no speed or
// elevation.
type Fixed struct {
	Lat float64
	Lon float64
}

func (f Fixed) Position() (lat, lon float64, ok bool) {
	return f.Lat, f.Lon, true
}

func (Fixed) Speed() (float64, bool) {
	return 0, false
}

func (Fixed) Elevation() (float64, bool) {
	return 0, false
}

// Replay feeds back the points of a recorded track, one per Position call.
// Speed and Elevation describe the point most recently returned by
// Position.
type Replay struct {
	points  []track.Point
	current int
	loop    bool
	mu      sync.Mutex
}

// NewReplay returns a replay of points. With loop set the replay starts
// over once the last point has been returned; otherwise Position reports no
// fix from then on.
func NewReplay(points []track.Point, loop bool) (*Replay, error) {
	if len(points) == 0 {
		return nil, errEmptyReplay
	}

	return &Replay{
		points:  points,
		current: -1,
		loop:    loop,
	}, nil
}

// ReplayFile reads a GPX file and replays its points.
func ReplayFile(path string, loop bool) (*Replay, error) {
	_, points, err := track.ReadGPX(path)
	if err != nil {
		return nil, err
	}

	return NewReplay(points, loop)
}

func (r *Replay) Position() (lat, lon float64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current + 1
	if next >= len(r.points) {
		if !r.loop {
			r.current = len(r.points)
			return 0, 0, false
		}

		next = 0
	}

	r.current = next
	p := r.points[next]

	return p.Lat, p.Lon, true
}

// Speed is derived in km/h from the previous point. The first point of a
// pass has no speed.
func (r *Replay) Speed() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current <= 0 || r.current >= len(r.points) {
		return 0, false
	}

	prev, cur := r.points[r.current-1], r.points[r.current]

	secs := cur.Timestamp - prev.Timestamp
	if secs <= 0 {
		return 0, false
	}

	km := geo.HaversineKm(prev.Lat, prev.Lon, cur.Lat, cur.Lon)

	return km / (float64(secs) / 3600), true
}

func (r *Replay) Elevation() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current < 0 || r.current >= len(r.points) {
		return 0, false
	}

	e := r.points[r.current].Elevation
	if e == nil {
		return 0, false
	}

	return *e, true
}

// Done reports whether a non-looping replay has run out of points.
func (r *Replay) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return !r.loop && r.current >= len(r.points)
}
