// Package projection maps geographic coordinates onto the flat plane the
// trace is drawn on.
package projection

import (
	"math"
	"sync"
)

const (
	tileSize = 256.0

	MinZoom     = 0
	MaxZoom     = 20
	DefaultZoom = 15

	// maxLat is the latitude at which web mercator is cut off.
	maxLat = 85.05112878
)

// Mercator projects to web mercator world coordinates, where the whole world
// spans one 256 unit tile. Pixel coordinates at a zoom level are the world
// coordinates scaled by 2^zoom, so projected points stay valid across zoom
// changes.
type Mercator struct {
	zoom int
	mu   sync.RWMutex
}

// NewMercator returns a projector at the given zoom, clamped to the
// supported range.
func NewMercator(zoom int) *Mercator {
	return &Mercator{zoom: clamp(zoom)}
}

func (m *Mercator) Project(lat, lon float64) (x, y float64) {
	lat = math.Max(-maxLat, math.Min(maxLat, lat))
	sin := math.Sin(lat * math.Pi / 180)

	x = tileSize * (lon + 180) / 360
	y = tileSize * (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi))

	return x, y
}

func (m *Mercator) Zoom() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.zoom
}

// SetZoom changes the zoom level and returns the value actually applied.
func (m *Mercator) SetZoom(zoom int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.zoom = clamp(zoom)

	return m.zoom
}

// Scale returns the factor from world to pixel coordinates at the current
// zoom.
func (m *Mercator) Scale() float64 {
	return math.Exp2(float64(m.Zoom()))
}

// MetresPerPixel returns the ground resolution at lat for the current zoom.
func (m *Mercator) MetresPerPixel(lat float64) float64 {
	const earthCircumference = 40075016.686

	return earthCircumference * math.Cos(lat*math.Pi/180) / (tileSize * m.Scale())
}

func clamp(zoom int) int {
	return max(MinZoom, min(MaxZoom, zoom))
}
