package tracklog

import "github.com/ayoisaiah/tracklog/internal/geo"

const (
	// TraceThreshold is the minimum distance in metres between a point and
	// the last kept point for it to be added to the trace.
	TraceThreshold = 1.0

	// MaxDrawPoints caps the number of points handed to the renderer.
	MaxDrawPoints = 300

	maxStride       = 32
	fullDetailZoom  = 16
	coarseZoomLimit = 10
)

// Projector maps geographic coordinates to rendering coordinates.
type Projector interface {
	Project(lat, lon float64) (x, y float64)
	Zoom() int
}

type plainProjector struct{}

func (plainProjector) Project(lat, lon float64) (x, y float64) {
	return lon, lat
}

func (plainProjector) Zoom() int {
	return fullDetailZoom
}

// TracePoint is a kept point in rendering coordinates.
type TracePoint struct {
	X     float64
	Y     float64
	Index int
}

// Trace is the decimated on-map trail of a session. Only points at least
// TraceThreshold away from the previously kept point are retained. Points
// are stored oldest-first and handed out newest-first so drawing can start
// from the current position.
type Trace struct {
	projector Projector
	distance  func(lat1, lon1, lat2, lon2 float64) (float64, error)
	lastKept  *LatLon
	points    []TracePoint
	nextIndex int
}

// NewTrace creates an empty trace projecting through p.
func NewTrace(p Projector) *Trace {
	if p == nil {
		p = plainProjector{}
	}

	return &Trace{
		projector: p,
		distance:  geo.DistanceApprox,
	}
}

// Add offers a point to the trace and reports whether it was kept.
func (t *Trace) Add(lat, lon float64) bool {
	if t.lastKept != nil {
		km, err := t.distance(t.lastKept.Lat, t.lastKept.Lon, lat, lon)

		switch {
		case err != nil:
			// the distance is unknown so the point is kept
		case km*1000 < TraceThreshold:
			return false
		}
	}

	x, y := t.projector.Project(lat, lon)

	t.points = append(t.points, TracePoint{X: x, Y: y, Index: t.nextIndex})
	t.nextIndex++
	t.lastKept = &LatLon{Lat: lat, Lon: lon}

	return true
}

// Len returns the number of kept points.
func (t *Trace) Len() int {
	return len(t.points)
}

// Points returns every kept point, newest first.
func (t *Trace) Points() []TracePoint {
	out := make([]TracePoint, len(t.points))

	for i := range t.points {
		out[i] = t.points[len(t.points)-1-i]
	}

	return out
}

// Clear drops the kept points. Indices keep increasing afterwards.
func (t *Trace) Clear() {
	t.points = nil
}

// Stride returns how many kept points are skipped per drawn point at the
// given zoom level.
func Stride(zoom int) int {
	switch {
	case zoom <= coarseZoomLimit:
		return maxStride
	case zoom < fullDetailZoom:
		return 1 << (fullDetailZoom - zoom)
	default:
		return 1
	}
}

// DrawPlan returns the points to draw at zoom, newest first: every
// Stride(zoom)-th kept point, at most MaxDrawPoints of them.
func (t *Trace) DrawPlan(zoom int) []TracePoint {
	return drawPlan(t.points, zoom)
}

// kept returns the kept points, oldest first. The result stays valid while
// the trace grows since Add only appends past its length and Clear drops
// the backing array.
func (t *Trace) kept() []TracePoint {
	return t.points[:len(t.points):len(t.points)]
}

func drawPlan(points []TracePoint, zoom int) []TracePoint {
	stride := Stride(zoom)

	capacity := len(points)/stride + 1
	if capacity > MaxDrawPoints {
		capacity = MaxDrawPoints
	}

	out := make([]TracePoint, 0, capacity)

	counter := 0

	for i := len(points) - 1; i >= 0; i-- {
		counter++

		if counter%stride != 0 {
			continue
		}

		if len(out) == MaxDrawPoints {
			break
		}

		out = append(out, points[i])
	}

	return out
}
