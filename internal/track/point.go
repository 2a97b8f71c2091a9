// Package track defines trail points and the two on-disk formats they move
// through: the append-only CSV log written while recording and the GPX file
// produced on export.
package track

import "time"

// Point is a single trail fix. Timestamp is in UTC seconds.
type Point struct {
	Elevation *float64 `json:"elevation,omitempty"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Timestamp int64    `json:"timestamp"`
}

// Meta is the metadata carried by an exported track.
type Meta struct {
	Start time.Time
	Name  string
}

// NewPoint creates a point stamped with t.
func NewPoint(lat, lon float64, elevation *float64, t time.Time) Point {
	return Point{
		Lat:       lat,
		Lon:       lon,
		Elevation: elevation,
		Timestamp: t.UTC().Unix(),
	}
}

// Time returns the timestamp as a time.Time in UTC.
func (p Point) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// Equal reports whether two points carry the same values.
func (p Point) Equal(o Point) bool {
	if p.Lat != o.Lat || p.Lon != o.Lon || p.Timestamp != o.Timestamp {
		return false
	}

	if p.Elevation == nil || o.Elevation == nil {
		return p.Elevation == nil && o.Elevation == nil
	}

	return *p.Elevation == *o.Elevation
}

// FileCodec reads CSV logs from and writes GPX tracks to the local
// filesystem.
type FileCodec struct{}

// ParseLog implements the structured-point import.
func (FileCodec) ParseLog(path string) ([]Point, error) {
	return ParseLog(path)
}

// WriteGPX implements the final-format export.
func (FileCodec) WriteGPX(meta Meta, points []Point, dest string) error {
	return WriteGPX(meta, points, dest)
}
