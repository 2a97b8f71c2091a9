package track

import (
	"os"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/ayoisaiah/tracklog/internal/osutil"
)

const (
	gpxVersion = "1.1"
	creator    = "tracklog"
)

// WriteGPX exports points as a single-segment GPX track to dest. It never
// overwrites: an existing dest is reported as an error so the caller can
// pick another name.
func WriteGPX(meta Meta, points []Point, dest string) error {
	segment := gpx.GPXTrackSegment{
		Points: make([]gpx.GPXPoint, 0, len(points)),
	}

	for _, p := range points {
		var gp gpx.GPXPoint

		gp.Latitude = p.Lat
		gp.Longitude = p.Lon
		gp.Timestamp = p.Time()

		if p.Elevation != nil {
			gp.Elevation.SetValue(*p.Elevation)
		}

		segment.Points = append(segment.Points, gp)
	}

	start := meta.Start.UTC()

	g := &gpx.GPX{
		Version: gpxVersion,
		Creator: creator,
		Name:    meta.Name,
		Time:    &start,
		Tracks: []gpx.GPXTrack{
			{
				Name:     meta.Name,
				Segments: []gpx.GPXTrackSegment{segment},
			},
		},
	}

	b, err := g.ToXml(gpx.ToXmlParams{Version: gpxVersion, Indent: true})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, osutil.FilePermission)
	if err != nil {
		return err
	}

	_, err = f.Write(b)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)

		return err
	}

	err = f.Sync()
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

// ReadGPX loads every track point from a GPX file, concatenating all tracks
// and segments in document order.
func ReadGPX(path string) (Meta, []Point, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return Meta{}, nil, err
	}

	meta := Meta{
		Name: g.Name,
	}

	if g.Time != nil {
		meta.Start = g.Time.UTC()
	}

	var points []Point

	for i := range g.Tracks {
		if meta.Name == "" {
			meta.Name = g.Tracks[i].Name
		}

		for j := range g.Tracks[i].Segments {
			for _, gp := range g.Tracks[i].Segments[j].Points {
				p := Point{
					Lat:       gp.Latitude,
					Lon:       gp.Longitude,
					Timestamp: gp.Timestamp.UTC().Unix(),
				}

				if gp.Elevation.NotNull() {
					elevation := gp.Elevation.Value()
					p.Elevation = &elevation
				}

				points = append(points, p)
			}
		}
	}

	return meta, points, nil
}
