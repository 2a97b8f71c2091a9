package tracklog

import (
	"time"

	"github.com/ayoisaiah/tracklog/internal/geo"
)

// LatLon is a position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Stats holds the running statistics of a session. Speeds are in km/h and
// distances in km.
type Stats struct {
	LastUpdate   time.Time
	LastPosition *LatLon
	MaxSpeed     float64
	SpeedSum     float64
	TimeSum      float64
	AvgSpeed     float64
	Distance     float64
}

// NewStats returns zeroed statistics for a session started at now.
func NewStats(now time.Time) Stats {
	return Stats{LastUpdate: now}
}

// Update folds one accepted point into the statistics. The distance grows
// by the great-circle hop from the previous position; a speed sample
// updates the maximum and the time-weighted running mean.
func (s *Stats) Update(pos LatLon, speed float64, hasSpeed bool, now time.Time) {
	if hasSpeed {
		if speed > s.MaxSpeed {
			s.MaxSpeed = speed
		}

		s.SpeedSum += speed
		s.TimeSum += now.Sub(s.LastUpdate).Seconds()

		if s.TimeSum > 0 {
			s.AvgSpeed = s.SpeedSum / s.TimeSum
		}

		s.LastUpdate = now
	}

	if s.LastPosition != nil {
		s.Distance += geo.HaversineKm(
			s.LastPosition.Lat,
			s.LastPosition.Lon,
			pos.Lat,
			pos.Lon,
		)
	}

	s.LastPosition = &pos
}
