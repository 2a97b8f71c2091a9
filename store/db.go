package store

import (
	"time"
)

// DB is the database storage interface.
type DB interface {
	// SaveTrack stores an exported track. A record with the same key is
	// overwritten
	SaveTrack(rec *TrackRecord) error
	// GetTracks returns saved tracks that started within the given bounds,
	// oldest first
	GetTracks(since, until time.Time) ([]TrackRecord, error)
	// GetTrack looks up a single track by name or ID
	GetTrack(nameOrID string) (*TrackRecord, error)
	// DeleteTracks deletes one or more saved tracks
	DeleteTracks(tracks []TrackRecord) error
	// Close ends the database connection
	Close() error
}
