// Package store connects to the data store and manages the index of exported
// tracks.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tracklog/internal/osutil"
)

const tracksBucket = "tracks"

var (
	errTracklogRunning = errors.New(
		"is tracklog already running? Only one instance can be active at a time",
	)
	errTrackNotFound = errors.New("track not found")
)

// TrackRecord is the index entry written for every exported track.
type TrackRecord struct {
	StartTime  time.Time     `json:"start_time"`
	CreatedAt  time.Time     `json:"created_at"`
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Path       string        `json:"path"`
	Category   string        `json:"category"`
	Generation string        `json:"generation"`
	Duration   time.Duration `json:"duration"`
	Points     int           `json:"points"`
	Distance   float64       `json:"distance"`
	MaxSpeed   float64       `json:"max_speed"`
	AvgSpeed   float64       `json:"avg_speed"`
	Recovered  bool          `json:"recovered"`
}

// Key returns the bolt key of the record. Keys sort by start time so that
// range scans follow the recording order.
func (r *TrackRecord) Key() []byte {
	return []byte(r.StartTime.UTC().Format(time.RFC3339Nano) + "_" + r.ID)
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveTrack assigns an ID and creation time where missing and stores rec.
func (c *Client) SaveTrack(rec *TrackRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tracksBucket)).Put(rec.Key(), value)
	})
}

func (c *Client) GetTracks(since, until time.Time) ([]TrackRecord, error) {
	var tracks []TrackRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(tracksBucket)).Cursor()
		min := []byte(since.UTC().Format(time.RFC3339Nano))

		var max []byte
		if !until.IsZero() {
			// the separator sorts after every fractional digit
			max = []byte(until.UTC().Format(time.RFC3339Nano) + "~")
		}

		for k, v := cur.Seek(min); k != nil; k, v = cur.Next() {
			if max != nil && bytes.Compare(k, max) > 0 {
				break
			}

			var rec TrackRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			if rec.StartTime.Before(since) ||
				(!until.IsZero() && rec.StartTime.After(until)) {
				continue
			}

			tracks = append(tracks, rec)
		}

		return nil
	})

	return tracks, err
}

func (c *Client) GetTrack(nameOrID string) (*TrackRecord, error) {
	var found *TrackRecord

	err := c.View(func(tx *bolt.Tx) error {
		// newest match wins when a name was reused
		cur := tx.Bucket([]byte(tracksBucket)).Cursor()

		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var rec TrackRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			if rec.ID == nameOrID || rec.Name == nameOrID {
				found = &rec
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, errTrackNotFound
	}

	return found, nil
}

func (c *Client) DeleteTracks(tracks []TrackRecord) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range tracks {
			err := tx.Bucket([]byte(tracksBucket)).Delete(tracks[i].Key())
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errTracklogRunning
		}

		return nil, err
	}

	return db, nil
}

// IsLocked reports whether err means another process holds the database.
func IsLocked(err error) bool {
	return errors.Is(err, errTracklogRunning)
}

// IsNotFound reports whether err means the requested track does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errTrackNotFound)
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(tracksBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
