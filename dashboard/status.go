package dashboard

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

// StatusFile is the snapshot of a running recording written for the status
// command, since the database is locked while tracklog runs.
type StatusFile struct {
	StartTime time.Time     `json:"start_time"`
	UpdatedAt time.Time     `json:"updated_at"`
	Name      string        `json:"name"`
	State     string        `json:"state"`
	Elapsed   time.Duration `json:"elapsed"`
	Points    int           `json:"points"`
	Distance  float64       `json:"distance"`
	Speed     float64       `json:"speed"`
	HasSpeed  bool          `json:"has_speed"`
	AvgSpeed  float64       `json:"avg_speed"`
}

func newStatusFile(st tracklog.Status, now time.Time) StatusFile {
	return StatusFile{
		StartTime: st.StartTime,
		UpdatedAt: now,
		Name:      st.Name,
		State:     st.State.String(),
		Elapsed:   st.Elapsed,
		Points:    st.Points,
		Distance:  st.Distance,
		Speed:     st.Speed,
		HasSpeed:  st.HasSpeed,
		AvgSpeed:  st.AvgSpeed,
	}
}

// WriteStatus replaces the status file at path.
func WriteStatus(path string, s StatusFile) (err error) {
	statusFile, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil && err == nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReadStatus loads the status file at path. A missing file yields nil and
// no error.
func ReadStatus(path string) (*StatusFile, error) {
	fileBytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var s StatusFile

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// RemoveStatus deletes the status file, ignoring a missing one.
func RemoveStatus(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// statusWriter keeps the status file current until the recording ends.
// Writes run off the update loop, so closing waits for a write in flight
// and later writes are skipped.
type statusWriter struct {
	path   string
	mu     sync.Mutex
	closed bool
}

func (w *statusWriter) write(st tracklog.Status, now time.Time) {
	if w.path == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	err := WriteStatus(w.path, newStatusFile(st, now))
	if err != nil {
		slog.Warn(
			"writing status file failed",
			slog.String("path", w.path),
			slog.Any("error", err),
		)
	}
}

func (w *statusWriter) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true

	if w.path == "" {
		return
	}

	if err := RemoveStatus(w.path); err != nil {
		slog.Warn("removing status file failed", slog.Any("error", err))
	}
}
