package tracklog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ayoisaiah/tracklog/internal/osutil"
	"github.com/ayoisaiah/tracklog/internal/track"
)

const (
	primarySuffix   = ".temporary_csv_1"
	secondarySuffix = ".temporary_csv_2"
	exportExt       = ".gpx"
	failedSuffix    = ".failed"

	// maxExportSuffix bounds the search for a free export destination.
	maxExportSuffix = 1000
)

// Generation identifies one of the two redundant copies of a session log.
type Generation int

const (
	Primary Generation = iota + 1
	Secondary
)

func (g Generation) String() string {
	switch g {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

func (g Generation) suffix() string {
	if g == Secondary {
		return secondarySuffix
	}

	return primarySuffix
}

// Codec converts between the append-only log and the exported track.
type Codec interface {
	ParseLog(path string) ([]track.Point, error)
	WriteGPX(meta track.Meta, points []track.Point, dest string) error
}

type logFile interface {
	Write(p []byte) (int, error)
	Sync() error
	Close() error
}

// LogHandle is one append-only copy of a session log. Appends are buffered
// and only reach the disk on flush.
type LogHandle struct {
	file       logFile
	w          *bufio.Writer
	Path       string
	Generation Generation
	PointCount int
	pending    int
	Degraded   bool
}

func openHandle(path string, gen Generation) (*LogHandle, error) {
	f, err := os.OpenFile(
		path,
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		osutil.FilePermission,
	)
	if err != nil {
		return nil, err
	}

	return &LogHandle{
		Path:       path,
		Generation: gen,
		file:       f,
		w:          bufio.NewWriter(f),
	}, nil
}

func (h *LogHandle) append(p track.Point) error {
	if h.file == nil || h.Degraded {
		return errHandleUnavailable.Fmt(h.Generation)
	}

	_, err := h.w.Write(track.EncodeRecord(p))
	if err != nil {
		h.Degraded = true
		return err
	}

	h.PointCount++
	h.pending++

	return nil
}

func (h *LogHandle) flush() error {
	if h.file == nil || h.pending == 0 {
		return nil
	}

	// a failed bufio.Writer stays failed, so the copy cannot be trusted
	// with further points
	if err := h.w.Flush(); err != nil {
		h.Degraded = true
		return err
	}

	// pending survives a failed sync so the next flush retries it
	if err := h.file.Sync(); err != nil {
		return err
	}

	h.pending = 0

	return nil
}

func (h *LogHandle) close() error {
	if h.file == nil {
		return nil
	}

	err := h.flush()

	if cerr := h.file.Close(); err == nil {
		err = cerr
	}

	h.file = nil

	return err
}

// RedundantLog writes the same point stream to two independent log files so
// that a single corrupt or truncated copy does not lose the session.
type RedundantLog struct {
	codec     Codec
	Primary   *LogHandle
	Secondary *LogHandle
	Name      string
	Folder    string
}

// OpenRedundantLog opens both temporaries for the session name in append
// mode. A copy that cannot be opened is marked degraded; the log only fails
// to open when neither copy is usable.
func OpenRedundantLog(folder, name string, codec Codec) (*RedundantLog, error) {
	l := &RedundantLog{
		Name:   name,
		Folder: folder,
		codec:  codec,
	}

	var errs []error

	for _, gen := range []Generation{Primary, Secondary} {
		path := filepath.Join(folder, name+gen.suffix())

		h, err := openHandle(path, gen)
		if err != nil {
			slog.Warn(
				"opening temporary log failed",
				slog.String("path", path),
				slog.Any("error", err),
			)

			errs = append(errs, err)
			h = &LogHandle{Path: path, Generation: gen, Degraded: true}
		}

		if gen == Primary {
			l.Primary = h
		} else {
			l.Secondary = h
		}
	}

	if l.Primary.Degraded && l.Secondary.Degraded {
		return nil, ErrAllCopiesFailed.Fmt(name).Wrap(errors.Join(errs...))
	}

	return l, nil
}

func (l *RedundantLog) handles() []*LogHandle {
	return []*LogHandle{l.Primary, l.Secondary}
}

// Append writes p to every healthy copy. A copy whose write fails is marked
// degraded and skipped from then on. The returned error matches
// ErrWriteDegraded when one copy failed during this call, and
// ErrAllCopiesFailed once no healthy copy remains.
func (l *RedundantLog) Append(p track.Point) error {
	var errs []error

	for _, h := range l.handles() {
		if h.Degraded {
			continue
		}

		if err := h.append(p); err != nil {
			werr := ErrWriteDegraded.Fmt(h.Generation).Wrap(err)

			slog.Warn(
				werr.Message,
				slog.String("path", h.Path),
				slog.Any("error", err),
			)

			errs = append(errs, werr)
		}
	}

	if l.Primary.Degraded && l.Secondary.Degraded {
		errs = append(errs, ErrAllCopiesFailed.Fmt(l.Name))
	}

	return errors.Join(errs...)
}

// PointCount returns the number of points held by the log, taken from the
// primary copy unless it is degraded.
func (l *RedundantLog) PointCount() int {
	if l.Primary.Degraded && !l.Secondary.Degraded {
		return l.Secondary.PointCount
	}

	return l.Primary.PointCount
}

// Flush forces pending writes of both copies to disk. Each copy is flushed
// independently; failures are logged and returned joined but never stop the
// other copy from being flushed.
func (l *RedundantLog) Flush() error {
	var errs []error

	for _, h := range l.handles() {
		if err := h.flush(); err != nil {
			slog.Error(
				fmt.Sprintf("saving %s temporary tracklog failed", h.Generation),
				slog.String("path", h.Path),
				slog.Any("error", err),
			)

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Close flushes and closes both copies.
func (l *RedundantLog) Close() error {
	var errs []error

	for _, h := range l.handles() {
		if err := h.close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Export converts the points accumulated in h into the final format. The
// destination is <folder>/<name>.gpx, numerically suffixed on collision.
// A degraded copy is exported from whatever reached the disk.
func (l *RedundantLog) Export(h *LogHandle, meta track.Meta) (string, []track.Point, error) {
	if !h.Degraded {
		if err := h.flush(); err != nil {
			return "", nil, ErrExport.Fmt(l.Name).Wrap(err)
		}
	}

	dest, points, err := exportLog(
		l.codec,
		h.Path,
		filepath.Join(l.Folder, l.Name),
		meta,
	)
	if err != nil {
		return "", nil, ErrExport.Fmt(l.Name).Wrap(err)
	}

	return dest, points, nil
}

// DeleteTemporaries closes and removes both copies. It is best effort:
// failures are logged, never returned.
func (l *RedundantLog) DeleteTemporaries() {
	for _, h := range l.handles() {
		if err := h.close(); err != nil {
			slog.Warn(
				"closing temporary log failed",
				slog.String("path", h.Path),
				slog.Any("error", err),
			)
		}

		removeTemporary(h.Path)
	}
}

func removeTemporary(path string) {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn(
			"deleting temporary log failed",
			slog.String("path", path),
			slog.Any("error", err),
		)

		return
	}

	slog.Debug("temporary log deleted", slog.String("path", path))
}

// exportLog parses src and writes it to the first free destination among
// base.gpx, base_1.gpx, base_2.gpx and so on. A zero meta.Start is filled in
// from the first point.
func exportLog(
	codec Codec,
	src, base string,
	meta track.Meta,
) (string, []track.Point, error) {
	points, err := codec.ParseLog(src)
	if err != nil {
		return "", nil, err
	}

	if meta.Start.IsZero() && len(points) > 0 {
		meta.Start = points[0].Time()
	}

	if meta.Start.IsZero() {
		meta.Start = time.Now().UTC()
	}

	for i := 0; i <= maxExportSuffix; i++ {
		dest := base + exportExt
		if i > 0 {
			dest = fmt.Sprintf("%s_%d%s", base, i, exportExt)
		}

		if _, err := os.Lstat(dest); err == nil {
			continue
		}

		err = codec.WriteGPX(meta, points, dest)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		if err != nil {
			return "", nil, err
		}

		return dest, points, nil
	}

	return "", nil, errNoFreeDestination.Fmt(base)
}
