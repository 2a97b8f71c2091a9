package tracklog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ayoisaiah/tracklog/internal/track"
)

// Orphan is a temporary log found on disk with no live session attached.
type Orphan struct {
	Path       string
	Generation Generation
}

// base returns the orphan path without its generation suffix.
func (o Orphan) base() string {
	return strings.TrimSuffix(o.Path, o.Generation.suffix())
}

// RecoveryResult describes what happened to a single orphan.
type RecoveryResult struct {
	Err        error
	Orphan     Orphan
	Exported   string
	FailedPath string
	Meta       track.Meta
	Points     int
}

// RecoveryReport lists the outcome for every orphan found in a folder.
type RecoveryReport struct {
	Folder  string
	Results []RecoveryResult
}

// Exported returns the successfully recovered results.
func (r *RecoveryReport) Exported() []RecoveryResult {
	var out []RecoveryResult

	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}

	return out
}

// Failed returns the results whose export failed.
func (r *RecoveryReport) Failed() []RecoveryResult {
	var out []RecoveryResult

	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}

	return out
}

// FindOrphans lists the temporary logs of one generation in folder, sorted
// by name.
func FindOrphans(folder string, gen Generation) ([]Orphan, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var orphans []Orphan

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), gen.suffix()) {
			continue
		}

		orphans = append(orphans, Orphan{
			Path:       filepath.Join(folder, e.Name()),
			Generation: gen,
		})
	}

	sort.Slice(orphans, func(i, j int) bool {
		return orphans[i].Path < orphans[j].Path
	})

	return orphans, nil
}

// Recover exports every orphaned log in folder left behind by an unclean
// shutdown. Primary copies are tried first; a successful primary export
// removes its secondary too. Secondaries still present afterwards (no
// primary, or the primary failed) are exported on their own. A log that
// cannot be exported is renamed with a .failed suffix and never deleted.
// Per-file failures are recorded in the report and do not stop the scan.
//
// Recover must not run while a session is writing to the same folder.
func Recover(folder string, codec Codec) (*RecoveryReport, error) {
	report := &RecoveryReport{Folder: folder}

	primaries, err := FindOrphans(folder, Primary)
	if err != nil {
		return nil, err
	}

	secondaries, err := FindOrphans(folder, Secondary)
	if err != nil {
		return nil, err
	}

	if len(primaries) == 0 && len(secondaries) == 0 {
		return report, nil
	}

	slog.Info(
		"unsaved temporary tracklogs detected",
		slog.String("folder", folder),
		slog.Int("primary", len(primaries)),
		slog.Int("secondary", len(secondaries)),
	)

	for _, o := range primaries {
		res := recoverOrphan(codec, o)
		if res.Err == nil {
			removeTemporary(o.base() + secondarySuffix)
		}

		report.Results = append(report.Results, res)
	}

	// only secondaries without a successfully exported primary remain
	secondaries, err = FindOrphans(folder, Secondary)
	if err != nil {
		return report, err
	}

	for _, o := range secondaries {
		report.Results = append(report.Results, recoverOrphan(codec, o))
	}

	slog.Debug("unsaved tracklog handling finished", slog.String("folder", folder))

	return report, nil
}

func recoverOrphan(codec Codec, o Orphan) RecoveryResult {
	res := RecoveryResult{Orphan: o}

	base := o.base()
	meta := track.Meta{Name: filepath.Base(base)}

	slog.Info(
		fmt.Sprintf("exporting unsaved %s tracklog", o.Generation),
		slog.String("path", o.Path),
	)

	dest, points, err := exportLog(codec, o.Path, base, meta)
	if err != nil {
		res.Err = ErrRecoveryExport.Fmt(o.Path).Wrap(err)

		slog.Error(
			fmt.Sprintf("exporting unsaved %s log file failed", o.Generation),
			slog.String("path", o.Path),
			slog.Any("error", err),
		)

		res.FailedPath = markFailed(o.Path)

		return res
	}

	res.Exported = dest
	res.Points = len(points)
	res.Meta = meta

	if len(points) > 0 {
		res.Meta.Start = points[0].Time()
	}

	slog.Info(
		fmt.Sprintf("export of unsaved %s tracklog successful", o.Generation),
		slog.String("path", o.Path),
		slog.String("dest", dest),
	)

	removeTemporary(o.Path)

	return res
}

// markFailed renames path to path.failed, or path.failed_N if that name is
// taken. It returns the new path, or the original one when renaming failed.
func markFailed(path string) string {
	failed := path + failedSuffix

	for i := 1; i <= maxExportSuffix; i++ {
		if _, err := os.Lstat(failed); errors.Is(err, fs.ErrNotExist) {
			break
		}

		failed = fmt.Sprintf("%s%s_%d", path, failedSuffix, i)
	}

	slog.Info("renaming unexportable log", slog.String("from", path), slog.String("to", failed))

	if err := os.Rename(path, failed); err != nil {
		slog.Error(
			"renaming unexportable log failed",
			slog.String("from", path),
			slog.String("to", failed),
			slog.Any("error", err),
		)

		return path
	}

	return failed
}
