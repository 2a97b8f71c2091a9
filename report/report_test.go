package report

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tracklog/internal/track"
	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	pterm.DisableColor()
	pterm.SetDefaultOutput(&buf)

	info, success, warning := pterm.Info.Writer, pterm.Success.Writer, pterm.Warning.Writer
	pterm.Info.Writer = &buf
	pterm.Success.Writer = &buf
	pterm.Warning.Writer = &buf

	t.Cleanup(func() {
		pterm.EnableColor()
		pterm.SetDefaultOutput(os.Stdout)

		pterm.Info.Writer = info
		pterm.Success.Writer = success
		pterm.Warning.Writer = warning
	})

	return &buf
}

func TestRecovery(t *testing.T) {
	buf := capture(t)

	Recovery(&tracklog.RecoveryReport{
		Folder: "/tracks",
		Results: []tracklog.RecoveryResult{
			{
				Meta:     track.Meta{Name: "log_a"},
				Exported: "/tracks/log_a.gpx",
				Points:   4,
			},
			{
				Orphan:     tracklog.Orphan{Path: "/tracks/log_b.temporary_csv_1"},
				Err:        errors.New("bad record"),
				FailedPath: "/tracks/log_b.temporary_csv_1.failed",
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "found 2 unsaved tracklog(s) in /tracks")
	assert.Contains(t, out, "recovered log_a (4 points) to /tracks/log_a.gpx")
	assert.Contains(t, out, "kept as /tracks/log_b.temporary_csv_1.failed")
}

func TestRecoveryCleanFolder(t *testing.T) {
	buf := capture(t)

	Recovery(&tracklog.RecoveryReport{Folder: "/tracks"})
	Recovery(nil)

	assert.Empty(t, buf.String())
}
