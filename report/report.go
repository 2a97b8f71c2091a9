// Package report prints the outcome of recordings and recoveries.
package report

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
	"github.com/ayoisaiah/tracklog/internal/ui"
)

// Recovery prints what happened to each orphaned log found on startup.
// Nothing is printed for a clean folder.
func Recovery(r *tracklog.RecoveryReport) {
	if r == nil || len(r.Results) == 0 {
		return
	}

	pterm.Info.Printfln(
		"found %d unsaved tracklog(s) in %s",
		len(r.Results),
		r.Folder,
	)

	for _, res := range r.Exported() {
		pterm.Success.Printfln(
			"recovered %s (%d points) to %s",
			ui.Highlight(res.Meta.Name),
			res.Points,
			ui.Green(res.Exported),
		)
	}

	for _, res := range r.Failed() {
		pterm.Warning.Printfln(
			"could not recover %s: %v (kept as %s)",
			res.Orphan.Path,
			res.Err,
			ui.Red(res.FailedPath),
		)
	}
}

// Exported prints the result of a finished recording.
func Exported(exp *tracklog.ExportedTrack) {
	if exp == nil {
		return
	}

	pterm.Success.Printfln(
		"track saved to %s (%d points, %s)",
		ui.Green(exp.Path),
		exp.Points,
		ui.FormatDistance(exp.Distance),
	)
}
