package app

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracklog/dashboard"
	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/internal/timeutil"
	"github.com/ayoisaiah/tracklog/internal/ui"
	"github.com/ayoisaiah/tracklog/store"
)

// statusLine renders a status snapshot on one line.
func statusLine(s *dashboard.StatusFile) string {
	return pterm.Sprintf(
		"[%s] %s: %s, %d points, %s",
		s.State,
		s.Name,
		timeutil.FormatElapsed(s.Elapsed),
		s.Points,
		ui.FormatDistance(s.Distance),
	)
}

// statusAction handles the status command and prints the status of the
// running recording. The database being free means nothing is recording.
func statusAction(_ *cli.Context) error {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err == nil {
		return db.Close()
	}

	if !store.IsLocked(err) {
		return err
	}

	s, err := dashboard.ReadStatus(pathutil.StatusFilePath())
	if err != nil || s == nil {
		return err
	}

	// the elapsed time was captured at the last refresh
	if s.State == "recording" {
		s.Elapsed += time.Since(s.UpdatedAt)
	}

	pterm.Println(statusLine(s))

	return nil
}
