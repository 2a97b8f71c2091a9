package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/internal/timeutil"
	"github.com/ayoisaiah/tracklog/internal/ui"
	"github.com/ayoisaiah/tracklog/store"
)

var errTrackArg = errors.New("a track name or id is required")

// printTrack prints every field of a saved track as a two column table.
func printTrack(w io.Writer, tr *store.TrackRecord) {
	file := ui.Green(tr.Path)
	if _, err := os.Stat(tr.Path); err != nil {
		file = ui.Red(tr.Path + " (missing)")
	}

	ui.PrintTable([][]string{
		{"FIELD", "VALUE"},
		{"ID", tr.ID},
		{"Name", tr.Name},
		{"Category", tr.Category},
		{"File", file},
		{"Started", tr.StartTime.Local().Format(dateFormat)},
		{"Duration", timeutil.FormatElapsed(tr.Duration)},
		{"Points", fmt.Sprintf("%d", tr.Points)},
		{"Distance", ui.FormatDistance(tr.Distance)},
		{"Average speed", ui.FormatSpeed(tr.AvgSpeed, tr.AvgSpeed > 0)},
		{"Max speed", ui.FormatSpeed(tr.MaxSpeed, tr.MaxSpeed > 0)},
		{"Exported from", tr.Generation},
		{"Recovered", fmt.Sprintf("%t", tr.Recovered)},
	}, w)
}

// showAction prints the details of a single saved track.
func showAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errTrackArg
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	tr, err := db.GetTrack(ctx.Args().First())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(tr)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	printTrack(os.Stdout, tr)

	return nil
}
