package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/internal/timeutil"
	"github.com/ayoisaiah/tracklog/internal/ui"
	"github.com/ayoisaiah/tracklog/store"
)

const (
	noTracksMsg = "No tracks found for the specified time range"
	dateFormat  = "Jan 02, 2006 03:04 PM"
)

var errInvalidPeriod = errors.New(
	"invalid period: use all-time, today, yesterday, 7days, 30days or 365days",
)

// timeRange resolves --period, --since and --until into the bounds of a
// listing. Explicit bounds override the period.
func timeRange(ctx *cli.Context, now time.Time) (since, until time.Time, err error) {
	since, until, ok := timeutil.PeriodBounds(
		timeutil.Period(ctx.String("period")),
		now,
	)
	if !ok {
		return since, until, errInvalidPeriod
	}

	if s := ctx.String("since"); s != "" {
		since, err = timeutil.FromStr(s)
		if err != nil {
			return since, until, err
		}
	}

	if s := ctx.String("until"); s != "" {
		until, err = timeutil.FromStr(s)
		if err != nil {
			return since, until, err
		}
	}

	return since, until, nil
}

// printTracksTable prints a track table to the command-line.
func printTracksTable(w io.Writer, tracks []store.TrackRecord) {
	tableBody := make([][]string, len(tracks))

	for i := range tracks {
		tr := tracks[i]

		source := ui.Green("recorded")
		if tr.Recovered {
			source = ui.Red("recovered")
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			tr.Name,
			tr.StartTime.Local().Format(dateFormat),
			timeutil.FormatElapsed(tr.Duration),
			ui.FormatDistance(tr.Distance),
			fmt.Sprintf("%d", tr.Points),
			tr.Category,
			source,
		}
	}

	tableBody = append([][]string{
		{"#", "NAME", "START DATE", "DURATION", "DISTANCE", "POINTS", "CATEGORY", "SOURCE"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listFiles returns the exported GPX files in folder in natural order, so
// that log_2 sorts before log_10.
func listFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".gpx") {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Sort(natural.StringSlice(names))

	return names, nil
}

// listAction handles the list command and prints a table of all the tracks
// started within a time period.
func listAction(ctx *cli.Context) error {
	if ctx.Bool("files") {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		folder := cfg.TrackFolder(pathutil.TracksDir())

		names, err := listFiles(folder)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			pterm.Info.Printfln("No GPX files in %s", folder)
			return nil
		}

		for _, name := range names {
			pterm.Println(filepath.Join(folder, name))
		}

		return nil
	}

	since, until, err := timeRange(ctx, time.Now())
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	tracks, err := db.GetTracks(since, until)
	if err != nil {
		return err
	}

	if category := ctx.String("category"); category != "" {
		tracks = filterCategory(tracks, category)
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(tracks)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(tracks) == 0 {
		pterm.Info.Println(noTracksMsg)
		return nil
	}

	printTracksTable(os.Stdout, tracks)

	return nil
}

func filterCategory(tracks []store.TrackRecord, category string) []store.TrackRecord {
	var out []store.TrackRecord

	for i := range tracks {
		if tracks[i].Category == category {
			out = append(out, tracks[i])
		}
	}

	return out
}
