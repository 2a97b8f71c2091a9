package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/store"
)

// delTracks deletes all the specified tracks from the index, and their GPX
// files when removeFiles is set. It requests for confirmation before
// proceeding with the operation.
func delTracks(
	db store.DB,
	tracks []store.TrackRecord,
	removeFiles bool,
	in io.Reader,
	out io.Writer,
) error {
	if len(tracks) == 0 {
		return nil
	}

	printTracksTable(out, tracks)

	msg := "The above tracks will be removed from the index. Press ENTER to proceed"
	if removeFiles {
		msg = "The above tracks and their GPX files will be deleted permanently. Press ENTER to proceed"
	}

	fmt.Fprint(out, pterm.Warning.Sprint(msg))

	reader := bufio.NewReader(in)

	_, _ = reader.ReadString('\n')

	if err := db.DeleteTracks(tracks); err != nil {
		return err
	}

	if !removeFiles {
		return nil
	}

	var errs []error

	for i := range tracks {
		err := os.Remove(tracks[i].Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}

		slog.Info("deleted track file", slog.String("path", tracks[i].Path))
	}

	return errors.Join(errs...)
}

// deleteAction handles the delete command which deletes one or more
// tracks.
func deleteAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errTrackArg
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	tracks := make([]store.TrackRecord, 0, ctx.NArg())

	for _, arg := range ctx.Args().Slice() {
		tr, err := db.GetTrack(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}

		tracks = append(tracks, *tr)
	}

	return delTracks(db, tracks, ctx.Bool("remove-files"), os.Stdin, os.Stdout)
}
