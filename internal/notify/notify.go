// Package notify reports finished exports to the user through desktop
// notifications and an optional post-export command.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

// Desktop shows a desktop notification whenever a track is exported or an
// export fails. Notifications are sent from their own goroutine since
// observers run with the recorder lock held.
type Desktop struct {
	send func(title, msg, icon string) error
	icon string
	wg   sync.WaitGroup
}

// NewDesktop returns a desktop notifier. The icon is looked up in the
// tracklog data directory and left empty when missing.
func NewDesktop() *Desktop {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join("tracklog", "static", "icon.svg"),
	)

	return &Desktop{
		send: func(title, msg, icon string) error {
			return beeep.Notify(title, msg, icon)
		},
		icon: pathToIcon,
	}
}

func (d *Desktop) Notify(e tracklog.Event) {
	var title, msg string

	switch e.Kind {
	case tracklog.ExportDone:
		title = "Track saved"
		msg = fmt.Sprintf("%s: %d points", e.Export.Path, e.Export.Points)

		if e.Export.Recovered {
			title = "Unsaved track recovered"
		}
	case tracklog.ExportFailed:
		title = "Saving track failed"
		msg = fmt.Sprintf("%s: %v", e.Name, e.Err)
	default:
		return
	}

	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		err := d.send(title, msg, d.icon)
		if err != nil {
			slog.Error("unable to display notification", slog.Any("error", err))
		}
	}()
}

// Wait blocks until every pending notification has been sent.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

// Hook runs a user command after each successful export. The command
// receives the exported file and the track name in TRACKLOG_GPX and
// TRACKLOG_NAME.
type Hook struct {
	cmd []string
	wg  sync.WaitGroup
}

// NewHook parses cmdline with shell quoting rules. An empty command line
// yields a nil hook.
func NewHook(cmdline string) (*Hook, error) {
	if cmdline == "" {
		return nil, nil
	}

	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("unable to parse cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	return &Hook{cmd: cmdSlice}, nil
}

func (h *Hook) Notify(e tracklog.Event) {
	if e.Kind != tracklog.ExportDone {
		return
	}

	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		err := h.run(e.Export)
		if err != nil {
			slog.Error(
				"post-export command failed",
				slog.String("path", e.Export.Path),
				slog.Any("error", err),
			)
		}
	}()
}

func (h *Hook) run(exp *tracklog.ExportedTrack) error {
	//nolint:gosec // the command comes from the user's own config
	cmd := exec.Command(h.cmd[0], h.cmd[1:]...)
	cmd.Env = append(
		os.Environ(),
		"TRACKLOG_GPX="+exp.Path,
		"TRACKLOG_NAME="+exp.Meta.Name,
	)

	return cmd.Run()
}

// Wait blocks until every running command has exited.
func (h *Hook) Wait() {
	h.wg.Wait()
}
