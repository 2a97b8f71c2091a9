// Package dashboard renders a live view of the active recording and maps
// key presses to recorder commands.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

const (
	refreshInterval = time.Second

	defaultWidth  = 60
	defaultHeight = 24
	minCanvas     = 5
)

// Recorder is the part of tracklog.Recorder the dashboard drives.
type Recorder interface {
	TogglePause() error
	Split(prefix string) (*tracklog.ExportedTrack, string, error)
	Stop() (*tracklog.ExportedTrack, error)
	ClearTrace() error
	Status() tracklog.Status
	DrawPlan() []tracklog.TracePoint
	Hub() *tracklog.Hub
}

// Zoomer controls the zoom of the trace view.
type Zoomer interface {
	Zoom() int
	SetZoom(zoom int) int
	Scale() float64
}

// Options configures a Dashboard. Recorder and Projection are required.
type Options struct {
	Recorder   Recorder
	Projection Zoomer
	// Done reports that the position source is exhausted, which stops the
	// recording
	Done       func() bool
	Now        func() time.Time
	Style      Style
	StatusPath string
	Prefix     string
}

type (
	eventMsg   tracklog.Event
	refreshMsg time.Time
	statusMsg  struct {
		plan   []tracklog.TracePoint
		status tracklog.Status
	}
	commandMsg struct {
		err error
	}
	splitMsg struct {
		err      error
		exported *tracklog.ExportedTrack
		name     string
	}
	stoppedMsg struct {
		err      error
		exported *tracklog.ExportedTrack
	}
)

// Dashboard is the bubbletea model of a running recording. Recorder calls
// run as commands off the update loop since they may wait on a flush or an
// export.
type Dashboard struct {
	// Exported and StopErr hold the outcome of the final stop once the
	// program has exited
	Exported *tracklog.ExportedTrack
	StopErr  error

	sub      *tracklog.Subscription
	last     *tracklog.ExportedTrack
	err      error
	writer   *statusWriter
	help     help.Model
	opts     Options
	status   tracklog.Status
	plan     []tracklog.TracePoint
	width    int
	height   int
	stopping bool
}

// New returns a dashboard subscribed to the recorder's events.
func New(opts Options) *Dashboard {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Dashboard{
		opts:   opts,
		sub:    opts.Recorder.Hub().Subscribe(),
		help:   help.New(),
		writer: &statusWriter{path: opts.StatusPath},
		status: opts.Recorder.Status(),
		plan:   opts.Recorder.DrawPlan(),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.waitForEvent(), refresh())
}

func (d *Dashboard) waitForEvent() tea.Cmd {
	sub := d.sub

	return func() tea.Msg {
		e, ok := <-sub.C
		if !ok {
			return nil
		}

		return eventMsg(e)
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (d *Dashboard) split() tea.Cmd {
	rec, prefix := d.opts.Recorder, d.opts.Prefix

	return func() tea.Msg {
		exported, name, err := rec.Split(prefix)

		return splitMsg{exported: exported, name: name, err: err}
	}
}

func (d *Dashboard) stop() tea.Cmd {
	d.stopping = true

	rec := d.opts.Recorder

	return func() tea.Msg {
		exported, err := rec.Stop()

		return stoppedMsg{exported: exported, err: err}
	}
}

// fetch reads the recorder status and the trace to draw. With write set
// the status file is refreshed too.
func (d *Dashboard) fetch(write bool) tea.Cmd {
	rec, writer, now := d.opts.Recorder, d.writer, d.opts.Now

	return func() tea.Msg {
		st := rec.Status()

		if write {
			writer.write(st, now())
		}

		return statusMsg{status: st, plan: rec.DrawPlan()}
	}
}

// command runs a recorder command and reports its error.
func command(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return commandMsg{err: fn()}
	}
}

func (d *Dashboard) finish(msg stoppedMsg) tea.Cmd {
	d.Exported = msg.exported
	d.StopErr = msg.err

	d.opts.Recorder.Hub().Unsubscribe(d.sub)

	writer := d.writer

	return func() tea.Msg {
		writer.close()
		return tea.QuitMsg{}
	}
}
