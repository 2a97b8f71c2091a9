package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

func (d *Dashboard) handleEvent(msg eventMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case tracklog.ExportDone:
		d.last = msg.Export
	case tracklog.ExportFailed:
		d.err = msg.Err
	}

	return d, tea.Batch(d.waitForEvent(), d.fetch(false))
}

func (d *Dashboard) handleRefresh() (tea.Model, tea.Cmd) {
	if d.stopping {
		return d, nil
	}

	if d.opts.Done != nil && d.opts.Done() {
		return d, d.stop()
	}

	return d, tea.Batch(d.fetch(true), refresh())
}

func (d *Dashboard) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.stopping {
		return d, nil
	}

	switch {
	case key.Matches(msg, defaultKeymap.togglePause):
		return d, command(d.opts.Recorder.TogglePause)

	case key.Matches(msg, defaultKeymap.split):
		return d, d.split()

	case key.Matches(msg, defaultKeymap.clear):
		return d, command(d.opts.Recorder.ClearTrace)

	case key.Matches(msg, defaultKeymap.zoomIn):
		d.opts.Projection.SetZoom(d.opts.Projection.Zoom() + 1)
		return d, d.fetch(false)

	case key.Matches(msg, defaultKeymap.zoomOut):
		d.opts.Projection.SetZoom(d.opts.Projection.Zoom() - 1)
		return d, d.fetch(false)

	case key.Matches(msg, defaultKeymap.quit):
		return d, d.stop()
	}

	return d, nil
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return d.handleEvent(msg)

	case refreshMsg:
		return d.handleRefresh()

	case statusMsg:
		d.status = msg.status
		d.plan = msg.plan

		return d, nil

	case commandMsg:
		// invalid commands are reported but never end the recording
		d.err = msg.err

		return d, d.fetch(false)

	case splitMsg:
		d.err = msg.err
		if msg.exported != nil {
			d.last = msg.exported
		}

		return d, d.fetch(false)

	case stoppedMsg:
		return d, d.finish(msg)

	case tea.KeyMsg:
		return d.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.help.Width = msg.Width

		return d, nil
	}

	return d, nil
}
