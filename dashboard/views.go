package dashboard

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/tracklog/internal/timeutil"
	"github.com/ayoisaiah/tracklog/internal/tracklog"
	"github.com/ayoisaiah/tracklog/internal/ui"
)

func (d *Dashboard) headerView() string {
	st := d.status
	style := d.opts.Style

	name := st.Name
	if name == "" {
		name = "tracklog"
	}

	var badge string

	switch st.State {
	case tracklog.Recording:
		badge = style.Recording.Render("● REC")
	case tracklog.Paused:
		badge = style.Paused.Render("[Paused]")
	default:
		badge = style.Hint.Render(st.State.String())
	}

	return style.Title.Render(name) + "  " + badge
}

func (d *Dashboard) row(label, value string) string {
	return d.opts.Style.Label.Render(label) + d.opts.Style.Value.Render(value)
}

func (d *Dashboard) statsView() string {
	st := d.status

	rows := []string{
		d.row("Elapsed", timeutil.FormatElapsed(st.Elapsed)),
		d.row("Points", fmt.Sprintf("%d", st.Points)),
		d.row("Distance", ui.FormatDistance(st.Distance)),
		d.row("Speed", ui.FormatSpeed(st.Speed, st.HasSpeed)),
		d.row("Average", ui.FormatSpeed(st.AvgSpeed, st.AvgSpeed > 0)),
		d.row("Max", ui.FormatSpeed(st.MaxSpeed, st.MaxSpeed > 0)),
		d.row("Zoom", fmt.Sprintf("%d", d.opts.Projection.Zoom())),
	}

	return strings.Join(rows, "\n")
}

func (d *Dashboard) canvasView() string {
	// border, header, stats, messages and help
	const chrome = 2 + 2 + 8 + 3 + 2

	w := max(d.width-2, minCanvas)
	h := max(d.height-chrome, minCanvas)

	trace := renderTrace(d.plan, d.opts.Projection.Scale(), w, h)

	return d.opts.Style.Canvas.Render(trace)
}

func (d *Dashboard) messagesView() string {
	var lines []string

	style := d.opts.Style

	if d.status.PrimaryDegraded {
		lines = append(lines, style.Error.Render("primary log copy failed, recording on the secondary"))
	}

	if d.status.SecondaryDegraded {
		lines = append(lines, style.Error.Render("secondary log copy failed, recording on the primary"))
	}

	if d.last != nil {
		lines = append(lines, style.Hint.Render(
			fmt.Sprintf("saved %s (%d points)", d.last.Path, d.last.Points),
		))
	}

	if d.err != nil {
		lines = append(lines, style.Error.Render(d.err.Error()))
	}

	return strings.Join(lines, "\n")
}

func (d *Dashboard) View() string {
	if d.stopping {
		return d.opts.Style.Hint.Render("Saving track...") + "\n"
	}

	var s strings.Builder

	s.WriteString(d.headerView())
	s.WriteString("\n\n" + d.statsView())
	s.WriteString("\n" + d.canvasView())

	if msgs := d.messagesView(); msgs != "" {
		s.WriteString("\n" + msgs)
	}

	s.WriteString("\n" + d.help.ShortHelpView(defaultKeymap.ShortHelp()))

	return s.String()
}
