package dashboard

import (
	"math"
	"strings"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

const (
	// pixels covered by one terminal cell; cells are about twice as tall as
	// they are wide
	cellWidth  = 4.0
	cellHeight = 8.0

	markTrace   = '·'
	markCurrent = '@'
)

// renderTrace draws points (newest first, in world coordinates) on a w by h
// grid centred on the newest point. scale converts world coordinates to
// pixels at the current zoom.
func renderTrace(points []tracklog.TracePoint, scale float64, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}

	if len(points) > 0 {
		cx, cy := points[0].X, points[0].Y

		// oldest first so the current position is drawn last
		for i := len(points) - 1; i >= 0; i-- {
			p := points[i]

			col := w/2 + int(math.Round((p.X-cx)*scale/cellWidth))
			row := h/2 + int(math.Round((p.Y-cy)*scale/cellHeight))

			if col < 0 || col >= w || row < 0 || row >= h {
				continue
			}

			grid[row][col] = markTrace
			if i == 0 {
				grid[row][col] = markCurrent
			}
		}
	}

	lines := make([]string, h)
	for i, r := range grid {
		lines[i] = string(r)
	}

	return strings.Join(lines, "\n")
}
