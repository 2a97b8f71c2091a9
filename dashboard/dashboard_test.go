package dashboard

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tracklog/internal/projection"
	"github.com/ayoisaiah/tracklog/internal/tracklog"
)

type fakeRecorder struct {
	hub      *tracklog.Hub
	exported *tracklog.ExportedTrack
	stopErr  error
	calls    []string
	plan     []tracklog.TracePoint
	status   tracklog.Status
	// block, when set, holds every call until it is closed
	block chan struct{}
}

func (f *fakeRecorder) wait() {
	if f.block != nil {
		<-f.block
	}
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		hub: tracklog.NewHub(),
		status: tracklog.Status{
			Name:  "log_20240309#14-30-05",
			State: tracklog.Recording,
		},
	}
}

func (f *fakeRecorder) TogglePause() error {
	f.wait()

	f.calls = append(f.calls, "toggle")

	if f.status.State == tracklog.Recording {
		f.status.State = tracklog.Paused
	} else {
		f.status.State = tracklog.Recording
	}

	return nil
}

func (f *fakeRecorder) Split(prefix string) (*tracklog.ExportedTrack, string, error) {
	f.calls = append(f.calls, "split:"+prefix)
	return f.exported, "leg_20240309#14-31-00", nil
}

func (f *fakeRecorder) Stop() (*tracklog.ExportedTrack, error) {
	f.calls = append(f.calls, "stop")
	return f.exported, f.stopErr
}

func (f *fakeRecorder) ClearTrace() error {
	f.wait()

	f.calls = append(f.calls, "clear")
	return tracklog.ErrNotRecording
}

func (f *fakeRecorder) Status() tracklog.Status {
	f.wait()

	return f.status
}

func (f *fakeRecorder) DrawPlan() []tracklog.TracePoint {
	f.wait()

	return f.plan
}

func (f *fakeRecorder) Hub() *tracklog.Hub {
	return f.hub
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds every resulting message back into d until no
// command is left.
func run(d *Dashboard, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}

		_, cmd = d.Update(msg)
	}
}

func press(d *Dashboard, k string) {
	_, cmd := d.Update(keyPress(k))
	run(d, cmd)
}

func newTestDashboard(t *testing.T, rec *fakeRecorder) *Dashboard {
	t.Helper()

	return New(Options{
		Recorder:   rec,
		Projection: projection.NewMercator(projection.DefaultZoom),
		Style:      NewStyle(true),
		StatusPath: filepath.Join(t.TempDir(), "status.json"),
		Prefix:     "leg",
	})
}

func TestKeyCommands(t *testing.T) {
	rec := newFakeRecorder()
	d := newTestDashboard(t, rec)

	press(d, "p")
	assert.Equal(t, tracklog.Paused, d.status.State)

	press(d, "c")
	assert.ErrorIs(t, d.err, tracklog.ErrNotRecording)

	press(d, "+")
	assert.Equal(t, projection.DefaultZoom+1, d.opts.Projection.Zoom())

	press(d, "-")
	press(d, "-")
	assert.Equal(t, projection.DefaultZoom-1, d.opts.Projection.Zoom())

	press(d, "s")

	assert.Equal(t, []string{"toggle", "clear", "split:leg"}, rec.calls)
	assert.NoError(t, d.err)
}

func TestUpdateDoesNotWaitForRecorder(t *testing.T) {
	rec := newFakeRecorder()
	d := newTestDashboard(t, rec)

	rec.block = make(chan struct{})
	defer close(rec.block)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for _, k := range []string{"p", "c", "s", "+"} {
			d.Update(keyPress(k))
		}

		d.Update(eventMsg(tracklog.Event{
			Kind:  tracklog.StateChanged,
			State: tracklog.Stopped,
		}))
		d.Update(refreshMsg(time.Now()))
		d.Update(commandMsg{})
		_ = d.View()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Update blocked on a recorder call")
	}

	assert.Empty(t, rec.calls)
}

func TestQuitStopsAndExits(t *testing.T) {
	rec := newFakeRecorder()
	rec.exported = &tracklog.ExportedTrack{Path: "/tracks/a.gpx", Points: 3}

	d := newTestDashboard(t, rec)

	msg := d.fetch(true)()
	require.IsType(t, statusMsg{}, msg)
	require.FileExists(t, d.opts.StatusPath)

	written, err := ReadStatus(d.opts.StatusPath)
	require.NoError(t, err)
	assert.Equal(t, rec.status.Name, written.Name)

	_, cmd := d.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.True(t, d.stopping)

	// commands are ignored while the final export runs
	_, ignored := d.Update(keyPress("p"))
	assert.Nil(t, ignored)

	_, quit := d.Update(cmd())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	assert.Equal(t, rec.exported, d.Exported)
	assert.NoError(t, d.StopErr)
	assert.NoFileExists(t, d.opts.StatusPath)
	assert.Equal(t, []string{"stop"}, rec.calls)
}

func TestStopFailureIsKept(t *testing.T) {
	rec := newFakeRecorder()
	rec.stopErr = errors.New("disk full")

	d := newTestDashboard(t, rec)

	_, cmd := d.Update(keyPress("q"))
	d.Update(cmd())

	assert.Nil(t, d.Exported)
	assert.EqualError(t, d.StopErr, "disk full")
}

func TestExhaustedSourceStops(t *testing.T) {
	rec := newFakeRecorder()
	d := newTestDashboard(t, rec)
	d.opts.Done = func() bool { return true }

	_, cmd := d.Update(refreshMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.True(t, d.stopping)

	msg := cmd()
	assert.IsType(t, stoppedMsg{}, msg)
}

func TestEventsUpdateView(t *testing.T) {
	rec := newFakeRecorder()
	d := newTestDashboard(t, rec)

	rec.status.Points = 12

	d.Update(eventMsg(tracklog.Event{
		Kind:   tracklog.ExportDone,
		Export: &tracklog.ExportedTrack{Path: "/tracks/b.gpx", Points: 12},
	}))

	view := d.View()
	assert.Contains(t, view, "log_20240309#14-30-05")
	assert.Contains(t, view, "saved /tracks/b.gpx (12 points)")

	d.Update(eventMsg(tracklog.Event{
		Kind: tracklog.ExportFailed,
		Err:  errors.New("no space left"),
	}))
	assert.Contains(t, d.View(), "no space left")
}

func TestEventSubscription(t *testing.T) {
	rec := newFakeRecorder()
	d := newTestDashboard(t, rec)

	rec.hub.Notify(tracklog.Event{Kind: tracklog.TrackUpdated, Points: 1})

	msg := d.waitForEvent()()
	require.IsType(t, eventMsg{}, msg)
	assert.Equal(t, tracklog.TrackUpdated, msg.(eventMsg).Kind)

	rec.hub.Unsubscribe(d.sub)
	assert.Nil(t, d.waitForEvent()())
}

func TestRenderTrace(t *testing.T) {
	points := []tracklog.TracePoint{
		{X: 10, Y: 10, Index: 2},
		{X: 10 + cellWidth, Y: 10, Index: 1},
		{X: 10 - 2*cellWidth, Y: 10 + cellHeight, Index: 0},
		{X: 1000, Y: 10, Index: 0},
	}

	got := renderTrace(points, 1, 7, 3)

	expected := strings.Join([]string{
		"       ",
		"   @·  ",
		" ·     ",
	}, "\n")

	assert.Equal(t, expected, got)
	assert.Equal(t, strings.Repeat(" ", 3)+"\n"+strings.Repeat(" ", 3), renderTrace(nil, 1, 3, 2))
	assert.Empty(t, renderTrace(points, 1, 0, 3))
}

func TestStatusFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	missing, err := ReadStatus(path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	now := time.Date(2024, time.March, 9, 14, 31, 0, 0, time.UTC)

	err = WriteStatus(path, newStatusFile(tracklog.Status{
		Name:     "log_20240309#14-30-05",
		State:    tracklog.Paused,
		Elapsed:  55 * time.Second,
		Points:   40,
		Distance: 1.2,
	}, now))
	require.NoError(t, err)

	s, err := ReadStatus(path)
	require.NoError(t, err)
	assert.Equal(t, "paused", s.State)
	assert.Equal(t, 40, s.Points)
	assert.True(t, s.UpdatedAt.Equal(now))

	require.NoError(t, RemoveStatus(path))
	require.NoError(t, RemoveStatus(path))
}
