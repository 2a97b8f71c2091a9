package tracklog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayoisaiah/tracklog/internal/osutil"
	"github.com/ayoisaiah/tracklog/internal/track"
)

const (
	// DefaultNamePrefix is used when a session is started without a prefix.
	DefaultNamePrefix = "log"

	DefaultUpdateInterval = time.Second
	DefaultSaveInterval   = 10 * time.Second

	nameTimeLayout = "20060102#15-04-05"
)

// State is the lifecycle state of a recording session.
type State int

const (
	Idle State = iota
	Recording
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LocationProvider supplies the current fix. Speed is in km/h and
// elevation in metres.
type LocationProvider interface {
	Position() (lat, lon float64, ok bool)
	Speed() (float64, bool)
	Elevation() (float64, bool)
}

// Options configures a Recorder. Folder and Location are required.
type Options struct {
	Location       LocationProvider
	Projector      Projector
	Scheduler      Scheduler
	Codec          Codec
	Now            func() time.Time
	Folder         string
	NamePrefix     string
	UpdateInterval time.Duration
	SaveInterval   time.Duration
}

// Session is one bounded recording interval. It owns both log copies for
// its whole lifetime.
type Session struct {
	StartTime   time.Time
	Log         *RedundantLog
	Trace       *Trace
	Name        string
	Stats       Stats
	State       State
	Speed       float64
	HasSpeed    bool
	updateTimer TimerID
	saveTimer   TimerID
}

// ExportedTrack describes a session log that was converted to GPX.
type ExportedTrack struct {
	Meta       track.Meta
	Path       string
	Generation Generation
	Points     int
	Distance   float64
	MaxSpeed   float64
	AvgSpeed   float64
	Duration   time.Duration
	Recovered  bool
}

// Status is a snapshot of the recorder for presentation.
type Status struct {
	StartTime         time.Time
	Name              string
	Folder            string
	State             State
	Elapsed           time.Duration
	Points            int
	TracePoints       int
	Speed             float64
	HasSpeed          bool
	MaxSpeed          float64
	AvgSpeed          float64
	Distance          float64
	PrimaryDegraded   bool
	SecondaryDegraded bool
}

// Recorder drives recording sessions. One mutex serialises scheduler ticks
// and commands so that both log copies, the statistics and the trace see
// points in the same order. Status and DrawPlan read a snapshot published
// after every change and never wait on that mutex, which is held across
// flushes and exports.
type Recorder struct {
	hub       *Hub
	session   *Session
	opts      Options
	view      snapshot
	mu        sync.Mutex
	recovered bool
}

type snapshot struct {
	status Status
	trace  []TracePoint
	mu     sync.RWMutex
}

// NewRecorder validates opts and fills in defaults for the optional
// collaborators.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Folder == "" {
		return nil, errMissingFolder
	}

	if opts.Location == nil {
		return nil, errMissingLocation
	}

	if opts.NamePrefix == "" {
		opts.NamePrefix = DefaultNamePrefix
	}

	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = DefaultUpdateInterval
	}

	if opts.SaveInterval <= 0 {
		opts.SaveInterval = DefaultSaveInterval
	}

	if opts.Codec == nil {
		opts.Codec = track.FileCodec{}
	}

	if opts.Scheduler == nil {
		opts.Scheduler = NewTickerScheduler()
	}

	if opts.Projector == nil {
		opts.Projector = plainProjector{}
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Recorder{
		opts: opts,
		hub:  NewHub(),
	}

	r.publish()

	return r, nil
}

// Hub returns the event hub observers register with.
func (r *Recorder) Hub() *Hub {
	return r.hub
}

// Folder returns the folder logs are written to.
func (r *Recorder) Folder() string {
	return r.opts.Folder
}

// Recover exports orphaned logs in the recorder's folder. It must run
// before the first Start, and fails while a session is active.
func (r *Recorder) Recover() (*RecoveryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return nil, ErrAlreadyRecording
	}

	err := os.MkdirAll(r.opts.Folder, osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	report, err := Recover(r.opts.Folder, r.opts.Codec)
	if err != nil {
		return report, err
	}

	r.recovered = true

	for _, res := range report.Results {
		if res.Err != nil {
			r.hub.Notify(Event{
				Kind: ExportFailed,
				Name: res.Meta.Name,
				Err:  res.Err,
			})

			continue
		}

		r.hub.Notify(Event{
			Kind: ExportDone,
			Name: res.Meta.Name,
			Export: &ExportedTrack{
				Meta:       res.Meta,
				Path:       res.Exported,
				Generation: res.Orphan.Generation,
				Points:     res.Points,
				Recovered:  true,
			},
		})
	}

	return report, nil
}

// Start opens a new session named <prefix>_<YYYYMMDD>#<HH-MM-SS> (UTC) and
// returns the name. An empty prefix uses the configured one.
func (r *Recorder) Start(prefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.start(prefix)
}

func (r *Recorder) start(prefix string) (string, error) {
	if r.session != nil {
		return "", ErrAlreadyRecording
	}

	if !r.recovered {
		return "", ErrNotRecovered
	}

	if prefix == "" {
		prefix = r.opts.NamePrefix
	}

	now := r.opts.Now()

	name := r.uniqueName(
		fmt.Sprintf("%s_%s", prefix, now.UTC().Format(nameTimeLayout)),
	)

	l, err := OpenRedundantLog(r.opts.Folder, name, r.opts.Codec)
	if err != nil {
		return "", err
	}

	s := &Session{
		Name:      name,
		StartTime: now,
		Log:       l,
		Stats:     NewStats(now),
		Trace:     NewTrace(r.opts.Projector),
		State:     Recording,
	}

	s.updateTimer = r.opts.Scheduler.AddPeriodic(func() {
		r.tick(s)
	}, r.opts.UpdateInterval)

	s.saveTimer = r.opts.Scheduler.AddPeriodic(func() {
		r.save(s)
	}, r.opts.SaveInterval)

	r.session = s

	slog.Info(
		"track logging started",
		slog.String("name", name),
		slog.String("folder", r.opts.Folder),
	)

	r.notifyState(s)

	return name, nil
}

// uniqueName appends a numeric suffix while temporaries for name still
// exist, so a new session never appends to retained data.
func (r *Recorder) uniqueName(name string) string {
	candidate := name

	for i := 1; i <= maxExportSuffix; i++ {
		if !r.temporariesExist(candidate) {
			return candidate
		}

		candidate = fmt.Sprintf("%s_%d", name, i)
	}

	return candidate
}

func (r *Recorder) temporariesExist(name string) bool {
	for _, suffix := range []string{primarySuffix, secondarySuffix} {
		_, err := os.Lstat(filepath.Join(r.opts.Folder, name+suffix))
		if !errors.Is(err, fs.ErrNotExist) {
			return true
		}
	}

	return false
}

// Pause flushes both logs and suspends point intake. The save timer keeps
// running.
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session

	switch {
	case s == nil:
		return ErrNotRecording
	case s.State == Paused:
		return ErrAlreadyPaused
	}

	_ = s.Log.Flush()

	s.State = Paused

	slog.Info("track logging paused", slog.String("name", s.Name))

	r.notifyState(s)

	return nil
}

// Resume restarts point intake for a paused session.
func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session
	if s == nil || s.State != Paused {
		return ErrNotPaused
	}

	s.State = Recording
	// time spent paused does not weigh the average speed
	s.Stats.LastUpdate = r.opts.Now()

	slog.Info("track logging resumed", slog.String("name", s.Name))

	r.notifyState(s)

	return nil
}

// TogglePause pauses a recording session or resumes a paused one.
func (r *Recorder) TogglePause() error {
	r.mu.Lock()
	paused := r.session != nil && r.session.State == Paused
	r.mu.Unlock()

	if paused {
		return r.Resume()
	}

	return r.Pause()
}

// Stop ends the active session and exports it, trying the primary copy
// first and the secondary copy if that fails. On success both temporaries
// are deleted. When neither copy exports, the temporaries are kept for the
// next recovery pass and the returned error matches ErrExport. The
// recorder is Idle afterwards either way.
func (r *Recorder) Stop() (*ExportedTrack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stop()
}

func (r *Recorder) stop() (*ExportedTrack, error) {
	s := r.session
	if s == nil {
		return nil, ErrNotRecording
	}

	r.opts.Scheduler.Remove(s.updateTimer)
	r.opts.Scheduler.Remove(s.saveTimer)

	s.State = Stopped
	r.notifyState(s)

	_ = s.Log.Flush()

	meta := track.Meta{Name: s.Name, Start: s.StartTime.UTC()}

	var errs []error

	for _, h := range exportOrder(s.Log) {
		dest, points, err := s.Log.Export(h, meta)
		if err != nil {
			slog.Error(
				fmt.Sprintf("exporting %s tracklog failed", h.Generation),
				slog.String("name", s.Name),
				slog.Any("error", err),
			)

			errs = append(errs, err)

			continue
		}

		s.Log.DeleteTemporaries()

		exported := &ExportedTrack{
			Meta:       meta,
			Path:       dest,
			Generation: h.Generation,
			Points:     len(points),
			Distance:   s.Stats.Distance,
			MaxSpeed:   s.Stats.MaxSpeed,
			AvgSpeed:   s.Stats.AvgSpeed,
			Duration:   r.opts.Now().Sub(s.StartTime),
		}

		slog.Info(
			"track logging stopped",
			slog.String("name", s.Name),
			slog.String("dest", dest),
			slog.Int("points", len(points)),
		)

		r.finish(s)

		r.hub.Notify(Event{
			Kind:   ExportDone,
			Name:   s.Name,
			Export: exported,
			Points: len(points),
		})

		return exported, nil
	}

	if cerr := s.Log.Close(); cerr != nil {
		slog.Warn(
			"closing temporary logs failed",
			slog.String("name", s.Name),
			slog.Any("error", cerr),
		)
	}

	err := errors.Join(errs...)

	r.finish(s)

	r.hub.Notify(Event{
		Kind: ExportFailed,
		Name: s.Name,
		Err:  err,
	})

	return nil, err
}

func (r *Recorder) finish(s *Session) {
	r.session = nil

	s.State = Idle
	r.notifyState(s)
}

// exportOrder returns the primary copy first unless only the secondary is
// still healthy.
func exportOrder(l *RedundantLog) []*LogHandle {
	if l.Primary.Degraded && !l.Secondary.Degraded {
		return []*LogHandle{l.Secondary, l.Primary}
	}

	return []*LogHandle{l.Primary, l.Secondary}
}

// Split stops the active session and immediately starts a new one. The old
// session is flushed and exported before the new one opens. An export
// failure of the old session does not prevent the new one from starting.
func (r *Recorder) Split(prefix string) (*ExportedTrack, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exported, stopErr := r.stop()
	if errors.Is(stopErr, ErrSessionState) {
		return nil, "", stopErr
	}

	name, err := r.start(prefix)
	if err != nil {
		return exported, "", errors.Join(stopErr, err)
	}

	return exported, name, stopErr
}

// Shutdown stops the active session, if any.
func (r *Recorder) Shutdown() (*ExportedTrack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil, nil
	}

	slog.Info("stopping track logging on shutdown")

	return r.stop()
}

// Close stops the active session and the scheduler, when the scheduler
// can be closed.
func (r *Recorder) Close() (*ExportedTrack, error) {
	exported, err := r.Shutdown()

	if c, ok := r.opts.Scheduler.(interface{ Close() }); ok {
		c.Close()
	}

	return exported, err
}

func (r *Recorder) tick(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// a tick that raced with Stop or Split belongs to a finished session
	if r.session != s || s.State != Recording {
		return
	}

	r.record(s)
}

func (r *Recorder) record(s *Session) {
	lat, lon, ok := r.opts.Location.Position()
	if !ok {
		return
	}

	now := r.opts.Now()

	var elevation *float64
	if e, ok := r.opts.Location.Elevation(); ok {
		elevation = &e
	}

	speed, hasSpeed := r.opts.Location.Speed()

	err := s.Log.Append(track.NewPoint(lat, lon, elevation, now))
	if errors.Is(err, ErrAllCopiesFailed) {
		slog.Error(
			"no healthy log copy left",
			slog.String("name", s.Name),
			slog.Any("error", err),
		)
	}

	s.Speed, s.HasSpeed = speed, hasSpeed
	s.Stats.Update(LatLon{Lat: lat, Lon: lon}, speed, hasSpeed, now)
	s.Trace.Add(lat, lon)

	r.publish()

	r.hub.Notify(Event{
		Kind:   TrackUpdated,
		Name:   s.Name,
		State:  s.State,
		Points: s.Log.PointCount(),
	})
}

func (r *Recorder) save(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != s {
		return
	}

	elapsed := r.opts.Now().Sub(s.StartTime)

	slog.Debug(
		"saving tracklog",
		slog.String("name", s.Name),
		slog.Float64("minutes", elapsed.Minutes()),
	)

	_ = s.Log.Flush()

	// a failed flush may have degraded a copy
	r.publish()
}

func (r *Recorder) notifyState(s *Session) {
	r.publish()

	r.hub.Notify(Event{
		Kind:  StateChanged,
		Name:  s.Name,
		State: s.State,
	})
}

// publish refreshes the snapshot read by Status and DrawPlan. It is called
// with r.mu held.
func (r *Recorder) publish() {
	st := Status{
		State:  Idle,
		Folder: r.opts.Folder,
	}

	var trace []TracePoint

	if s := r.session; s != nil {
		st.Name = s.Name
		st.State = s.State
		st.StartTime = s.StartTime
		st.Points = s.Log.PointCount()
		st.TracePoints = s.Trace.Len()
		st.Speed = s.Speed
		st.HasSpeed = s.HasSpeed
		st.MaxSpeed = s.Stats.MaxSpeed
		st.AvgSpeed = s.Stats.AvgSpeed
		st.Distance = s.Stats.Distance
		st.PrimaryDegraded = s.Log.Primary.Degraded
		st.SecondaryDegraded = s.Log.Secondary.Degraded

		trace = s.Trace.kept()
	}

	r.view.mu.Lock()
	defer r.view.mu.Unlock()

	r.view.status = st
	r.view.trace = trace
}

// Status returns a snapshot of the active session, or an Idle status.
func (r *Recorder) Status() Status {
	r.view.mu.RLock()
	st := r.view.status
	r.view.mu.RUnlock()

	if st.State != Idle {
		st.Elapsed = r.opts.Now().Sub(st.StartTime)
	}

	return st
}

// ClearTrace empties the on-map trace of the active session. The logs are
// not touched.
func (r *Recorder) ClearTrace() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session
	if s == nil {
		return ErrNotRecording
	}

	s.Trace.Clear()

	r.publish()

	r.hub.Notify(Event{
		Kind:   TrackUpdated,
		Name:   s.Name,
		State:  s.State,
		Points: s.Log.PointCount(),
	})

	return nil
}

// DrawPlan returns the trace points to render at the projector's current
// zoom, newest first.
func (r *Recorder) DrawPlan() []TracePoint {
	r.view.mu.RLock()
	trace := r.view.trace
	r.view.mu.RUnlock()

	if trace == nil {
		return nil
	}

	return drawPlan(trace, r.opts.Projector.Zoom())
}

// SetUpdateInterval changes how often a point is recorded, including for
// the active session.
func (r *Recorder) SetUpdateInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d <= 0 {
		return
	}

	r.opts.UpdateInterval = d

	if r.session != nil {
		r.opts.Scheduler.Modify(r.session.updateTimer, d)
	}
}

// SetSaveInterval changes how often the logs are flushed, including for
// the active session.
func (r *Recorder) SetSaveInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d <= 0 {
		return
	}

	r.opts.SaveInterval = d

	if r.session != nil {
		r.opts.Scheduler.Modify(r.session.saveTimer, d)
	}
}
