package tracklog

import (
	"bufio"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/ayoisaiah/tracklog/internal/track"
)

var errInjected = errors.New("injected write failure")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errInjected
}

// flakySyncFile fails its first `failures` calls to Sync.
type flakySyncFile struct {
	failures int
	syncs    int
}

func (f *flakySyncFile) Write(b []byte) (int, error) {
	return len(b), nil
}

func (f *flakySyncFile) Sync() error {
	f.syncs++

	if f.syncs <= f.failures {
		return errInjected
	}

	return nil
}

func (f *flakySyncFile) Close() error {
	return nil
}

// breakHandle makes every further write to h fail.
func breakHandle(h *LogHandle) {
	h.w = bufio.NewWriterSize(failingWriter{}, 16)
}

var baseTime = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

func elev(v float64) *float64 {
	return &v
}

func pointAt(lat, lon float64, offset int) track.Point {
	return track.NewPoint(lat, lon, nil, baseTime.Add(time.Duration(offset)*time.Second))
}

func samplePoints() []track.Point {
	return []track.Point{
		track.NewPoint(49.1951, 16.6068, elev(237), baseTime),
		track.NewPoint(49.1961, 16.6078, elev(240.5), baseTime.Add(time.Second)),
		track.NewPoint(49.1971, 16.6088, nil, baseTime.Add(2*time.Second)),
	}
}

// manualScheduler records periodic actions and fires them only on demand.
type manualScheduler struct {
	timers map[TimerID]*manualTimer
	mu     sync.Mutex
	next   TimerID
}

type manualTimer struct {
	fn       func()
	interval time.Duration
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{timers: make(map[TimerID]*manualTimer)}
}

func (s *manualScheduler) AddPeriodic(fn func(), interval time.Duration) TimerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.timers[s.next] = &manualTimer{fn: fn, interval: interval}

	return s.next
}

func (s *manualScheduler) Modify(id TimerID, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.interval = interval
	}
}

func (s *manualScheduler) Remove(id TimerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.timers, id)
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

func (s *manualScheduler) interval(id TimerID) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		return t.interval
	}

	return 0
}

func (s *manualScheduler) callback(id TimerID) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		return t.fn
	}

	return nil
}

// fire runs the callback of id once. The callback must not be called with
// the scheduler lock held since it takes the recorder lock.
func (s *manualScheduler) fire(id TimerID) {
	if fn := s.callback(id); fn != nil {
		fn()
	}
}

type fix struct {
	speed     *float64
	elevation *float64
	lat       float64
	lon       float64
	ok        bool
}

// scriptedLocation returns its current fix until the next one is set.
type scriptedLocation struct {
	cur fix
	mu  sync.Mutex
}

func (l *scriptedLocation) set(f fix) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cur = f
}

func (l *scriptedLocation) Position() (lat, lon float64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.cur.lat, l.cur.lon, l.cur.ok
}

func (l *scriptedLocation) Speed() (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cur.speed == nil {
		return 0, false
	}

	return *l.cur.speed, true
}

func (l *scriptedLocation) Elevation() (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cur.elevation == nil {
		return 0, false
	}

	return *l.cur.elevation, true
}

// fakeClock is advanced manually.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func globNames(t *testing.T, dir, pattern string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}

	sort.Strings(names)

	return names
}
