package tracklog

import (
	"sync"
	"time"
)

// TimerID identifies a periodic action registered with a Scheduler.
type TimerID int

// Scheduler runs periodic actions. Implementations may call fn from any
// goroutine.
type Scheduler interface {
	AddPeriodic(fn func(), interval time.Duration) TimerID
	Modify(id TimerID, interval time.Duration)
	Remove(id TimerID)
}

type periodic struct {
	reset chan time.Duration
	done  chan struct{}
}

// TickerScheduler runs each periodic action on its own goroutine driven by
// a time.Ticker.
type TickerScheduler struct {
	timers map[TimerID]*periodic
	mu     sync.Mutex
	wg     sync.WaitGroup
	next   TimerID
}

// NewTickerScheduler returns an empty scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{
		timers: make(map[TimerID]*periodic),
	}
}

// AddPeriodic calls fn every interval until the timer is removed.
func (s *TickerScheduler) AddPeriodic(fn func(), interval time.Duration) TimerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next

	p := &periodic{
		reset: make(chan time.Duration, 1),
		done:  make(chan struct{}),
	}

	s.timers[id] = p

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				return
			case d := <-p.reset:
				ticker.Reset(d)
			case <-ticker.C:
				// a removal racing with a tick wins
				select {
				case <-p.done:
					return
				default:
				}

				fn()
			}
		}
	}()

	return id
}

// Modify changes the interval of a live timer. Unknown ids are ignored.
func (s *TickerScheduler) Modify(id TimerID, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.timers[id]
	if !ok || interval <= 0 {
		return
	}

	// only the latest interval matters
	select {
	case <-p.reset:
	default:
	}

	p.reset <- interval
}

// Remove stops a timer. It does not wait for a callback already running.
func (s *TickerScheduler) Remove(id TimerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.timers[id]
	if !ok {
		return
	}

	close(p.done)
	delete(s.timers, id)
}

// Close removes every timer and waits for their goroutines to exit.
func (s *TickerScheduler) Close() {
	s.mu.Lock()

	for id, p := range s.timers {
		close(p.done)
		delete(s.timers, id)
	}

	s.mu.Unlock()

	s.wg.Wait()
}
