package tracklog

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerSchedulerRunsUntilRemoved(t *testing.T) {
	s := NewTickerScheduler()
	defer s.Close()

	var calls atomic.Int32

	id := s.AddPeriodic(func() {
		calls.Add(1)
	}, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, time.Millisecond)

	s.Remove(id)

	// allow a tick that was already running to finish
	time.Sleep(20 * time.Millisecond)

	after := calls.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestTickerSchedulerModify(t *testing.T) {
	s := NewTickerScheduler()
	defer s.Close()

	var calls atomic.Int32

	id := s.AddPeriodic(func() {
		calls.Add(1)
	}, time.Hour)

	s.Modify(id, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestTickerSchedulerIgnoresUnknownTimers(t *testing.T) {
	s := NewTickerScheduler()

	s.Modify(TimerID(42), time.Second)
	s.Remove(TimerID(42))

	s.Close()
}

func TestTickerSchedulerCloseStopsAll(t *testing.T) {
	s := NewTickerScheduler()

	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		s.AddPeriodic(func() {
			calls.Add(1)
		}, 2*time.Millisecond)
	}

	time.Sleep(10 * time.Millisecond)
	s.Close()

	after := calls.Load()

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
