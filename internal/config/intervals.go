package config

import (
	"sync"
	"time"
)

// IntervalKind names one of the two recording intervals.
type IntervalKind int

const (
	LogInterval IntervalKind = iota
	SaveInterval
)

func (k IntervalKind) String() string {
	if k == SaveInterval {
		return "save"
	}

	return "log"
}

// Intervals holds the live recording intervals. Listeners registered with
// OnChange are called synchronously whenever an interval changes value.
type Intervals struct {
	listeners []func(IntervalKind, time.Duration)
	values    [2]time.Duration
	mu        sync.Mutex
}

// NewIntervals returns intervals starting at the given values.
func NewIntervals(logEvery, saveEvery time.Duration) *Intervals {
	return &Intervals{
		values: [2]time.Duration{logEvery, saveEvery},
	}
}

// Get returns the current value of an interval.
func (i *Intervals) Get(kind IntervalKind) time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.values[kind]
}

// Set changes an interval and notifies listeners if the value differs.
func (i *Intervals) Set(kind IntervalKind, d time.Duration) error {
	if d <= 0 {
		return errInvalidInterval.Fmt(kind, d)
	}

	i.mu.Lock()

	if i.values[kind] == d {
		i.mu.Unlock()
		return nil
	}

	i.values[kind] = d
	listeners := append([]func(IntervalKind, time.Duration){}, i.listeners...)

	i.mu.Unlock()

	for _, fn := range listeners {
		fn(kind, d)
	}

	return nil
}

// OnChange registers fn to be called after every change.
func (i *Intervals) OnChange(fn func(IntervalKind, time.Duration)) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.listeners = append(i.listeners, fn)
}
