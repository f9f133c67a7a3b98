package mindgames

import (
	"sync"
	"time"
)

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeScheduler records deferred callbacks so tests can fire them on demand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

// fire runs every timer that is still active.
func (s *fakeScheduler) fire() int {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// fireStopped runs callbacks whose timers were stopped, as happens when Stop
// loses the race against an expiring timer.
func (s *fakeScheduler) fireStopped() {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if t.stopped {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type fakeRand struct {
	ints   []int
	floats []float64
}

func (r *fakeRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *fakeRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestController(rng *fakeRand) (*Controller, *fakeScheduler) {
	sched := &fakeScheduler{}
	if rng == nil {
		rng = &fakeRand{}
	}
	c := NewController(
		WithScheduler(sched),
		WithRand(rng),
		WithClock(func() time.Time { return testNow }),
	)
	return c, sched
}
