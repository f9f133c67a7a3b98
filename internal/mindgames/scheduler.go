package mindgames

import (
	"math/rand"
	"time"
)

// Timer is a pending deferred callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Rand is the randomness the games draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock schedules callbacks on real timers.
func WallClock() Scheduler {
	return wallClock{}
}

func newRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
