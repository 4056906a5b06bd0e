package types

import "time"

// Clock is the time source of a worker. Tests swap in a mock to drive
// join timeouts and settle polling without sleeping.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTimer(d time.Duration) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer fires once on C unless stopped first
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Ticker fires on C every period until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock is the wall clock
type RealClock struct{}

// NewRealClock returns the wall clock
func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

func (RealClock) NewTimer(d time.Duration) Timer {
	return stdTimer{time.NewTimer(d)}
}

func (RealClock) NewTicker(d time.Duration) Ticker {
	return stdTicker{time.NewTicker(d)}
}

type stdTimer struct{ *time.Timer }

func (t stdTimer) C() <-chan time.Time { return t.Timer.C }

type stdTicker struct{ *time.Ticker }

func (t stdTicker) C() <-chan time.Time { return t.Ticker.C }
