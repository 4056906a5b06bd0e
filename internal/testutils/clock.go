package testutils

import (
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/jzx17/wakeworker/pkg/types"
)

// NewMockClock creates a quartz mock clock bound to t
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// ClockWrapper adapts a quartz mock to types.Clock. The embedded mock stays
// reachable for Peek and Advance.
type ClockWrapper struct {
	*quartz.Mock
}

var _ types.Clock = (*ClockWrapper)(nil)

// NewClockWrapper wraps mock as a types.Clock
func NewClockWrapper(mock *quartz.Mock) *ClockWrapper {
	return &ClockWrapper{Mock: mock}
}

// quartz methods take optional trap tags, so each one is forwarded explicitly

func (c *ClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

func (c *ClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

func (c *ClockWrapper) NewTimer(d time.Duration) types.Timer {
	return mockTimer{c.Mock.NewTimer(d)}
}

func (c *ClockWrapper) NewTicker(d time.Duration) types.Ticker {
	return mockTicker{c.Mock.NewTicker(d)}
}

type mockTimer struct{ t *quartz.Timer }

func (m mockTimer) C() <-chan time.Time { return m.t.C }
func (m mockTimer) Stop() bool          { return m.t.Stop() }

type mockTicker struct{ t *quartz.Ticker }

func (m mockTicker) C() <-chan time.Time { return m.t.C }
func (m mockTicker) Stop()               { m.t.Stop() }
