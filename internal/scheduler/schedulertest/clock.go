// Package schedulertest runs a scheduler.Loop on a mock clock for tests.
package schedulertest

import (
	"aimtrainer/internal/scheduler"
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
)

const waitTimeout = 5 * time.Second

// Clock is a running scheduler.Loop driven by a quartz mock. Between calls
// to Advance the loop is idle, so tests may touch loop-owned state directly.
type Clock struct {
	*scheduler.Loop
	t    testing.TB
	mock *quartz.Mock
	ctx  context.Context
}

// New starts a loop whose clock reads start. The loop stops when the test
// ends.
func New(t testing.TB, start time.Time) *Clock {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mock := quartz.NewMock(t)
	c := &Clock{t: t, mock: mock, ctx: ctx}
	c.wait(mock.Set(start))

	c.Loop = scheduler.NewLoop(mock, 256)
	go c.Loop.Run(ctx)
	return c
}

// Mock returns the underlying mock clock.
func (c *Clock) Mock() *quartz.Mock {
	return c.mock
}

// Advance moves the clock forward by d one timer at a time, letting the
// loop run each batch of due callbacks before the next step.
func (c *Clock) Advance(d time.Duration) {
	c.t.Helper()
	for {
		c.Settle()
		next, ok := c.mock.Peek()
		if !ok || next > d {
			break
		}
		c.wait(c.mock.Advance(next))
		d -= next
	}
	if d > 0 {
		c.wait(c.mock.Advance(d))
	}
	c.Settle()
}

// Settle blocks until the loop has run everything queued so far.
func (c *Clock) Settle() {
	c.t.Helper()
	done := make(chan struct{})
	c.Post(func() { close(done) })
	select {
	case <-done:
	case <-time.After(waitTimeout):
		c.t.Fatal("loop did not settle")
	}
}

func (c *Clock) wait(w quartz.AdvanceWaiter) {
	c.t.Helper()
	ctx, cancel := context.WithTimeout(c.ctx, waitTimeout)
	defer cancel()
	w.MustWait(ctx)
}
