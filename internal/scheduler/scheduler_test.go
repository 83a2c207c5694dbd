package scheduler_test

import (
	"aimtrainer/internal/scheduler"
	"aimtrainer/internal/scheduler/schedulertest"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLoop_AdvanceFiresInOrder(t *testing.T) {
	c := schedulertest.New(t, epoch)
	var got []string

	c.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(time.Second)

	if s := strings.Join(got, ""); s != "abc" {
		t.Errorf("fire order = %q, want %q", s, "abc")
	}
	if !c.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Now = %v, want %v", c.Now(), epoch.Add(time.Second))
	}
}

func TestLoop_NowDuringCallback(t *testing.T) {
	c := schedulertest.New(t, epoch)
	var at time.Time
	c.AfterFunc(250*time.Millisecond, func() { at = c.Now() })

	c.Advance(time.Second)

	if want := epoch.Add(250 * time.Millisecond); !at.Equal(want) {
		t.Errorf("Now in callback = %v, want %v", at, want)
	}
}

func TestLoop_RescheduleWithinAdvance(t *testing.T) {
	c := schedulertest.New(t, epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(100*time.Millisecond, tick)
	}
	c.AfterFunc(100*time.Millisecond, tick)

	c.Advance(time.Second)

	if count != 10 {
		t.Errorf("ticks = %d, want 10", count)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", c.Pending())
	}
}

func TestLoop_EarlierTimerArmedLater(t *testing.T) {
	c := schedulertest.New(t, epoch)
	var got []string

	c.AfterFunc(time.Second, func() { got = append(got, "late") })
	c.Advance(100 * time.Millisecond)
	c.AfterFunc(200*time.Millisecond, func() { got = append(got, "early") })

	c.Advance(time.Second)

	if s := strings.Join(got, ","); s != "early,late" {
		t.Errorf("fire order = %q, want %q", s, "early,late")
	}
}

func TestLoop_Stop(t *testing.T) {
	c := schedulertest.New(t, epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestLoop_StopAfterRun(t *testing.T) {
	c := schedulertest.New(t, epoch)
	timer := c.AfterFunc(time.Second, func() {})

	c.Advance(time.Second)

	if timer.Stop() {
		t.Error("Stop() after the callback ran = true, want false")
	}
}

func TestLoop_RunsPostedWorkInOrder(t *testing.T) {
	l := scheduler.NewLoop(quartz.NewReal(), 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	out := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		l.Post(func() { out <- i })
	}

	for want := 1; want <= 3; want++ {
		select {
		case got := <-out:
			if got != want {
				t.Errorf("got %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for posted work")
		}
	}
}

func TestLoop_AfterFuncRealClock(t *testing.T) {
	l := scheduler.NewLoop(quartz.NewReal(), 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestLoop_PostAfterCloseDoesNotBlock(t *testing.T) {
	l := scheduler.NewLoop(quartz.NewReal(), 0)
	l.Close()

	done := make(chan struct{})
	go func() {
		l.Post(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked after Close")
	}
}

func TestLoop_ContextCancelCloses(t *testing.T) {
	l := scheduler.NewLoop(quartz.NewReal(), 16)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)

	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop not closed after context cancel")
	}
}
