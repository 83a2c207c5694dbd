package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

// Loop is a single-goroutine event queue. Timers and posted work all run
// inside Run, so handlers never interleave.
//
// Armed timers are kept in one heap. A single clock timer wakes the loop at
// the earliest due time, and every timer that is due by then runs in (due,
// arm order) sequence.
type Loop struct {
	clock     quartz.Clock
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	timers timerHeap
	seq    uint64
	wake   *quartz.Timer
	wakeAt time.Time
}

// NewLoop creates a Loop on clock whose queue holds up to size pending
// callbacks.
func NewLoop(clock quartz.Clock, size int) *Loop {
	return &Loop{
		clock: clock,
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post enqueues fn to run on the loop. It drops fn once the loop is closed.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.queue <- fn:
	}
}

// AfterFunc arms fn to run on the loop once d has passed. It may be called
// from any goroutine.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	t := &loopTimer{due: l.clock.Now().Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.timers, t)
	l.arm()
	return t
}

// Pending returns the number of armed timers that have neither run nor
// been stopped.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, t := range l.timers {
		if !t.done.Load() {
			n++
		}
	}
	return n
}

// arm makes sure the wake-up fires no later than the earliest due timer.
// l.mu must be held.
func (l *Loop) arm() {
	if len(l.timers) == 0 || l.closed() {
		return
	}
	due := l.timers[0].due
	if l.wake != nil && !l.wakeAt.After(due) {
		return
	}
	if l.wake != nil {
		l.wake.Stop()
	}
	wait := due.Sub(l.clock.Now())
	if wait <= 0 {
		wait = time.Nanosecond
	}
	l.wakeAt = due
	l.wake = l.clock.AfterFunc(wait, func() { l.Post(l.fire) })
}

// fire runs on the loop and drains every due timer, earliest first.
func (l *Loop) fire() {
	now := l.clock.Now()
	for {
		l.mu.Lock()
		if len(l.timers) == 0 || l.timers[0].due.After(now) {
			if l.wake != nil {
				l.wake.Stop()
				l.wake = nil
			}
			l.arm()
			l.mu.Unlock()
			return
		}
		t := heap.Pop(&l.timers).(*loopTimer)
		l.mu.Unlock()

		if t.done.CompareAndSwap(false, true) {
			t.fn()
		}
	}
}

// Run drains the queue until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Done is closed once the loop stops accepting work.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.wake != nil {
			l.wake.Stop()
			l.wake = nil
		}
	})
}

func (l *Loop) closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

type loopTimer struct {
	due  time.Time
	seq  uint64
	fn   func()
	done atomic.Bool
}

// Stop also covers the window where the timer is due but the loop has not
// reached it yet.
func (t *loopTimer) Stop() bool {
	return t.done.CompareAndSwap(false, true)
}

type timerHeap []*loopTimer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(*loopTimer))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
