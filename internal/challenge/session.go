package challenge

import (
	"aimtrainer/internal/scheduler"
	"aimtrainer/internal/targets"
	"errors"
	"image/color"
	"math/rand"
	"time"
)

const (
	GameDuration           = 60 // seconds
	InitialSpawnInterval   = 667 * time.Millisecond
	MinSpawnInterval       = 286 * time.Millisecond
	SpawnIntervalDecrement = 35 * time.Millisecond
	DifficultyStep         = 5 // seconds
	DefaultFrameInterval   = time.Second / 60
)

var (
	targetColor = color.RGBA{R: 255, A: 255}

	ErrNoScheduler = errors.New("challenge: scheduler is required")
	ErrNoSurface   = errors.New("challenge: drawing surface is required")
	ErrNoDisplay   = errors.New("challenge: display is required")
)

type State int

const (
	Idle State = iota
	Running
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	}
	return "unknown"
}

type EndReason int

const (
	Timeout EndReason = iota + 1
	Cancelled
)

func (r EndReason) String() string {
	switch r {
	case Timeout:
		return "timeout"
	case Cancelled:
		return "cancelled"
	}
	return "none"
}

type Summary struct {
	Score    int
	Accuracy float64
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	State         State
	Reason        EndReason
	Score         int
	Hits          int
	TotalShots    int
	Elapsed       int
	SpawnInterval time.Duration
	Spawned       int
	Targets       []targets.Target
	Markers       []targets.Marker
}

type Options struct {
	Scheduler scheduler.Scheduler
	Surface   Surface
	Display   Display
	Rand      targets.Rand
	Recorder  Recorder
	// FrameInterval is the render cadence. Zero means DefaultFrameInterval.
	FrameInterval time.Duration
}

// Session is one timed play session. All methods must be called from the
// scheduler's loop.
type Session struct {
	sched    scheduler.Scheduler
	surface  Surface
	display  Display
	rnd      targets.Rand
	recorder Recorder
	frame    time.Duration

	state         State
	reason        EndReason
	score         int
	hits          int
	totalShots    int
	elapsed       int
	spawnInterval time.Duration
	targets       *targets.Store

	clockTimer  scheduler.Timer
	spawnTimer  scheduler.Timer
	renderTimer scheduler.Timer
}

func New(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Display == nil {
		return nil, ErrNoDisplay
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	return &Session{
		sched:         opts.Scheduler,
		surface:       opts.Surface,
		display:       opts.Display,
		rnd:           opts.Rand,
		recorder:      opts.Recorder,
		frame:         opts.FrameInterval,
		spawnInterval: InitialSpawnInterval,
		targets:       targets.NewStore(),
	}, nil
}

// Start moves an idle session to running and arms the clock, spawn and
// render schedules. It is a no-op in any other state.
func (s *Session) Start() {
	if s.state != Idle {
		return
	}
	s.state = Running
	s.score, s.hits, s.totalShots, s.elapsed = 0, 0, 0, 0
	s.spawnInterval = InitialSpawnInterval
	s.targets.Clear()

	s.recorder.SessionStarted()
	s.display.ShowGame()
	s.display.ShowScore(0)
	s.display.ShowTime(0)
	s.display.ShowAccuracy(InGameAccuracy(0, 0))
	s.display.ShowSpawnRate(SpawnRate(s.spawnInterval))

	s.clockTimer = s.sched.AfterFunc(time.Second, s.tick)
	s.spawnAndSchedule()
	s.renderAndSchedule()
}

func (s *Session) tick() {
	if s.state != Running {
		return
	}
	s.elapsed++
	s.display.ShowTime(s.elapsed)

	if s.elapsed%DifficultyStep == 0 && s.spawnInterval > MinSpawnInterval {
		s.spawnInterval = max(MinSpawnInterval, s.spawnInterval-SpawnIntervalDecrement)
	}
	s.display.ShowSpawnRate(SpawnRate(s.spawnInterval))

	if s.elapsed >= GameDuration {
		s.end(Timeout)
		return
	}
	s.clockTimer = s.sched.AfterFunc(time.Second, s.tick)
}

func (s *Session) spawnAndSchedule() {
	if s.state != Running || s.targets.Spawned() >= targets.MaxTotalTargets {
		return
	}
	w, h := s.surface.Size()
	if s.targets.Spawn(w, h, s.sched.Now(), s.rnd) {
		s.recorder.Spawned()
	} else {
		s.recorder.SpawnSkipped()
	}
	s.spawnTimer = s.sched.AfterFunc(s.spawnInterval, s.spawnAndSchedule)
}

func (s *Session) renderAndSchedule() {
	if s.state != Running {
		return
	}
	s.render()
	s.renderTimer = s.sched.AfterFunc(s.frame, s.renderAndSchedule)
}

// render redraws the whole scene from current state. Expired targets and
// markers are dropped here.
func (s *Session) render() {
	now := s.sched.Now()
	s.surface.Clear()
	expired := s.targets.Age(now, func(t *targets.Target) {
		s.surface.FillCircle(t.X, t.Y, t.Radius, targetColor)
	})
	if expired > 0 {
		s.recorder.Expired(expired)
	}
	s.targets.AgeMarkers(now, func(m *targets.Marker, alpha float64) {
		s.surface.FillCircle(m.X, m.Y, targets.MarkerRadius, color.NRGBA{A: uint8(alpha * 255)})
	})
	s.surface.Present()
}

// Press handles a pointer press at (x, y) in surface coordinates.
func (s *Session) Press(x, y float64) {
	if s.state != Running {
		return
	}
	s.totalShots++
	hit := s.targets.Hit(x, y)
	if hit {
		s.score++
		s.hits++
	} else {
		s.targets.Miss(x, y, s.sched.Now())
	}
	s.recorder.Shot(hit)
	s.display.ShowScore(s.score)
	s.display.ShowAccuracy(InGameAccuracy(s.hits, s.totalShots))
}

// Resize redraws with the surface's current size. No state is reset.
func (s *Session) Resize() {
	if s.state != Running {
		return
	}
	s.render()
}

// Cancel aborts a running session and returns to the entry screen without
// a summary.
func (s *Session) Cancel() {
	if s.state != Running {
		return
	}
	s.end(Cancelled)
}

func (s *Session) end(reason EndReason) {
	if s.state != Running {
		return
	}
	s.state = Ended
	s.reason = reason
	for _, t := range []scheduler.Timer{s.clockTimer, s.spawnTimer, s.renderTimer} {
		if t != nil {
			t.Stop()
		}
	}
	s.recorder.SessionEnded(reason)

	if reason == Cancelled {
		s.display.ShowHome()
		return
	}
	s.display.ShowSummary(Summary{
		Score:    s.score,
		Accuracy: FinalAccuracy(s.hits, s.totalShots),
	})
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:         s.state,
		Reason:        s.reason,
		Score:         s.score,
		Hits:          s.hits,
		TotalShots:    s.totalShots,
		Elapsed:       s.elapsed,
		SpawnInterval: s.spawnInterval,
		Spawned:       s.targets.Spawned(),
		Targets:       s.targets.GetList(),
		Markers:       s.targets.Markers(),
	}
}

// InGameAccuracy is the live accuracy percentage. It reads 100 before the
// first shot.
func InGameAccuracy(hits, shots int) float64 {
	if shots == 0 {
		return 100
	}
	return float64(hits) / float64(shots) * 100
}

// FinalAccuracy is the accuracy shown on the summary. Unlike
// InGameAccuracy it reads 0 when no shot was fired.
func FinalAccuracy(hits, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(hits) / float64(shots) * 100
}

// SpawnRate converts a spawn interval to targets per second.
func SpawnRate(interval time.Duration) float64 {
	if interval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(interval)
}
