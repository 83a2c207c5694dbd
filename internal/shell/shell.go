package shell

import (
	"aimtrainer/internal/challenge"
	"aimtrainer/internal/events"
	"aimtrainer/internal/scheduler"
	"aimtrainer/internal/targets"
	"log"
	"sync"
	"time"
)

type Screen string

const (
	ScreenHome     = Screen("home")
	ScreenGame     = Screen("game")
	ScreenGameOver = Screen("game-over")
)

// Surface is a drawing surface whose size the host can change.
type Surface interface {
	challenge.Surface
	SetSize(width, height float64)
}

type Config struct {
	FrameInterval time.Duration
	Recorder      challenge.Recorder
	// Rand overrides target placement randomness. Nil uses a time-seeded source.
	Rand targets.Rand
}

// Shell hosts challenge sessions for one player: it tracks which screen is
// showing and relays navigation requests to the host over the bus. Apart
// from Screen, methods must run on the scheduler's loop.
type Shell struct {
	mu      sync.Mutex
	screen  Screen
	sched   scheduler.Scheduler
	surface Surface
	view    challenge.Display
	session *challenge.Session
	Events  *events.Bus
	Config  Config
}

func New(sched scheduler.Scheduler, surface Surface, view challenge.Display, bus *events.Bus, cfg Config) *Shell {
	return &Shell{
		screen:  ScreenHome,
		sched:   sched,
		surface: surface,
		view:    view,
		Events:  bus,
		Config:  cfg,
	}
}

func (s *Shell) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Shell) setScreen(sc Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = sc
}

// Session returns the most recent session, nil before the first start.
func (s *Shell) Session() *challenge.Session {
	return s.session
}

// OpenChallenge asks the host to navigate to the challenge screen.
func (s *Shell) OpenChallenge() {
	log.Println("[Shell] Challenge requested")
	s.publish(events.ScreenChallenge)
}

// OpenTrain asks the host to navigate to the training screen.
func (s *Shell) OpenTrain() {
	log.Println("[Shell] Training requested")
	s.publish(events.ScreenTraining)
}

func (s *Shell) publish(sc events.Screen) {
	if !s.Events.Publish(events.NavigateEvent{Screen: sc}) {
		log.Printf("[Shell] Navigation bus full, dropping %s\n", sc)
	}
}

// StartChallenge begins a new session unless one is already running.
func (s *Shell) StartChallenge() error {
	if s.session != nil && s.session.State() == challenge.Running {
		return nil
	}
	session, err := challenge.New(challenge.Options{
		Scheduler:     s.sched,
		Surface:       s.surface,
		Display:       s,
		Rand:          s.Config.Rand,
		Recorder:      s.Config.Recorder,
		FrameInterval: s.Config.FrameInterval,
	})
	if err != nil {
		return err
	}
	s.session = session
	session.Start()
	return nil
}

// Restart starts over from the game-over screen.
func (s *Shell) Restart() {
	if s.Screen() != ScreenGameOver {
		return
	}
	s.OpenChallenge()
}

// BackToMenu leaves the game-over screen for the home screen.
func (s *Shell) BackToMenu() {
	if s.Screen() != ScreenGameOver {
		return
	}
	s.ShowHome()
}

func (s *Shell) Press(x, y float64) {
	if s.session != nil {
		s.session.Press(x, y)
	}
}

// Escape cancels a running session.
func (s *Shell) Escape() {
	if s.session != nil {
		s.session.Cancel()
	}
}

func (s *Shell) Resize(width, height float64) {
	s.surface.SetSize(width, height)
	if s.session != nil {
		s.session.Resize()
	}
}

func (s *Shell) ShowGame() {
	s.setScreen(ScreenGame)
	s.view.ShowGame()
}

func (s *Shell) ShowHome() {
	s.setScreen(ScreenHome)
	s.view.ShowHome()
}

func (s *Shell) ShowSummary(sum challenge.Summary) {
	s.setScreen(ScreenGameOver)
	s.view.ShowSummary(sum)
}

func (s *Shell) ShowScore(score int) { s.view.ShowScore(score) }
func (s *Shell) ShowTime(seconds int) { s.view.ShowTime(seconds) }
func (s *Shell) ShowAccuracy(percent float64) { s.view.ShowAccuracy(percent) }
func (s *Shell) ShowSpawnRate(perSecond float64) { s.view.ShowSpawnRate(perSecond) }
