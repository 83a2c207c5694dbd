package targets

import (
	"math"
	"time"
)

const (
	TargetRadius       = 20
	TargetLifetime     = 2500 * time.Millisecond
	MinClickableRadius = 5
	MarkerRadius       = 2
	MarkerLifetime     = 3000 * time.Millisecond
	MaxSpawnAttempts   = 50
	MaxTotalTargets    = 130
)

// Rand is the randomness source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Store holds the live targets in spawn order and the missed-click markers.
// It is not safe for concurrent use; its owner runs it on a single loop.
type Store struct {
	targets []*Target
	markers []*Marker
	spawned int
}

func NewStore() *Store {
	return &Store{}
}

// Spawn tries to place one target inside a width x height surface so the
// full circle stays on screen and no live target center is closer than two
// radii. It gives up after MaxSpawnAttempts and reports false.
func (s *Store) Spawn(width, height float64, now time.Time, rnd Rand) bool {
	if s.spawned >= MaxTotalTargets {
		return false
	}
	for range MaxSpawnAttempts {
		x := rnd.Float64()*(width-2*TargetRadius) + TargetRadius
		y := rnd.Float64()*(height-2*TargetRadius) + TargetRadius
		if s.collides(x, y) {
			continue
		}
		s.targets = append(s.targets, &Target{
			X:         x,
			Y:         y,
			MaxRadius: TargetRadius,
			Born:      now,
			Lifetime:  TargetLifetime,
		})
		s.spawned++
		return true
	}
	return false
}

func (s *Store) collides(x, y float64) bool {
	for _, t := range s.targets {
		if math.Hypot(x-t.X, y-t.Y) < TargetRadius*2 {
			return true
		}
	}
	return false
}

// Age walks the live targets newest first, drops the expired ones and
// refreshes the cached radius of the rest before handing them to draw.
// It returns the number of targets that expired.
func (s *Store) Age(now time.Time, draw func(t *Target)) int {
	expired := 0
	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		age := now.Sub(t.Born)
		if age > t.Lifetime {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			expired++
			continue
		}
		t.Radius = Radius(age, t.Lifetime, t.MaxRadius)
		if draw != nil {
			draw(t)
		}
	}
	return expired
}

// AgeMarkers drops markers older than MarkerLifetime and hands the rest to
// draw with their current opacity.
func (s *Store) AgeMarkers(now time.Time, draw func(m *Marker, alpha float64)) {
	for i := len(s.markers) - 1; i >= 0; i-- {
		m := s.markers[i]
		age := now.Sub(m.Born)
		if age > MarkerLifetime {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			continue
		}
		if draw != nil {
			draw(m, MarkerAlpha(age))
		}
	}
}

// Hit removes the most recently spawned target whose clickable area
// contains (x, y). The clickable radius never drops below MinClickableRadius.
func (s *Store) Hit(x, y float64) bool {
	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		if math.Hypot(x-t.X, y-t.Y) <= math.Max(t.Radius, MinClickableRadius) {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Miss(x, y float64, now time.Time) {
	s.markers = append(s.markers, &Marker{X: x, Y: y, Born: now})
}

func (s *Store) Spawned() int {
	return s.spawned
}

func (s *Store) GetList() []Target {
	list := make([]Target, 0, len(s.targets))
	for _, t := range s.targets {
		list = append(list, *t)
	}
	return list
}

func (s *Store) Markers() []Marker {
	list := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		list = append(list, *m)
	}
	return list
}

func (s *Store) Clear() {
	s.targets = nil
	s.markers = nil
	s.spawned = 0
}
