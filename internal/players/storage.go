package players

import (
	"aimtrainer/internal/scheduler"
	"aimtrainer/internal/shell"
	"context"
	"sync"
	"time"
)

type Player struct {
	ID        string
	Shell     *shell.Shell
	Loop      *scheduler.Loop
	CreatedAt time.Time
}

// Store tracks connected players. Entries older than the TTL are swept and
// their loops closed, which ends the connection.
type Store struct {
	mu      sync.Mutex
	players map[string]*Player
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		players: make(map[string]*Player),
		ttl:     ttl,
	}
}

func (s *Store) Add(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

func (s *Store) Get(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[id]
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

func (s *Store) GetList() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	playerList := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		playerList = append(playerList, p)
	}
	return playerList
}

// Sweep removes players created more than the TTL before now and returns
// how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, p := range s.players {
		if now.Sub(p.CreatedAt) > s.ttl {
			if p.Loop != nil {
				p.Loop.Close()
			}
			delete(s.players, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
