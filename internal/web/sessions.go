package web

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("web: session not found")

// Session is one player's maze. Every transition holds the session lock, so
// concurrent requests for the same id are applied one at a time.
type Session struct {
	ID     string
	Player string

	mu       sync.Mutex
	engine   *maze.Engine
	started  time.Time
	lastSeen time.Time
	saved    bool
}

// Outcome is the result of one transition on a session.
type Outcome struct {
	Result maze.MoveResult
	State  maze.Snapshot
	// Run is set when this transition solved the maze for the first time
	// since the last reset.
	Run *storage.Run
}

// Move applies one directional input.
func (s *Session) Move(d maze.Direction, withWalls bool) Outcome {
	return s.transition(withWalls, func(e *maze.Engine) (maze.MoveResult, bool) {
		return e.Move(d), false
	})
}

// SetDifficulty regenerates the maze at d.
func (s *Session) SetDifficulty(d maze.Difficulty, withWalls bool) Outcome {
	return s.transition(withWalls, func(e *maze.Engine) (maze.MoveResult, bool) {
		e.SetDifficulty(d)
		return maze.MoveResult{From: e.Player(), To: e.Player()}, true
	})
}

// Restart draws a fresh maze at the current difficulty. Unlike the terminal
// key, the restart request is honoured at any time.
func (s *Session) Restart(withWalls bool) Outcome {
	return s.transition(withWalls, func(e *maze.Engine) (maze.MoveResult, bool) {
		e.Restart()
		return maze.MoveResult{From: e.Player(), To: e.Player()}, true
	})
}

// State returns the current snapshot without changing anything.
func (s *Session) State(withWalls bool) maze.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.engine.Snapshot(withWalls)
}

func (s *Session) transition(withWalls bool, fn func(e *maze.Engine) (maze.MoveResult, bool)) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.lastSeen = now

	res, reset := fn(s.engine)
	if reset {
		s.started = now
		s.saved = false
	}

	out := Outcome{Result: res, State: s.engine.Snapshot(withWalls)}
	if res.Won && !s.saved {
		s.saved = true
		grid := s.engine.Grid()
		out.Run = &storage.Run{
			Player:     s.Player,
			Difficulty: string(s.engine.Difficulty()),
			Moves:      s.engine.Moves(),
			Duration:   now.Sub(s.started),
			Cols:       grid.Cols,
			Rows:       grid.Rows,
			Seed:       s.engine.Seed(),
		}
	}
	return out
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Sessions owns every live session.
type Sessions struct {
	mu    sync.RWMutex
	items map[string]*Session
	cfg   config.MazeConfig
	grid  maze.Grid
	seed  int64
	count atomic.Int64
}

// NewSessions creates a session registry. A zero seed gives every session a
// time-based seed; otherwise session n uses seed+n.
func NewSessions(cfg config.MazeConfig, seed int64) (*Sessions, error) {
	grid, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	return &Sessions{
		items: make(map[string]*Session),
		cfg:   cfg,
		grid:  grid,
		seed:  seed,
	}, nil
}

// Create starts a new maze. An empty difficulty uses the configured default.
func (r *Sessions) Create(player string, d maze.Difficulty) *Session {
	opts := r.cfg.EngineOptions(r.nextSeed())
	if d != "" {
		opts.Difficulty = d
	}

	now := time.Now()
	sess := &Session{
		ID:       uuid.NewString(),
		Player:   player,
		engine:   maze.New(r.grid, opts),
		started:  now,
		lastSeen: now,
	}

	r.mu.Lock()
	r.items[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

func (r *Sessions) nextSeed() int64 {
	n := r.count.Add(1)
	if r.seed == 0 {
		return time.Now().UnixNano() + n
	}
	return r.seed + n - 1
}

// Get returns the session for id.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session. It reports whether the session existed.
func (r *Sessions) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	delete(r.items, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Prune removes sessions idle for longer than ttl and returns their ids.
func (r *Sessions) Prune(ttl time.Duration, now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, sess := range r.items {
		if sess.idleSince(now) > ttl {
			delete(r.items, id)
			removed = append(removed, id)
		}
	}
	return removed
}
