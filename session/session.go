package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-antna/types"
)

var ErrNotFound = errors.New("session not found")

// Session is one client's copy of the dashboard tables. Tables are only
// ever replaced whole.
type Session struct {
	ID string

	mu       sync.RWMutex
	tables   types.Tables
	status   []types.TableStatus
	lastSeen time.Time
}

func (s *Session) Tables() types.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables.Clone()
}

func (s *Session) Status() []types.TableStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.TableStatus, len(s.status))
	copy(out, s.status)
	return out
}

// Replace swaps in a new set of tables with no merge.
func (s *Session) Replace(tables types.Tables, status []types.TableStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = tables.Clone()
	s.status = append([]types.TableStatus(nil), status...)
}

// ReplaceUpdates swaps only the update table, e.g. for a live feed import.
func (s *Session) ReplaceUpdates(updates []types.SocialUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables.Updates = append([]types.SocialUpdate(nil), updates...)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Seed produces the starting tables for a new session.
type Seed func(now time.Time) types.Tables

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	seed     Seed
	now      func() time.Time
}

func NewStore(seed Seed) *Store {
	if seed == nil {
		seed = func(time.Time) types.Tables { return types.Tables{} }
	}
	return &Store{
		sessions: make(map[string]*Session),
		seed:     seed,
		now:      time.Now,
	}
}

func (st *Store) Create() *Session {
	now := st.now()
	s := &Session{
		ID:       uuid.New().String(),
		tables:   st.seed(now),
		lastSeen: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

// GetOrCreate returns the session for id, or a fresh one when id is empty
// or unknown.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s, false
		}
	}
	return st.Create(), true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
