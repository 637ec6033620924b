package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	owner    string
	state    *State
	lastSeen time.Time
}

// Sessions maps admin session ids to their state.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessions builds a registry that forgets sessions idle for longer than idleTTL.
func NewSessions(idleTTL time.Duration) *Sessions {
	if idleTTL <= 0 {
		idleTTL = 12 * time.Hour
	}
	return &Sessions{entries: make(map[string]*session), idleTTL: idleTTL, now: time.Now}
}

// Get returns the state of id for owner, creating it when unknown. An empty
// or malformed id, or an id held by another owner, gets a fresh session id.
func (s *Sessions) Get(id, owner string) (string, *State) {
	if _, err := uuid.Parse(id); err != nil {
		id = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if ok && entry.owner != owner {
		ok = false
	}
	if !ok {
		id = uuid.NewString()
		entry = &session{owner: owner, state: NewState()}
		s.entries[id] = entry
	}
	entry.lastSeen = s.now()
	return id, entry.state
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops idle sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
