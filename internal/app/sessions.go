package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions keeps one Controller per browser session.
type Sessions struct {
	newController func() *Controller
	idleTTL       time.Duration

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// NewSessions creates a session store. Sessions unused for idleTTL are dropped by Prune.
func NewSessions(newController func() *Controller, idleTTL time.Duration) *Sessions {
	return &Sessions{
		newController: newController,
		idleTTL:       idleTTL,
		entries:       make(map[string]*sessionEntry),
	}
}

// Get returns the controller for id, creating a new session when id is empty or unknown.
// The returned id is the one to hand back to the client.
func (s *Sessions) Get(id string) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[id]; ok && id != "" {
		entry.lastSeen = time.Now()
		return id, entry.controller
	}

	id = uuid.NewString()
	entry := &sessionEntry{controller: s.newController(), lastSeen: time.Now()}
	s.entries[id] = entry
	return id, entry.controller
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Prune removes sessions that have been idle longer than the TTL and are not loading.
func (s *Sessions) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.idleTTL && !entry.controller.State().IsLoading {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
