package scenario

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session identifiers to their scenario stores. Each session
// owns its own store; nothing is shared across sessions and nothing survives
// a process restart. Idle sessions are pruned lazily when new ones are
// created.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*sessionEntry
	logger  *zap.Logger
	now     func() time.Time
}

// NewSessions creates a session registry whose stores expire after the given
// idle TTL.
func NewSessions(logger *zap.Logger, ttl time.Duration) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*sessionEntry),
		logger:  logger,
		now:     time.Now,
	}
}

// Acquire returns the store for the given session id, creating the session if
// it is unknown or expired. The returned id should be handed back to the
// client.
func (s *Sessions) Acquire(id uuid.UUID) (uuid.UUID, *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	if entry, ok := s.entries[id]; ok {
		entry.lastSeen = now
		return id, entry.store
	}

	id = uuid.New()
	store := NewStore()
	s.entries[id] = &sessionEntry{store: store, lastSeen: now}
	s.logger.Debug("session created",
		zap.String("op", "scenario.Sessions.Acquire"),
		zap.String("session", id.String()),
	)
	return id, store
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.entries, id)
			s.logger.Debug("session expired",
				zap.String("op", "scenario.Sessions.Acquire"),
				zap.String("session", id.String()),
			)
		}
	}
}
