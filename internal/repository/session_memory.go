package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type memorySession struct {
	data    []byte
	expires time.Time
}

type memSession struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

// NewMemorySessionRepository - keeps sessions inside the process, with the same encoding and expiry as redis.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (that *memSession) Save(_ context.Context, id string, history *entity.GameHistory) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()
	that.sessions[id] = memorySession{
		data:    historyJSON,
		expires: that.now().Add(that.ttl),
	}

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.GameHistory, error) {
	that.mu.Lock()
	stored, ok := that.sessions[id]
	if ok && !that.now().Before(stored.expires) {
		delete(that.sessions, id)
		ok = false
	}
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	history := entity.NewGameHistory()
	if err := json.Unmarshal(stored.data, history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return history, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// evictExpired expects the caller to hold mu.
func (that *memSession) evictExpired() {
	now := that.now()
	for id, stored := range that.sessions {
		if !now.Before(stored.expires) {
			delete(that.sessions, id)
		}
	}
}
