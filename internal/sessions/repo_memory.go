package sessions

import (
	"context"
	"sync"
	"time"

	"readiness-backend/internal/shared/telemetry"
)

// MemoryRepo is an in-memory implementation of Repo. Sessions idle for
// longer than ttl are treated as gone.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]*Session
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo. A non-positive ttl never expires.
func NewMemoryRepo(ttl time.Duration) *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]*Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create stores a session and marks it active.
func (r *MemoryRepo) Create(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Touch(r.now())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = s
	return nil
}

// Get returns a live session and refreshes its idle timer.
func (r *MemoryRepo) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := r.now()
	r.mu.RLock()
	s, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if r.expired(s, now) {
		r.mu.Lock()
		delete(r.data, id)
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	s.Touch(now)
	return s, nil
}

// Delete removes a session. Unknown IDs yield ErrNotFound.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// Sweep evicts expired sessions and returns how many were removed.
func (r *MemoryRepo) Sweep(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.data {
		if r.expired(s, now) {
			delete(r.data, id)
			removed++
		}
	}
	if removed > 0 {
		telemetry.Info("sessions.expired", map[string]any{
			"removed":   removed,
			"remaining": len(r.data),
		})
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func (r *MemoryRepo) expired(s *Session, now time.Time) bool {
	if r.ttl <= 0 {
		return false
	}
	return now.Sub(s.LastSeen()) > r.ttl
}
