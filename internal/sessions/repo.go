package sessions

import (
	"context"
	"time"
)

// Repo stores live sessions.
type Repo interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context, now time.Time) int
}
