package ports

import (
	"context"
	"time"

	"github.com/layer-3/wombat/core"
)

// Store keeps host-side login sessions
type Store interface {
	SaveSession(ctx context.Context, session *core.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*core.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
