package ports

import (
	"context"

	"github.com/layer-3/wombat/core"
)

// User is a per-chain identity bound to a connected bridge.
type User interface {
	// GetKeys retrieves the public keys usable on the user's chain.
	GetKeys(ctx context.Context) ([]string, error)

	AccountName() string
	ChainID() string
	Account() core.Account

	// SignTransaction asks the bridge to sign payload for this user's chain.
	SignTransaction(ctx context.Context, payload []byte) ([]byte, error)
}

// UserFactory builds the identity object for one chain.
type UserFactory func(chain core.Chain, bridge Bridge) User
