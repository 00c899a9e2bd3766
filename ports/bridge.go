package ports

import (
	"context"

	"github.com/layer-3/wombat/core"
)

// Bridge is the wallet capability the host environment injects.
// Its latency and failure reasons are opaque; callers only wrap them.
type Bridge interface {
	// Connect establishes a wallet session on behalf of appName.
	Connect(ctx context.Context, appName string) error

	// Logout tears the wallet session down.
	Logout(ctx context.Context) error

	// GetIdentity returns the accounts the user grants for the requested chains.
	GetIdentity(ctx context.Context, req core.IdentityRequest) (*core.Identity, error)

	// SignTransaction signs a serialized transaction with the wallet's keys.
	SignTransaction(ctx context.Context, req core.SignRequest) ([]byte, error)
}

// BridgeLocator is the presence check: it reports whether a bridge is
// currently available in the host environment.
type BridgeLocator interface {
	Lookup(ctx context.Context) (Bridge, bool)
}
