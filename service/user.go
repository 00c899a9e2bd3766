package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

// BridgeUser is the default per-chain identity. It asks the bridge for an
// identity scoped to its chain and keeps the matching account.
type BridgeUser struct {
	chain  core.Chain
	bridge ports.Bridge

	mu      sync.Mutex
	account *core.Account
}

var _ ports.User = (*BridgeUser)(nil)

// NewBridgeUser is the default ports.UserFactory.
func NewBridgeUser(chain core.Chain, bridge ports.Bridge) ports.User {
	return &BridgeUser{chain: chain, bridge: bridge}
}

// GetKeys fetches the account for the user's chain on first use and returns
// its public key.
func (u *BridgeUser) GetKeys(ctx context.Context) ([]string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.account != nil {
		return []string{u.account.PublicKey}, nil
	}
	if u.bridge == nil {
		return nil, core.ErrNotConnected
	}

	identity, err := u.bridge.GetIdentity(ctx, core.IdentityRequest{
		Accounts: []core.AccountRequest{{Blockchain: core.Blockchain, ChainID: u.chain.ChainID}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	account, ok := identity.AccountFor(u.chain.ChainID)
	if !ok {
		return nil, fmt.Errorf("chain %s: %w", u.chain.ChainID, core.ErrAccountNotFound)
	}
	u.account = &account

	return []string{account.PublicKey}, nil
}

func (u *BridgeUser) AccountName() string {
	return u.Account().Name
}

func (u *BridgeUser) ChainID() string {
	return u.chain.ChainID
}

// Account returns the account resolved by GetKeys, or the zero Account.
func (u *BridgeUser) Account() core.Account {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.account == nil {
		return core.Account{}
	}
	return *u.account
}

// SignTransaction delegates signing to the bridge.
func (u *BridgeUser) SignTransaction(ctx context.Context, payload []byte) ([]byte, error) {
	if _, err := u.GetKeys(ctx); err != nil {
		return nil, core.NewAuthError("Unable to sign transaction", core.ErrorTypeSigning, err)
	}

	signed, err := u.bridge.SignTransaction(ctx, core.SignRequest{
		ChainID: u.chain.ChainID,
		Account: u.Account(),
		Payload: payload,
	})
	if err != nil {
		return nil, core.NewAuthError("Unable to sign transaction", core.ErrorTypeSigning, err)
	}
	return signed, nil
}
