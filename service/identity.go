package service

import (
	"context"
	"fmt"
	"time"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

// Login builds one user per configured chain, in chain order. The first
// chain whose key retrieval fails aborts the whole batch: no users are kept,
// the user is sent to the recovery page and a login error wrapping that
// chain's failure is returned. requestedAccountName is ignored because the
// bridge supplies the account.
func (a *Authenticator) Login(ctx context.Context, requestedAccountName string) ([]ports.User, error) {
	start := time.Now()

	a.mu.Lock()
	a.users = nil
	bridge := a.bridge
	a.mu.Unlock()

	users := make([]ports.User, 0, len(a.chains))
	for i, chain := range a.chains {
		if err := a.acquire(ctx, bridge, chain, &users); err != nil {
			a.openRecovery(ctx)
			cause := fmt.Errorf("chain %d (%s): %w", i, chain.ChainID, err)
			a.log.WithError(cause).Warn("login failed")
			a.observe(opLogin, cause, start)
			return nil, core.NewAuthError("Unable to login", core.ErrorTypeLogin, cause)
		}
	}

	a.mu.Lock()
	a.users = users
	a.mu.Unlock()

	a.log.WithField("chains", len(users)).Info("logged in")
	a.observe(opLogin, nil, start)

	return append([]ports.User(nil), users...), nil
}

func (a *Authenticator) acquire(ctx context.Context, bridge ports.Bridge, chain core.Chain, users *[]ports.User) error {
	if bridge == nil {
		return core.ErrNotConnected
	}
	user := a.newUser(chain, bridge)
	if _, err := user.GetKeys(ctx); err != nil {
		return err
	}
	*users = append(*users, user)
	return nil
}

func (a *Authenticator) openRecovery(ctx context.Context) {
	if a.env == nil {
		return
	}
	target := a.RecoveryURL()
	if err := a.env.OpenURL(ctx, target); err != nil {
		a.log.WithError(err).WithField("url", target).Warn("failed to open recovery page")
	}
}

// Logout calls the bridge's logout once. On success the held users are dropped.
func (a *Authenticator) Logout(ctx context.Context) error {
	start := time.Now()

	a.mu.RLock()
	bridge := a.bridge
	a.mu.RUnlock()

	if bridge == nil {
		a.observe(opLogout, core.ErrNotConnected, start)
		return core.NewAuthError("Error occurred during logout", core.ErrorTypeLogout, core.ErrNotConnected)
	}
	if err := bridge.Logout(ctx); err != nil {
		a.observe(opLogout, err, start)
		return core.NewAuthError("Error occurred during logout", core.ErrorTypeLogout, err)
	}

	a.mu.Lock()
	a.users = nil
	a.mu.Unlock()

	a.observe(opLogout, nil, start)
	return nil
}

// Users returns the users produced by the last successful login.
func (a *Authenticator) Users() []ports.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]ports.User(nil), a.users...)
}
