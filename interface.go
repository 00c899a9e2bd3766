package wombat

import (
	"context"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
	"github.com/layer-3/wombat/service"
)

// Authenticator is the lifecycle contract a host authentication framework
// drives: render eligibility, initialization, login, logout and error queries.
type Authenticator interface {
	// Initialize connects to the wallet bridge; failures are recorded, never returned
	Initialize(ctx context.Context)

	// Reset drops all state and re-initializes in the background
	Reset(ctx context.Context) *service.ReinitTask

	// Login returns one user per configured chain, or a login error
	Login(ctx context.Context, requestedAccountName string) ([]ports.User, error)

	// Logout ends the wallet session, or returns a logout error
	Logout(ctx context.Context) error

	IsLoading() bool
	IsErrored() bool
	GetError() *core.AuthError

	ShouldRender() bool
	ShouldAutoLogin() bool
	ShouldRequestAccountName() bool
	RequiresGetKeyConfirmation() bool

	GetName() string
	GetStyle() core.ButtonStyle
	GetOnboardingLink() string
	IsMobile() bool
}

var _ Authenticator = (*service.Authenticator)(nil)
