// Package wombat lets an application log in with, and sign through, the
// Wombat wallet. The wallet itself is reached through a ports.Bridge the
// host injects; this package only adapts it to the authenticator lifecycle.
package wombat

import (
	"github.com/layer-3/wombat/adapters/bridge"
	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
	"github.com/layer-3/wombat/service"
)

// Option adjusts the service.Config built by New.
type Option func(*service.Config)

// WithEnvironment sets the host environment used for user agent sniffing and
// for opening the recovery page.
func WithEnvironment(env ports.Environment) Option {
	return func(c *service.Config) { c.Environment = env }
}

// WithConfig replaces the whole configuration, keeping the app name and locator.
func WithConfig(cfg service.Config) Option {
	return func(c *service.Config) {
		appName, locator := c.AppName, c.Locator
		*c = cfg
		c.AppName, c.Locator = appName, locator
	}
}

// New creates an authenticator for chains that finds its bridge in slot.
func New(chains []core.Chain, appName string, slot *bridge.Slot, opts ...Option) (Authenticator, error) {
	cfg := service.Config{AppName: appName}
	if slot != nil {
		cfg.Locator = slot
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := service.NewAuthenticator(chains, cfg)
	if err != nil {
		return nil, err
	}
	return a, nil
}
