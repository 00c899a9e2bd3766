package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

const (
	opInitialize = "initialize"
	opReset      = "reset"
	opLogin      = "login"
	opLogout     = "logout"
)

// Config carries the authenticator options. AppName is required; every
// collaborator is optional and falls back to an inert default.
type Config struct {
	AppName     string
	Locator     ports.BridgeLocator
	Environment ports.Environment
	NewUser     ports.UserFactory
	Reporter    ports.ErrorReporter
	Recorder    ports.Recorder
	Logger      logrus.FieldLogger
}

// Authenticator adapts a wallet bridge to the host lifecycle: it connects,
// keeps a queryable loading/error state and turns a connection into one user
// per chain.
type Authenticator struct {
	chains   []core.Chain
	appName  string
	locator  ports.BridgeLocator
	env      ports.Environment
	newUser  ports.UserFactory
	reporter ports.ErrorReporter
	recorder ports.Recorder
	log      logrus.FieldLogger

	mu      sync.RWMutex
	loading bool
	err     *core.AuthError
	bridge  ports.Bridge
	users   []ports.User
}

// NewAuthenticator validates the configuration and returns an unconnected
// authenticator. Configuration problems are returned as ErrorTypeConfiguration
// errors before any bridge interaction happens.
func NewAuthenticator(chains []core.Chain, cfg Config) (*Authenticator, error) {
	if cfg.AppName == "" {
		return nil, core.NewAuthError(
			"Wombat requires the appName property to be set on the options argument",
			core.ErrorTypeConfiguration,
			core.ErrMissingAppName)
	}
	if len(chains) == 0 {
		return nil, core.NewAuthError("no chains configured", core.ErrorTypeConfiguration, core.ErrNoChains)
	}
	for _, chain := range chains {
		if err := chain.Validate(); err != nil {
			return nil, core.NewAuthError("invalid chain configuration", core.ErrorTypeConfiguration, err)
		}
	}

	a := &Authenticator{
		chains:   append([]core.Chain(nil), chains...),
		appName:  cfg.AppName,
		locator:  cfg.Locator,
		env:      cfg.Environment,
		newUser:  cfg.NewUser,
		reporter: cfg.Reporter,
		recorder: cfg.Recorder,
		log:      cfg.Logger,
	}
	if a.newUser == nil {
		a.newUser = NewBridgeUser
	}
	if a.log == nil {
		a.log = logrus.StandardLogger()
	}
	a.log = a.log.WithField("authenticator", core.Name)

	return a, nil
}

// Initialize connects to the wallet bridge. It never fails to the caller:
// a missing bridge or a failed connect is recorded and surfaced through
// IsErrored and GetError.
func (a *Authenticator) Initialize(ctx context.Context) {
	a.begin()
	a.connect(ctx)
}

// Reset drops the current connection, identities and error and starts a new
// initialization in the background. The returned task can be waited on but
// does not need to be; its outcome is also sent to the error reporter.
func (a *Authenticator) Reset(ctx context.Context) *ReinitTask {
	a.mu.Lock()
	a.users = nil
	a.mu.Unlock()

	a.begin()

	task := newReinitTask()
	bg := context.WithoutCancel(ctx)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("initialize panicked: %v", r)
				a.fail(core.NewAuthError("Error connecting to Wombat", core.ErrorTypeInitialization, err))
			}
			if err != nil {
				a.report(bg, opReset, err)
			}
			task.finish(err)
		}()

		a.connect(bg)
		if authErr := a.GetError(); authErr != nil {
			err = authErr
		}
	}()

	return task
}

// begin starts a fresh attempt, superseding whatever the previous one left.
func (a *Authenticator) begin() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.loading = true
	a.err = nil
	a.bridge = nil
}

func (a *Authenticator) connect(ctx context.Context) {
	start := time.Now()

	var (
		bridge ports.Bridge
		ok     bool
	)
	if a.locator != nil {
		bridge, ok = a.locator.Lookup(ctx)
	}
	if !ok || bridge == nil {
		a.fail(core.NewAuthError("Wombat wallet was not found", core.ErrorTypeInitialization, core.ErrBridgeNotFound))
		a.observe(opInitialize, core.ErrBridgeNotFound, start)
		return
	}

	if err := bridge.Connect(ctx, a.appName); err != nil {
		a.fail(core.NewAuthError("Error connecting to Wombat", core.ErrorTypeInitialization, err))
		a.observe(opInitialize, err, start)
		return
	}

	a.mu.Lock()
	a.bridge = bridge
	a.loading = false
	a.mu.Unlock()

	a.log.WithField("app", a.appName).Debug("connected to wallet bridge")
	a.observe(opInitialize, nil, start)
}

func (a *Authenticator) fail(err *core.AuthError) {
	a.mu.Lock()
	a.err = err
	a.loading = false
	a.bridge = nil
	a.mu.Unlock()

	a.log.WithError(err).Warn("wallet bridge initialization failed")
}

// IsLoading reports whether a connect attempt is in flight.
func (a *Authenticator) IsLoading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// IsErrored reports whether the last initialization recorded an error.
// A missing bridge counts as an error.
func (a *Authenticator) IsErrored() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err != nil
}

// GetError returns the recorded initialization error, or nil.
func (a *Authenticator) GetError() *core.AuthError {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

// Connected reports whether a bridge handle is held.
func (a *Authenticator) Connected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bridge != nil
}

func (a *Authenticator) ShouldRender() bool { return true }

func (a *Authenticator) ShouldAutoLogin() bool { return false }

// ShouldRequestAccountName is false: the bridge supplies account names.
func (a *Authenticator) ShouldRequestAccountName() bool { return false }

func (a *Authenticator) RequiresGetKeyConfirmation() bool { return false }

func (a *Authenticator) GetName() string { return core.Name }

func (a *Authenticator) GetStyle() core.ButtonStyle { return core.Style() }

func (a *Authenticator) GetOnboardingLink() string { return core.OnboardingLink }

// IsMobile sniffs the environment's user agent.
func (a *Authenticator) IsMobile() bool {
	if a.env == nil {
		return false
	}
	ua := a.env.UserAgent()
	isIOS := strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPad")
	isMobile := strings.Contains(ua, "Mobile")
	isAndroid := strings.Contains(ua, "Android")
	isCustom := strings.Contains(strings.ToLower(ua), "eoslynx")

	return isIOS || isMobile || isAndroid || isCustom
}

// Chains returns the configured chains in login order.
func (a *Authenticator) Chains() []core.Chain {
	return append([]core.Chain(nil), a.chains...)
}

// RecoveryURL is where the user is sent after a failed login.
func (a *Authenticator) RecoveryURL() string {
	if a.env == nil || a.env.Origin() == "" {
		return core.RecoveryLink
	}
	return core.RecoveryLink + "?" + url.Values{"origin": {a.env.Origin()}}.Encode()
}

func (a *Authenticator) observe(op string, err error, start time.Time) {
	if a.recorder != nil {
		a.recorder.Observe(op, err, time.Since(start))
	}
}

func (a *Authenticator) report(ctx context.Context, op string, err error) {
	if a.reporter != nil {
		a.reporter.Report(ctx, op, err)
		return
	}
	a.log.WithError(err).WithField("op", op).Error("background operation failed")
}
