package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

const exampleChainID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func newTestAuthenticator(t *testing.T, chains []core.Chain, bridge ports.Bridge, env ports.Environment) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator(chains, Config{
		AppName:     "testdapp",
		Locator:     &fakeLocator{bridge: bridge},
		Environment: env,
		Logger:      nullLogger(),
	})
	require.NoError(t, err)
	return a
}

func TestNewAuthenticatorConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		chains  []core.Chain
		appName string
		wantErr error
	}{
		{name: "missing app name", chains: testChains("aa"), wantErr: core.ErrMissingAppName},
		{name: "no chains", appName: "testdapp", wantErr: core.ErrNoChains},
		{name: "invalid chain", chains: testChains("zz"), appName: "testdapp", wantErr: core.ErrInvalidChain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := &fakeBridge{}
			a, err := NewAuthenticator(tt.chains, Config{AppName: tt.appName, Locator: &fakeLocator{bridge: bridge}})
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, core.IsType(err, core.ErrorTypeConfiguration))
			assert.Empty(t, bridge.connects)
		})
	}
}

func TestFixedFlags(t *testing.T) {
	a := newTestAuthenticator(t, testChains("aa", "bb"), &fakeBridge{}, nil)

	assert.True(t, a.ShouldRender())
	assert.False(t, a.ShouldAutoLogin())
	assert.False(t, a.ShouldRequestAccountName())
	assert.False(t, a.RequiresGetKeyConfirmation())
	assert.Equal(t, core.Name, a.GetName())
	assert.Equal(t, "https://getwombat.io/", a.GetOnboardingLink())

	style := a.GetStyle()
	assert.Equal(t, "Wombat", style.Text)
	assert.Equal(t, "white", style.TextColor)
	assert.Equal(t, "#f43e27", style.Background)
	assert.NotEmpty(t, style.Icon)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("not loading before initialize", func(t *testing.T) {
		a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, nil)
		assert.False(t, a.IsLoading())
		assert.False(t, a.IsErrored())
		assert.Nil(t, a.GetError())
	})

	t.Run("connects", func(t *testing.T) {
		bridge := &fakeBridge{}
		a := newTestAuthenticator(t, []core.Chain{{ChainID: exampleChainID, RPCEndpoints: []core.RPCEndpoint{endpoint()}}}, bridge, nil)

		a.Initialize(ctx)

		assert.False(t, a.IsLoading())
		assert.False(t, a.IsErrored())
		assert.Nil(t, a.GetError())
		assert.True(t, a.Connected())
		assert.Equal(t, []string{"testdapp"}, bridge.connects)
	})

	t.Run("bridge not found", func(t *testing.T) {
		a := newTestAuthenticator(t, testChains("aa"), nil, nil)

		a.Initialize(ctx)

		assert.False(t, a.IsLoading())
		assert.True(t, a.IsErrored())
		require.NotNil(t, a.GetError())
		assert.Equal(t, core.ErrorTypeInitialization, a.GetError().Type)
		assert.ErrorIs(t, a.GetError(), core.ErrBridgeNotFound)
		assert.False(t, a.Connected())
	})

	t.Run("nil locator behaves as absent bridge", func(t *testing.T) {
		a, err := NewAuthenticator(testChains("aa"), Config{AppName: "testdapp", Logger: nullLogger()})
		require.NoError(t, err)

		a.Initialize(ctx)
		assert.ErrorIs(t, a.GetError(), core.ErrBridgeNotFound)
	})

	t.Run("connect fails", func(t *testing.T) {
		cause := errors.New("connection refused")
		a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{connectErr: cause}, nil)

		a.Initialize(ctx)

		assert.False(t, a.IsLoading())
		assert.True(t, a.IsErrored())
		assert.Equal(t, core.ErrorTypeInitialization, a.GetError().Type)
		assert.ErrorIs(t, a.GetError(), cause)
		assert.False(t, a.Connected())
	})

	t.Run("retry clears previous error", func(t *testing.T) {
		bridge := &fakeBridge{connectErr: errors.New("connection refused")}
		a := newTestAuthenticator(t, testChains("aa"), bridge, nil)

		a.Initialize(ctx)
		require.True(t, a.IsErrored())

		bridge.connectErr = nil
		a.Initialize(ctx)
		assert.False(t, a.IsErrored())
		assert.Nil(t, a.GetError())
		assert.True(t, a.Connected())
	})

	t.Run("loading while connecting", func(t *testing.T) {
		bridge := &fakeBridge{connectGate: make(chan struct{})}
		a := newTestAuthenticator(t, testChains("aa"), bridge, nil)

		done := make(chan struct{})
		go func() {
			a.Initialize(ctx)
			close(done)
		}()

		require.Eventually(t, a.IsLoading, time.Second, time.Millisecond)
		assert.False(t, a.IsErrored())

		close(bridge.connectGate)
		<-done
		assert.False(t, a.IsLoading())
	})
}

func TestInitializeRecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	a, err := NewAuthenticator(testChains("aa"), Config{
		AppName:  "testdapp",
		Locator:  &fakeLocator{},
		Recorder: rec,
		Logger:   nullLogger(),
	})
	require.NoError(t, err)

	a.Initialize(context.Background())

	require.Len(t, rec.obs, 1)
	assert.Equal(t, opInitialize, rec.obs[0].op)
	assert.ErrorIs(t, rec.obs[0].err, core.ErrBridgeNotFound)
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("reconnects in background", func(t *testing.T) {
		bridge := &fakeBridge{}
		a := newTestAuthenticator(t, testChains("aa"), bridge, nil)
		a.Initialize(ctx)
		_, err := a.Login(ctx, "")
		require.NoError(t, err)

		bridge.connectGate = make(chan struct{})
		task := a.Reset(ctx)

		assert.True(t, a.IsLoading())
		assert.False(t, a.IsErrored())
		assert.Nil(t, a.GetError())
		assert.Empty(t, a.Users())
		assert.False(t, a.Connected())

		close(bridge.connectGate)
		<-task.Done()
		assert.NoError(t, task.Err())
		assert.False(t, a.IsLoading())
		assert.True(t, a.Connected())
	})

	t.Run("clears stale error", func(t *testing.T) {
		bridge := &fakeBridge{connectErr: errors.New("connection refused")}
		a := newTestAuthenticator(t, testChains("aa"), bridge, nil)
		a.Initialize(ctx)
		require.True(t, a.IsErrored())

		bridge.mu.Lock()
		bridge.connectErr = nil
		bridge.mu.Unlock()
		bridge.connectGate = make(chan struct{})

		task := a.Reset(ctx)
		assert.False(t, a.IsErrored())

		close(bridge.connectGate)
		<-task.Done()
		assert.False(t, a.IsErrored())
	})

	t.Run("failure goes to the reporter", func(t *testing.T) {
		reporter := &fakeReporter{}
		a, err := NewAuthenticator(testChains("aa"), Config{
			AppName:  "testdapp",
			Locator:  &fakeLocator{},
			Reporter: reporter,
			Logger:   nullLogger(),
		})
		require.NoError(t, err)

		task := a.Reset(ctx)
		<-task.Done()

		assert.ErrorIs(t, task.Err(), core.ErrBridgeNotFound)
		assert.Equal(t, 1, reporter.count())
		assert.True(t, a.IsErrored())
	})

	t.Run("panic is recovered and reported", func(t *testing.T) {
		reporter := &fakeReporter{}
		a, err := NewAuthenticator(testChains("aa"), Config{
			AppName:  "testdapp",
			Locator:  panicLocator{},
			Reporter: reporter,
			Logger:   nullLogger(),
		})
		require.NoError(t, err)

		task := a.Reset(ctx)
		<-task.Done()

		require.Error(t, task.Err())
		assert.Equal(t, 1, reporter.count())
		assert.True(t, a.IsErrored())
		assert.False(t, a.IsLoading())
	})

	t.Run("outlives caller context", func(t *testing.T) {
		a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, nil)

		cctx, cancel := context.WithCancel(ctx)
		task := a.Reset(cctx)
		cancel()

		<-task.Done()
		assert.NoError(t, task.Err())
		assert.True(t, a.Connected())
	})
}

type panicLocator struct{}

func (panicLocator) Lookup(ctx context.Context) (ports.Bridge, bool) {
	panic("bridge exploded")
}

func TestIsMobile(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; Android 14) Mobile Safari", true},
		{"Mozilla/5.0 (Linux; Android 14)", true},
		{"EOSLynx/1.0", true},
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.ua, func(t *testing.T) {
			a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, &fakeEnv{userAgent: tt.ua})
			assert.Equal(t, tt.want, a.IsMobile())
		})
	}

	a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, nil)
	assert.False(t, a.IsMobile())
}

func TestRecoveryURL(t *testing.T) {
	a := newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, nil)
	assert.Equal(t, "https://getwombat.io", a.RecoveryURL())

	a = newTestAuthenticator(t, testChains("aa"), &fakeBridge{}, &fakeEnv{origin: "https://dapp.example"})
	assert.Equal(t, "https://getwombat.io?origin=https%3A%2F%2Fdapp.example", a.RecoveryURL())
}
