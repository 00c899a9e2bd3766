package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

var errDenied = errors.New("user denied access")

type fakeBridge struct {
	mu          sync.Mutex
	connectErr  error
	logoutErr   error
	failChain   string
	connects    []string
	identities  []string
	logouts     int
	connectGate chan struct{}
}

func (b *fakeBridge) Connect(ctx context.Context, appName string) error {
	if b.connectGate != nil {
		<-b.connectGate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connects = append(b.connects, appName)
	return b.connectErr
}

func (b *fakeBridge) Logout(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logouts++
	return b.logoutErr
}

func (b *fakeBridge) GetIdentity(ctx context.Context, req core.IdentityRequest) (*core.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	identity := &core.Identity{Name: "wombat-user"}
	for _, a := range req.Accounts {
		b.identities = append(b.identities, a.ChainID)
		if a.ChainID == b.failChain {
			return nil, errDenied
		}
		identity.Accounts = append(identity.Accounts, core.Account{
			Name:       "user" + a.ChainID,
			Authority:  "active",
			PublicKey:  "EOS" + a.ChainID,
			Blockchain: a.Blockchain,
			ChainID:    a.ChainID,
		})
	}
	return identity, nil
}

func (b *fakeBridge) SignTransaction(ctx context.Context, req core.SignRequest) ([]byte, error) {
	return append([]byte(req.Account.Name+":"), req.Payload...), nil
}

func (b *fakeBridge) identityCalls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.identities...)
}

type fakeLocator struct {
	bridge ports.Bridge
}

func (l *fakeLocator) Lookup(ctx context.Context) (ports.Bridge, bool) {
	return l.bridge, l.bridge != nil
}

type fakeEnv struct {
	origin    string
	userAgent string
	mu        sync.Mutex
	opened    []string
}

func (e *fakeEnv) Origin() string    { return e.origin }
func (e *fakeEnv) UserAgent() string { return e.userAgent }

func (e *fakeEnv) OpenURL(ctx context.Context, rawURL string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened = append(e.opened, rawURL)
	return nil
}

func (e *fakeEnv) openedURLs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.opened...)
}

type fakeReporter struct {
	mu      sync.Mutex
	reports []error
}

func (r *fakeReporter) Report(ctx context.Context, op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, err)
}

func (r *fakeReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

type observation struct {
	op  string
	err error
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (r *fakeRecorder) Observe(op string, err error, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{op: op, err: err})
}

func endpoint() core.RPCEndpoint {
	return core.RPCEndpoint{Protocol: "https", Host: "example.com", Port: 443}
}

func testChains(ids ...string) []core.Chain {
	chains := make([]core.Chain, 0, len(ids))
	for _, id := range ids {
		chains = append(chains, core.Chain{ChainID: id, RPCEndpoints: []core.RPCEndpoint{endpoint()}})
	}
	return chains
}

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}
