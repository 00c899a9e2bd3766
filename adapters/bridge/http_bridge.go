package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

// ErrBridgeRequest is returned when the companion answers with a non-2xx status.
var ErrBridgeRequest = errors.New("wallet bridge request failed")

// HTTPBridge talks JSON to a wallet companion listening on a local HTTP port.
type HTTPBridge struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration // Per-request timeout; zero means the caller's context only
}

var _ ports.Bridge = (*HTTPBridge)(nil)

// NewHTTPBridge creates a bridge client for baseURL.
func NewHTTPBridge(baseURL string) *HTTPBridge {
	return &HTTPBridge{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  http.DefaultClient,
		Timeout: 30 * time.Second,
	}
}

type connectRequest struct {
	AppName string `json:"appName"`
}

type signResponse struct {
	Signed []byte `json:"signed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (b *HTTPBridge) Connect(ctx context.Context, appName string) error {
	return b.do(ctx, http.MethodPost, "/connect", connectRequest{AppName: appName}, nil)
}

func (b *HTTPBridge) Logout(ctx context.Context) error {
	return b.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (b *HTTPBridge) GetIdentity(ctx context.Context, req core.IdentityRequest) (*core.Identity, error) {
	var identity core.Identity
	if err := b.do(ctx, http.MethodPost, "/identity", req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (b *HTTPBridge) SignTransaction(ctx context.Context, req core.SignRequest) ([]byte, error) {
	var resp signResponse
	if err := b.do(ctx, http.MethodPost, "/sign", req, &resp); err != nil {
		return nil, err
	}
	return resp.Signed, nil
}

// Ping checks that the companion is listening.
func (b *HTTPBridge) Ping(ctx context.Context) error {
	return b.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (b *HTTPBridge) do(ctx context.Context, method, path string, in, out any) error {
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrBridgeRequest, method, path, resp.StatusCode, e.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// HTTPLocator reports the companion present when it answers a ping.
type HTTPLocator struct {
	Bridge      *HTTPBridge
	PingTimeout time.Duration
}

var _ ports.BridgeLocator = (*HTTPLocator)(nil)

// NewHTTPLocator creates a locator probing b.
func NewHTTPLocator(b *HTTPBridge) *HTTPLocator {
	return &HTTPLocator{Bridge: b, PingTimeout: 2 * time.Second}
}

func (l *HTTPLocator) Lookup(ctx context.Context) (ports.Bridge, bool) {
	if l.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.PingTimeout)
		defer cancel()
	}
	if err := l.Bridge.Ping(ctx); err != nil {
		return nil, false
	}
	return l.Bridge, true
}
