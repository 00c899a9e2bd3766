// Package bridge contains wallet bridge adapters: a slot the host injects a
// bridge into, and an HTTP client for a locally running wallet companion.
package bridge

import (
	"context"
	"sync"

	"github.com/layer-3/wombat/ports"
)

// Slot holds the bridge the host environment injected, if any. It is the
// Go counterpart of a wallet extension appearing on the page.
type Slot struct {
	mu     sync.RWMutex
	bridge ports.Bridge
}

var _ ports.BridgeLocator = (*Slot)(nil)

// NewSlot returns a slot holding b; b may be nil.
func NewSlot(b ports.Bridge) *Slot {
	return &Slot{bridge: b}
}

// Inject makes b available to subsequent lookups.
func (s *Slot) Inject(b ports.Bridge) {
	s.mu.Lock()
	s.bridge = b
	s.mu.Unlock()
}

// Remove empties the slot.
func (s *Slot) Remove() {
	s.Inject(nil)
}

func (s *Slot) Lookup(ctx context.Context) (ports.Bridge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bridge, s.bridge != nil
}
