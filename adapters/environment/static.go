// Package environment provides host environments for processes that have no
// browser window to open pages in.
package environment

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/layer-3/wombat/ports"
)

// Static is an environment with a fixed origin and user agent. Opened URLs
// are logged and remembered so a transport can hand them to the client.
type Static struct {
	origin    string
	userAgent string
	log       logrus.FieldLogger

	mu     sync.Mutex
	opened []string
}

var _ ports.Environment = (*Static)(nil)

// NewStatic creates a Static environment.
func NewStatic(origin, userAgent string, log logrus.FieldLogger) *Static {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Static{origin: origin, userAgent: userAgent, log: log}
}

func (s *Static) Origin() string { return s.origin }

func (s *Static) UserAgent() string { return s.userAgent }

func (s *Static) OpenURL(ctx context.Context, rawURL string) error {
	s.mu.Lock()
	s.opened = append(s.opened, rawURL)
	s.mu.Unlock()

	s.log.WithField("url", rawURL).Info("directing user to external page")
	return nil
}

// Opened returns every URL opened so far, oldest first.
func (s *Static) Opened() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.opened...)
}
