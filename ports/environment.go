package ports

import (
	"context"
	"time"
)

// Environment is the host environment the authenticator runs in.
type Environment interface {
	// Origin is the current page origin, or empty if unknown.
	Origin() string

	// UserAgent is the host's user agent string.
	UserAgent() string

	// OpenURL sends the user to an external destination.
	OpenURL(ctx context.Context, rawURL string) error
}

// ErrorReporter receives failures that have no caller to return to.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}

// Recorder observes the outcome of authenticator operations.
type Recorder interface {
	Observe(op string, err error, elapsed time.Duration)
}
