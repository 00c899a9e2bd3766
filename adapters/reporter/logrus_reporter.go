package reporter

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

// LogrusReporter sends background failures to a logrus logger.
type LogrusReporter struct {
	log logrus.FieldLogger
}

// NewLogrusReporter creates a reporter writing to log.
func NewLogrusReporter(log logrus.FieldLogger) ports.ErrorReporter {
	return &LogrusReporter{log: log}
}

func (r *LogrusReporter) Report(ctx context.Context, op string, err error) {
	entry := r.log.WithField("op", op).WithError(err)

	var authErr *core.AuthError
	if errors.As(err, &authErr) {
		entry = entry.WithField("error_type", authErr.Type)
	}
	entry.Error("authenticator background operation failed")
}
