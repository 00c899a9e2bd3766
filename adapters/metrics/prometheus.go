// Package metrics records authenticator operation outcomes in Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

const (
	Namespace = "wombat"

	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder implements ports.Recorder on top of Prometheus collectors.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	errors     *prometheus.CounterVec
}

var _ ports.Recorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of authenticator operations by type and status",
			},
			[]string{LabelOperation, LabelStatus},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of authenticator operations in seconds, bridge latency included",
				Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{LabelOperation},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of authenticator errors by operation and error type",
			},
			[]string{LabelOperation, LabelErrorType},
		),
	}

	for _, c := range []prometheus.Collector{r.operations, r.duration, r.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records one finished operation.
func (r *Recorder) Observe(op string, err error, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
		r.errors.WithLabelValues(op, errorType(err)).Inc()
	}
	r.operations.WithLabelValues(op, status).Inc()
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrBridgeNotFound):
		return "bridge_not_found"
	case errors.Is(err, core.ErrNotConnected):
		return "not_connected"
	default:
		return "bridge"
	}
}
