// Package metrics exports store activity as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/scribe/pkg/core"
)

// Observer implements core.Observer.
type Observer struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Notes             prometheus.Gauge
	Busy              prometheus.Gauge
}

// New creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scribe_operations_total",
				Help: "Total number of note operations",
			},
			[]string{"operation", "result"}, // add/update/delete, ok/persist_error/cancelled/error
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scribe_operation_duration_seconds",
				Help:    "Duration of note operations, artificial delay included",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		Notes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scribe_notes",
				Help: "Number of notes in the store",
			},
		),
		Busy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scribe_busy",
				Help: "1 while an operation is in progress",
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{o.Operations, o.OperationDuration, o.Notes, o.Busy} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// ObserveOperation implements core.Observer.
func (o *Observer) ObserveOperation(op string, elapsed time.Duration, err error) {
	o.Operations.WithLabelValues(op, result(err)).Inc()
	o.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveCollection implements core.Observer.
func (o *Observer) ObserveCollection(size int) {
	o.Notes.Set(float64(size))
}

// ObserveBusy implements core.Observer.
func (o *Observer) ObserveBusy(busy bool) {
	if busy {
		o.Busy.Set(1)
		return
	}
	o.Busy.Set(0)
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrPersist):
		return "persist_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

var _ core.Observer = (*Observer)(nil)
