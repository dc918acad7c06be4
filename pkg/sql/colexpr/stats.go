// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the evaluation metrics of instrumented expressions, labeled by
// expression name.
type Metrics struct {
	Batches         *prometheus.CounterVec
	Rows            *prometheus.CounterVec
	EvaluateSeconds *prometheus.HistogramVec
}

// NewMetrics returns unregistered metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecexpr",
			Name:      "batches_total",
			Help:      "Number of batches evaluated.",
		}, []string{"expr"}),
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecexpr",
			Name:      "rows_total",
			Help:      "Number of active rows in the evaluated batches.",
		}, []string{"expr"}),
		EvaluateSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vecexpr",
			Name:      "evaluate_seconds",
			Help:      "Time spent evaluating one batch, including children.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"expr"}),
	}
}

// Register registers m with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Batches, m.Rows, m.EvaluateSeconds} {
		if err := r.Register(c); err != nil {
			return errors.Wrap(err, "registering expression metrics")
		}
	}
	return nil
}

// Instrumented wraps an expression and records Metrics for every call to
// Evaluate. All other methods are delegated to the wrapped expression.
type Instrumented struct {
	VectorExpression

	batches prometheus.Counter
	rows    prometheus.Counter
	latency prometheus.Observer
}

var _ VectorExpression = &Instrumented{}

// NewInstrumented returns expr instrumented with m.
func NewInstrumented(expr VectorExpression, m *Metrics) *Instrumented {
	name := expr.Name()
	return &Instrumented{
		VectorExpression: expr,
		batches:          m.Batches.WithLabelValues(name),
		rows:             m.Rows.WithLabelValues(name),
		latency:          m.EvaluateSeconds.WithLabelValues(name),
	}
}

// Evaluate implements the VectorExpression interface.
func (e *Instrumented) Evaluate(b *coldata.Batch) {
	rows := b.Size
	start := time.Now()
	e.VectorExpression.Evaluate(b)
	e.latency.Observe(time.Since(start).Seconds())
	e.batches.Inc()
	e.rows.Add(float64(rows))
}

// Unwrap returns the instrumented expression.
func (e *Instrumented) Unwrap() VectorExpression {
	return e.VectorExpression
}
