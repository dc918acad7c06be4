// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrumented(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	require.Error(t, m.Register(reg), "double registration must fail")

	b, in, out := newBytesBatch(8)
	setBytes(in, " a", "b ", "c")
	b.Size = 3

	expr := NewInstrumented(NewTrim(0, 1), m)
	require.NoError(t, expr.Init(context.Background()))
	expr.Evaluate(b)
	b.SetSelection([]int{2})
	expr.Evaluate(b)

	require.Equal(t, "c", string(out.Bytes(2)))
	require.Equal(t, "trim(col 0) -> col 1", expr.String())
	require.Equal(t, "trim", expr.Name())
	require.Equal(t, 2.0, testutil.ToFloat64(m.Batches.WithLabelValues("trim")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.Rows.WithLabelValues("trim")))
	require.Equal(t, 1, testutil.CollectAndCount(m.EvaluateSeconds))
	require.Equal(t, 0.0, testutil.ToFloat64(m.Batches.WithLabelValues("rtrim")))
}
