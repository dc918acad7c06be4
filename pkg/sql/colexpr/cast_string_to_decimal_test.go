// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"testing"

	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/stretchr/testify/require"
)

func TestCastStringToDecimal(t *testing.T) {
	b := coldata.NewBatch([]coltypes.T{coltypes.Bytes, coltypes.Decimal}, 8)
	in, out := b.ColVec(0).(*coldata.BytesVec), b.ColVec(1).(*coldata.DecimalVec)
	setBytes(in, "1.50", "-2", "x", "1e3", "", " 4", "NaN")
	setNulls(&in.VecHeader, 4)
	b.Size = 7

	NewCastStringToDecimal(0, 1).Evaluate(b)

	var got []string
	for i := 0; i < b.Size; i++ {
		got = append(got, out.PrettyValueAt(i))
	}
	require.Equal(t, []string{"1.50", "-2", "NULL", "1E+3", "NULL", "NULL", "NaN"}, got)
	require.False(t, out.NoNulls)
}

func TestCastStringToDecimalClearsStaleNulls(t *testing.T) {
	b := coldata.NewBatch([]coltypes.T{coltypes.Bytes, coltypes.Decimal}, 4)
	in, out := b.ColVec(0).(*coldata.BytesVec), b.ColVec(1).(*coldata.DecimalVec)
	expr := NewCastStringToDecimal(0, 1)

	setBytes(in, "bad", "1")
	b.Size = 2
	expr.Evaluate(b)
	require.True(t, out.NullAt(0))

	setBytes(in, "2", "bad")
	expr.Evaluate(b)
	require.False(t, out.NullAt(0))
	require.True(t, out.NullAt(1))
	require.Equal(t, "2", out.PrettyValueAt(0))
}

func TestCastStringToDecimalRepeating(t *testing.T) {
	b := coldata.NewBatch([]coltypes.T{coltypes.Bytes, coltypes.Decimal}, 4)
	in, out := b.ColVec(0).(*coldata.BytesVec), b.ColVec(1).(*coldata.DecimalVec)
	setBytes(in, "3.25")
	in.IsRepeating = true
	b.Size = 4

	NewCastStringToDecimal(0, 1).Evaluate(b)

	require.True(t, out.IsRepeating)
	require.True(t, out.NoNulls)
	require.Equal(t, "3.25", out.PrettyValueAt(3))
	require.Equal(t, "PROJECTION(STRING_FAMILY COLUMN)", NewCastStringToDecimal(0, 1).Descriptor().String())
}
