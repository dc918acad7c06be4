// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexprspec

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildBatch(t *testing.T) {
	spec, err := ParseBatch([]byte(`
capacity: 8
selected: [2, 0]
columns:
- type: long
  values: [1, null, 3]
- type: bytes
  values: ["a b", "", null]
- type: decimal
  values: ["1.50"]
  repeating: true
`))
	require.NoError(t, err)
	b, err := BuildBatch(spec)
	require.NoError(t, err)

	require.Equal(t, 8, b.Capacity())
	require.Equal(t, 3, b.Width())
	require.Equal(t, []int{2, 0}, b.ActiveRows())
	require.Equal(t,
		"[2 active rows, selectedInUse=true]\n"+
			"2: 3 NULL 1.50\n"+
			"0: 1 \"a b\" 1.50",
		b.String())
	require.True(t, b.ColVec(0).(*coldata.LongVec).NullAt(1))
	require.True(t, b.ColVec(2).Header().IsRepeating)
}

func TestBuildBatchDefaults(t *testing.T) {
	b, err := BuildBatch(BatchSpec{Columns: []ColumnSpec{
		{Type: "long", Values: []*string{strPtr("4"), strPtr("5")}},
	}})
	require.NoError(t, err)
	require.Equal(t, coldata.BatchSize(), b.Capacity())
	require.Equal(t, 2, b.Size)
	require.False(t, b.SelectedInUse)

	restore := coldata.SetBatchSizeForTests(1)
	defer restore()
	b, err = BuildBatch(BatchSpec{Columns: []ColumnSpec{
		{Type: "long", Values: []*string{strPtr("4"), strPtr("5")}},
	}})
	require.NoError(t, err)
	require.Equal(t, 2, b.Capacity(), "capacity grows to fit the rows")
}

func TestBuildBatchErrors(t *testing.T) {
	size := 9
	for _, tc := range []struct {
		spec     BatchSpec
		expected string
	}{
		{
			spec:     BatchSpec{Columns: []ColumnSpec{{Type: "float"}}},
			expected: "column 0",
		},
		{
			spec:     BatchSpec{Columns: []ColumnSpec{{Type: "long", Values: []*string{strPtr("x")}}}},
			expected: "row 0",
		},
		{
			spec:     BatchSpec{Columns: []ColumnSpec{{Type: "decimal", Values: []*string{strPtr("1"), strPtr("1.2.3")}}}},
			expected: "row 1",
		},
		{
			spec:     BatchSpec{Columns: []ColumnSpec{{Type: "long", Repeating: true}}},
			expected: "exactly one value",
		},
		{
			spec:     BatchSpec{Capacity: 2, Columns: []ColumnSpec{{Type: "long", Values: []*string{strPtr("1"), strPtr("2"), strPtr("3")}}}},
			expected: "do not fit",
		},
		{
			spec:     BatchSpec{Capacity: 4, Size: &size, Columns: []ColumnSpec{{Type: "long"}}},
			expected: "size 9 out of range",
		},
		{
			spec:     BatchSpec{Selected: []int{-1}, Columns: []ColumnSpec{{Type: "long"}}},
			expected: "negative selected row",
		},
		{
			spec:     BatchSpec{Capacity: 2, Selected: []int{0, 1, 1, 0}, Columns: []ColumnSpec{{Type: "long"}}},
			expected: "selection of 4 rows exceeds capacity 2",
		},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			_, err := BuildBatch(tc.spec)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidSpec), "%v", err)
			require.Contains(t, err.Error(), tc.expected)
		})
	}
}
