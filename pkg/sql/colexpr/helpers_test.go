// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"testing"

	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/stretchr/testify/require"
)

// setBytes writes vals into the first len(vals) rows of v.
func setBytes(v *coldata.BytesVec, vals ...string) {
	v.InitBuffer()
	for i, s := range vals {
		v.SetVal(i, []byte(s))
	}
}

// getBytes returns the values of the given rows of v.
func getBytes(v *coldata.BytesVec, rows ...int) []string {
	res := make([]string, len(rows))
	for j, i := range rows {
		res[j] = string(v.Bytes(i))
	}
	return res
}

// setDecimals parses vals into the first len(vals) rows of v.
func setDecimals(t *testing.T, v *coldata.DecimalVec, vals ...string) {
	for i, s := range vals {
		_, _, err := v.Vector[i].SetString(s)
		require.NoError(t, err)
	}
}

// setNulls marks the given rows of h null.
func setNulls(h *coldata.VecHeader, rows ...int) {
	for _, i := range rows {
		h.SetNull(i)
	}
}

// poison fills v with -1 and marks every row null, so that tests can tell
// which rows an expression wrote.
func poison(v *coldata.LongVec) {
	for i := range v.Vector {
		v.Vector[i] = -1
		v.IsNull[i] = true
	}
	v.NoNulls = false
	v.IsRepeating = false
}
