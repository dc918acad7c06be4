// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexecerror_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
	"github.com/cockroachdb/vecexpr/pkg/util/envutil"
	"github.com/stretchr/testify/require"
)

func TestCatchInternalError(t *testing.T) {
	err := colexecerror.CatchVectorizedRuntimeError(func() {
		colexecerror.InternalError(errors.New("column 3 is not a bytes column"))
	})
	require.Error(t, err)
	require.True(t, colexecerror.IsContractViolation(err))
	require.Contains(t, err.Error(), "column 3 is not a bytes column")
}

func TestCatchExpectedError(t *testing.T) {
	sentinel := errors.New("expected")
	err := colexecerror.CatchVectorizedRuntimeError(func() {
		colexecerror.ExpectedError(sentinel)
	})
	require.True(t, errors.Is(err, sentinel))
	require.False(t, colexecerror.IsContractViolation(err))
}

func TestCatchRuntimeError(t *testing.T) {
	var s []int
	idx := 5
	err := colexecerror.CatchVectorizedRuntimeError(func() {
		_ = s[idx]
	})
	require.Error(t, err)
	require.True(t, colexecerror.IsContractViolation(err))
}

func TestCatchNoPanic(t *testing.T) {
	ran := false
	require.NoError(t, colexecerror.CatchVectorizedRuntimeError(func() { ran = true }))
	require.True(t, ran)
}

func TestForeignPanicIsNotCaught(t *testing.T) {
	require.Panics(t, func() {
		_ = colexecerror.CatchVectorizedRuntimeError(func() {
			// envutil is not a part of the vectorized engine.
			envutil.EnvOrDefaultInt("not a valid name", 0)
		})
	})
}
