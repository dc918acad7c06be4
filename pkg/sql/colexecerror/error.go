// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package colexecerror implements the error propagation protocol of the
// vectorized engine. Expressions never return errors from Evaluate: contract
// violations panic through InternalError, and the executor driving the
// expressions converts those panics back into errors at its boundary with
// CatchVectorizedRuntimeError.
package colexecerror

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	colPackagePrefix      = "github.com/cockroachdb/vecexpr/pkg/col"
	sqlColPackagePrefix   = "github.com/cockroachdb/vecexpr/pkg/sql/col"
	runtimeFunctionPrefix = "runtime."
)

// CatchVectorizedRuntimeError executes operation, catches a runtime error if
// it is coming from the vectorized engine, and returns it. If an error not
// related to the vectorized engine occurs, it is not recovered from.
func CatchVectorizedRuntimeError(operation func()) (retErr error) {
	defer func() {
		panicObj := recover()
		if panicObj == nil {
			// No panic happened, so the operation must have been executed
			// successfully.
			return
		}

		if !shouldCatchPanic(panicEmittedFrom()) {
			// Do not recover from the panic not related to the vectorized
			// engine.
			panic(panicObj)
		}

		err, ok := panicObj.(error)
		if !ok {
			// Not an error object. Definitely unexpected.
			retErr = errors.AssertionFailedf("unexpected panic from the vectorized engine: %v", panicObj)
			return
		}
		switch e := err.(type) {
		case *internalError:
			retErr = e.cause
		case *expectedError:
			retErr = e.cause
		default:
			if _, isRuntime := err.(runtime.Error); isRuntime {
				// Index out of range, nil pointer dereference and friends are
				// always bugs.
				retErr = errors.NewAssertionErrorWithWrappedErrf(err, "runtime error in the vectorized engine")
			} else {
				retErr = errors.AssertionFailedf("unexpected error from the vectorized engine: %+v", err)
			}
		}
	}()
	operation()
	return retErr
}

// panicEmittedFrom returns the name of the function that raised the panic
// currently being handled, skipping the runtime's own frames. It must be
// called from the deferred function that recovered.
func panicEmittedFrom() string {
	var pcs [64]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	sawPanic := false
	for {
		frame, more := frames.Next()
		if sawPanic && !strings.HasPrefix(frame.Function, runtimeFunctionPrefix) {
			return frame.Function
		}
		if frame.Function == "runtime.gopanic" {
			sawPanic = true
		}
		if !more {
			return ""
		}
	}
}

// shouldCatchPanic checks whether the panic that was emitted from
// panicEmittedFrom line of code (which contains the package name as well as
// the file name and the line number) came from the vectorized engine.
func shouldCatchPanic(panicEmittedFrom string) bool {
	return strings.HasPrefix(panicEmittedFrom, colPackagePrefix) ||
		strings.HasPrefix(panicEmittedFrom, sqlColPackagePrefix)
}

// internalError is an error that occurred because of a broken invariant of
// the vectorized engine, such as a column of the wrong kind at a declared
// index or derived state used before it was materialized.
type internalError struct {
	cause error
}

func (e *internalError) Error() string { return e.cause.Error() }
func (e *internalError) Cause() error  { return e.cause }
func (e *internalError) Unwrap() error { return e.cause }

// expectedError is an error that the vectorized engine raises on purpose and
// that is propagated to the caller unchanged.
type expectedError struct {
	cause error
}

func (e *expectedError) Error() string { return e.cause.Error() }
func (e *expectedError) Cause() error  { return e.cause }
func (e *expectedError) Unwrap() error { return e.cause }

// InternalError panics with the given error. The error is annotated as an
// assertion failure unless it already is one. It should be used for every
// *unexpected* condition that the vectorized engine detects.
func InternalError(err error) {
	if !errors.HasAssertionFailure(err) {
		err = errors.NewAssertionErrorWithWrappedErrf(err, "internal error in the vectorized engine")
	}
	panic(&internalError{cause: err})
}

// ExpectedError panics with the given error, which is propagated to the caller
// of CatchVectorizedRuntimeError unchanged.
func ExpectedError(err error) {
	panic(&expectedError{cause: err})
}

// IsContractViolation returns whether err denotes a broken invariant of the
// vectorized engine: a wiring bug rather than a condition to recover from.
func IsContractViolation(err error) bool {
	return errors.HasAssertionFailure(err)
}
