// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
)

// StringTransformFn computes the output value of physical row i from the
// input value vector[i][start[i]:start[i]+length[i]] and stores it in out
// with out.SetVal. It must not write any other row, and it must not modify
// the input.
type StringTransformFn func(out *coldata.BytesVec, vector [][]byte, start, length []int, i int)

// StringUnaryDirect applies a StringTransformFn to every active non-null row
// of a bytes column, writing a bytes column. The input and output columns must
// be distinct, since the output buffer is reset at the start of every batch;
// Evaluate panics with an assertion failure otherwise.
type StringUnaryDirect struct {
	ExprBase
	name        string
	fn          StringTransformFn
	inputColumn int
}

var _ VectorExpression = &StringUnaryDirect{}

// NewStringUnaryDirect returns an expression computing fn over inputColumn.
func NewStringUnaryDirect(
	name string, fn StringTransformFn, inputColumn, outputColumn int,
) *StringUnaryDirect {
	return &StringUnaryDirect{
		ExprBase:    MakeExprBase(outputColumn, coltypes.Bytes),
		name:        name,
		fn:          fn,
		inputColumn: inputColumn,
	}
}

// NewLTrim returns an expression removing leading spaces.
func NewLTrim(inputColumn, outputColumn int) *StringUnaryDirect {
	return NewStringUnaryDirect("ltrim", ltrim, inputColumn, outputColumn)
}

// NewRTrim returns an expression removing trailing spaces.
func NewRTrim(inputColumn, outputColumn int) *StringUnaryDirect {
	return NewStringUnaryDirect("rtrim", rtrim, inputColumn, outputColumn)
}

// NewTrim returns an expression removing leading and trailing spaces.
func NewTrim(inputColumn, outputColumn int) *StringUnaryDirect {
	return NewStringUnaryDirect("trim", trim, inputColumn, outputColumn)
}

// Name implements the VectorExpression interface.
func (e *StringUnaryDirect) Name() string { return e.name }

// InputColumn returns the index of the column read by the expression.
func (e *StringUnaryDirect) InputColumn() int { return e.inputColumn }

// Init implements the VectorExpression interface. The expression has no
// derived state of its own.
func (e *StringUnaryDirect) Init(ctx context.Context) error {
	return e.InitChildren(ctx)
}

// Evaluate implements the VectorExpression interface.
func (e *StringUnaryDirect) Evaluate(b *coldata.Batch) {
	if e.inputColumn == e.outputColumn {
		colexecerror.InternalError(errors.AssertionFailedf(
			"%s reads and writes column %d", redact.SafeString(e.name), e.inputColumn))
	}
	e.EvaluateChildren(b)

	in := bytesVecAt(b, e.inputColumn)
	out := bytesVecAt(b, e.outputColumn)
	// The values written for the previous batch are dead, even if this batch
	// turns out to be empty.
	out.InitBuffer()
	if b.Size == 0 {
		return
	}

	fn := e.fn
	vector, start, length := in.Vector, in.Start, in.Length
	ProjectUnary(b, in.Header(), out.Header(), func(i int) {
		fn(out, vector, start, length, i)
	})
}

// Descriptor implements the VectorExpression interface.
func (e *StringUnaryDirect) Descriptor() *Descriptor {
	return NewDescriptorBuilder().
		SetMode(Projection).
		SetNumArguments(1).
		SetArgumentTypes(ArgStringFamily).
		SetInputExpressionTypes(InputColumn).
		Build()
}

// SafeFormat implements the redact.SafeFormatter interface.
func (e *StringUnaryDirect) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s(col %d) -> col %d",
		redact.SafeString(e.name), redact.Safe(e.inputColumn), redact.Safe(e.outputColumn))
}

func (e *StringUnaryDirect) String() string {
	return redact.StringWithoutMarkers(e)
}

func ltrim(out *coldata.BytesVec, vector [][]byte, start, length []int, i int) {
	s, end := start[i], start[i]+length[i]
	j := s
	for j < end && vector[i][j] == ' ' {
		j++
	}
	out.SetVal(i, vector[i][j:end])
}

func rtrim(out *coldata.BytesVec, vector [][]byte, start, length []int, i int) {
	s, end := start[i], start[i]+length[i]
	j := end
	for j > s && vector[i][j-1] == ' ' {
		j--
	}
	out.SetVal(i, vector[i][s:j])
}

func trim(out *coldata.BytesVec, vector [][]byte, start, length []int, i int) {
	s, end := start[i], start[i]+length[i]
	for s < end && vector[i][s] == ' ' {
		s++
	}
	for end > s && vector[i][end-1] == ' ' {
		end--
	}
	out.SetVal(i, vector[i][s:end])
}
