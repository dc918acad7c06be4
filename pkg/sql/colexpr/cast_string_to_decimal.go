// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"context"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
)

// CastStringToDecimal parses a bytes column into a decimal column. Values
// that do not parse become NULL.
type CastStringToDecimal struct {
	ExprBase
	inputColumn int
}

var _ VectorExpression = &CastStringToDecimal{}

// NewCastStringToDecimal returns a cast reading inputColumn and writing
// outputColumn.
func NewCastStringToDecimal(inputColumn, outputColumn int) *CastStringToDecimal {
	return &CastStringToDecimal{
		ExprBase:    MakeExprBase(outputColumn, coltypes.Decimal),
		inputColumn: inputColumn,
	}
}

// Name implements the VectorExpression interface.
func (e *CastStringToDecimal) Name() string { return "cast_string_to_decimal" }

// InputColumn returns the index of the column read by the expression.
func (e *CastStringToDecimal) InputColumn() int { return e.inputColumn }

// Init implements the VectorExpression interface.
func (e *CastStringToDecimal) Init(ctx context.Context) error {
	return e.InitChildren(ctx)
}

// Evaluate implements the VectorExpression interface.
func (e *CastStringToDecimal) Evaluate(b *coldata.Batch) {
	e.EvaluateChildren(b)

	in := bytesVecAt(b, e.inputColumn)
	out := decimalVecAt(b, e.outputColumn)
	if b.Size == 0 {
		return
	}

	outVals, outNulls := out.Vector, out.IsNull
	ProjectUnary(b, in.Header(), out.Header(), func(i int) {
		if _, _, err := outVals[i].SetString(unsafeBytesToString(in.Bytes(i))); err != nil {
			out.SetNull(i)
			return
		}
		outNulls[i] = false
	})
}

// Descriptor implements the VectorExpression interface.
func (e *CastStringToDecimal) Descriptor() *Descriptor {
	return NewDescriptorBuilder().
		SetMode(Projection).
		SetNumArguments(1).
		SetArgumentTypes(ArgStringFamily).
		SetInputExpressionTypes(InputColumn).
		Build()
}

// SafeFormat implements the redact.SafeFormatter interface.
func (e *CastStringToDecimal) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s(col %d) -> col %d",
		redact.SafeString(e.Name()), redact.Safe(e.inputColumn), redact.Safe(e.outputColumn))
}

func (e *CastStringToDecimal) String() string {
	return redact.StringWithoutMarkers(e)
}
