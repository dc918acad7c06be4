// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package colexpr contains the vectorized scalar expressions. An expression
// reads one column of a coldata.Batch and writes another, visiting only the
// active rows of the batch and honoring the null and repeating markers of its
// input. Compound expressions are built by chaining children whose outputs
// become the inputs of their parent.
//
// Expressions are not safe for concurrent use: each one owns mutable scratch
// state. Executors that evaluate the same tree from several goroutines must
// build one tree per goroutine.
package colexpr

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
)

// VectorExpression is a scalar expression evaluated one batch at a time.
type VectorExpression interface {
	redact.SafeFormatter
	fmt.Stringer

	// Name returns the name of the function computed by the expression.
	Name() string
	// Init materializes the derived state of the expression and of its
	// children. It must be called once after construction (or after
	// reconstruction from the serialized form) and before the first call to
	// Evaluate. Calling it again rebuilds the state from the declarative
	// parameters.
	Init(ctx context.Context) error
	// Evaluate evaluates the children of the expression and then the
	// expression itself over the active rows of b, writing the output column.
	// Filters rewrite the selection of b instead. Evaluate panics on broken
	// invariants; see colexecerror.
	Evaluate(b *coldata.Batch)
	// OutputColumn returns the index of the column written by Evaluate, or -1
	// for filters.
	OutputColumn() int
	// OutputType returns the type of the output column.
	OutputType() coltypes.T
	// Children returns the expressions evaluated before this one.
	Children() []VectorExpression
	// Descriptor describes the expression to the planner. It is nil for
	// expressions that the planner selects with dedicated logic.
	Descriptor() *Descriptor
}

// ExprBase holds the state shared by all expressions: the output column and
// the ordered list of children.
type ExprBase struct {
	outputColumn int
	outputType   coltypes.T
	children     []VectorExpression
}

// MakeExprBase returns an ExprBase writing to outputColumn.
func MakeExprBase(outputColumn int, outputType coltypes.T) ExprBase {
	return ExprBase{outputColumn: outputColumn, outputType: outputType}
}

// OutputColumn implements the VectorExpression interface.
func (e *ExprBase) OutputColumn() int {
	return e.outputColumn
}

// OutputType implements the VectorExpression interface.
func (e *ExprBase) OutputType() coltypes.T {
	return e.outputType
}

// Children implements the VectorExpression interface.
func (e *ExprBase) Children() []VectorExpression {
	return e.children
}

// SetChildren replaces the children of the expression.
func (e *ExprBase) SetChildren(children ...VectorExpression) {
	e.children = children
}

// EvaluateChildren evaluates the children in order, so that their outputs are
// available to the parent.
func (e *ExprBase) EvaluateChildren(b *coldata.Batch) {
	for _, child := range e.children {
		child.Evaluate(b)
	}
}

// InitChildren initializes the children in order, stopping at the first
// error.
func (e *ExprBase) InitChildren(ctx context.Context) error {
	for _, child := range e.children {
		if err := child.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Walk calls fn for expr and every expression below it, depth first, parents
// before their children. depth is 0 for expr.
func Walk(expr VectorExpression, fn func(e VectorExpression, depth int)) {
	walk(expr, 0, fn)
}

func walk(expr VectorExpression, depth int, fn func(e VectorExpression, depth int)) {
	fn(expr, depth)
	for _, child := range expr.Children() {
		walk(child, depth+1, fn)
	}
}

// Explain returns a printout of the expression tree rooted at expr, one
// expression per line with its descriptor. Children are indented below their
// parent.
func Explain(expr VectorExpression) string {
	var buf strings.Builder
	Walk(expr, func(e VectorExpression, depth int) {
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString(e.String())
		if d := e.Descriptor(); d != nil {
			fmt.Fprintf(&buf, " %s", d)
		} else {
			buf.WriteString(" (special-cased)")
		}
		buf.WriteByte('\n')
	})
	return buf.String()
}
