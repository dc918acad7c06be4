// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"context"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexpr/decimalset"
	"github.com/cockroachdb/vecexpr/pkg/util/log"
)

// ErrMalformedLiteral marks the errors returned by Init when an IN list value
// cannot be parsed as a decimal.
var ErrMalformedLiteral = errors.New("malformed decimal literal")

// inListSet is the membership set of an IN list: either not built yet or
// materialized from the literals.
type inListSet interface {
	get() *decimalset.Set
}

type unmaterializedInListSet struct{}

func (unmaterializedInListSet) get() *decimalset.Set {
	colexecerror.InternalError(errors.AssertionFailedf("IN list evaluated before Init"))
	// Unreachable.
	return nil
}

type materializedInListSet struct {
	set *decimalset.Set
}

func (s materializedInListSet) get() *decimalset.Set {
	return s.set
}

// decimalInList is the state shared by the projection and the filter flavors
// of the decimal IN list.
type decimalInList struct {
	inputColumn int
	values      []string
	set         inListSet
	// probe is reused for every row to avoid allocating a boxed decimal per
	// lookup.
	probe decimalset.Hashed
}

func makeDecimalInList(inputColumn int) decimalInList {
	return decimalInList{inputColumn: inputColumn, set: unmaterializedInListSet{}}
}

// SetInListValues records the literals of the IN list. The membership set is
// built by the next call to Init.
func (e *decimalInList) SetInListValues(values ...string) {
	e.values = append([]string(nil), values...)
	e.set = unmaterializedInListSet{}
}

// InListValues returns the literals of the IN list.
func (e *decimalInList) InListValues() []string {
	return e.values
}

// InputColumn returns the index of the column read by the expression.
func (e *decimalInList) InputColumn() int {
	return e.inputColumn
}

// materialize parses the literals and builds the membership set. On error the
// expression is left unmaterialized.
func (e *decimalInList) materialize(ctx context.Context) error {
	e.set = unmaterializedInListSet{}
	set := decimalset.New(len(e.values))
	for i, v := range e.values {
		d, _, err := apd.NewFromString(v)
		if err != nil {
			return errors.Mark(
				errors.Wrapf(err, "IN list value #%d %q", redact.Safe(i+1), v),
				ErrMalformedLiteral,
			)
		}
		set.Add(d)
	}
	e.set = materializedInListSet{set: set}
	if log.V(2) {
		log.VEventf(ctx, 2, "IN list on col %d: %d literals, %d distinct values",
			e.inputColumn, len(e.values), set.Len())
	}
	return nil
}

func (e *decimalInList) formatValues(w redact.SafePrinter) {
	w.SafeString("(")
	for i, v := range e.values {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(v)
	}
	w.SafeString(")")
}

// DecimalColumnInList computes `col IN (values...)` for a decimal column,
// writing 1 or 0 to a long column. Values are compared numerically.
//
// The expression goes through two phases: it is constructed with its column
// indices and literals, and Init builds the membership set. Evaluating it
// before Init is a wiring bug.
type DecimalColumnInList struct {
	ExprBase
	decimalInList
}

var _ VectorExpression = &DecimalColumnInList{}

// NewDecimalColumnInList returns an IN list reading inputColumn and writing
// outputColumn. The literals are supplied with SetInListValues.
func NewDecimalColumnInList(inputColumn, outputColumn int) *DecimalColumnInList {
	return &DecimalColumnInList{
		ExprBase:      MakeExprBase(outputColumn, coltypes.Long),
		decimalInList: makeDecimalInList(inputColumn),
	}
}

// Name implements the VectorExpression interface.
func (e *DecimalColumnInList) Name() string { return "decimal_in_list" }

// Init implements the VectorExpression interface.
func (e *DecimalColumnInList) Init(ctx context.Context) error {
	if err := e.InitChildren(ctx); err != nil {
		return err
	}
	return e.materialize(ctx)
}

// Evaluate implements the VectorExpression interface. Null input rows keep
// their previous output value; every other active row gets a definite 1 or 0.
func (e *DecimalColumnInList) Evaluate(b *coldata.Batch) {
	e.EvaluateChildren(b)

	set := e.set.get()
	in := decimalVecAt(b, e.inputColumn)
	out := longVecAt(b, e.outputColumn)
	if b.Size == 0 {
		return
	}

	probe := &e.probe
	inVals, outVals := in.Vector, out.Vector
	ProjectUnary(b, in.Header(), out.Header(), func(i int) {
		probe.Reset(&inVals[i])
		if set.Contains(probe) {
			outVals[i] = 1
		} else {
			outVals[i] = 0
		}
	})
}

// Descriptor implements the VectorExpression interface. IN lists are
// variadic, so the planner special-cases them.
func (e *DecimalColumnInList) Descriptor() *Descriptor {
	return nil
}

// SafeFormat implements the redact.SafeFormatter interface. The literals are
// user data.
func (e *DecimalColumnInList) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s(col %d IN ", redact.SafeString(e.Name()), redact.Safe(e.inputColumn))
	e.formatValues(w)
	w.Printf(") -> col %d", redact.Safe(e.outputColumn))
}

func (e *DecimalColumnInList) String() string {
	return redact.StringWithoutMarkers(e)
}

// FilterDecimalColumnInList keeps the active rows of a batch whose decimal
// value is a member of the IN list. Null rows are dropped.
type FilterDecimalColumnInList struct {
	ExprBase
	decimalInList
}

var _ VectorExpression = &FilterDecimalColumnInList{}

// NewFilterDecimalColumnInList returns an IN list filter reading inputColumn.
func NewFilterDecimalColumnInList(inputColumn int) *FilterDecimalColumnInList {
	return &FilterDecimalColumnInList{
		ExprBase:      MakeExprBase(-1, coltypes.Unhandled),
		decimalInList: makeDecimalInList(inputColumn),
	}
}

// Name implements the VectorExpression interface.
func (e *FilterDecimalColumnInList) Name() string { return "filter_decimal_in_list" }

// Init implements the VectorExpression interface.
func (e *FilterDecimalColumnInList) Init(ctx context.Context) error {
	if err := e.InitChildren(ctx); err != nil {
		return err
	}
	return e.materialize(ctx)
}

// Evaluate implements the VectorExpression interface.
func (e *FilterDecimalColumnInList) Evaluate(b *coldata.Batch) {
	e.EvaluateChildren(b)

	set := e.set.get()
	in := decimalVecAt(b, e.inputColumn)
	if b.Size == 0 {
		return
	}

	probe := &e.probe
	inVals := in.Vector
	FilterUnary(b, in.Header(), func(i int) bool {
		probe.Reset(&inVals[i])
		return set.Contains(probe)
	})
}

// Descriptor implements the VectorExpression interface.
func (e *FilterDecimalColumnInList) Descriptor() *Descriptor {
	return nil
}

// SafeFormat implements the redact.SafeFormatter interface.
func (e *FilterDecimalColumnInList) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s(col %d IN ", redact.SafeString(e.Name()), redact.Safe(e.inputColumn))
	e.formatValues(w)
	w.SafeString(")")
}

func (e *FilterDecimalColumnInList) String() string {
	return redact.StringWithoutMarkers(e)
}
