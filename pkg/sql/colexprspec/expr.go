// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package colexprspec contains the serialized (YAML) form of vectorized
// expression trees and of test batches.
//
// Building an expression from its serialized form only records the
// declarative parameters. Callers must call Init on the result before the
// first Evaluate.
package colexprspec

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexpr"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec marks the errors caused by a malformed expression or batch
// spec.
var ErrInvalidSpec = errors.New("invalid spec")

// The operators that can be serialized.
const (
	OpLTrim               = "ltrim"
	OpRTrim               = "rtrim"
	OpTrim                = "trim"
	OpCastStringToDecimal = "cast_string_to_decimal"
	OpDecimalInList       = "decimal_in_list"
	OpFilterDecimalInList = "filter_decimal_in_list"
)

// ExprSpec is the serialized form of an expression tree.
type ExprSpec struct {
	Op string `yaml:"op"`
	// Input is the column read by the expression.
	Input int `yaml:"input"`
	// Output is the column written by the expression. Filters ignore it.
	Output int `yaml:"output"`
	// Values are the literals of IN lists.
	Values []string `yaml:"values,omitempty"`
	// Children are evaluated before the expression, in order.
	Children []ExprSpec `yaml:"children,omitempty"`
}

// ParseExpr decodes an ExprSpec. Unknown fields are rejected.
func ParseExpr(data []byte) (ExprSpec, error) {
	var spec ExprSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return ExprSpec{}, errors.Mark(errors.Wrap(err, "parsing expression"), ErrInvalidSpec)
	}
	return spec, nil
}

// MarshalExpr encodes spec.
func MarshalExpr(spec ExprSpec) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	return data, errors.Wrap(err, "encoding expression")
}

func invalidf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidSpec)
}

type childSetter interface {
	SetChildren(children ...colexpr.VectorExpression)
}

// Build constructs the expression tree described by spec. The tree is not
// initialized.
func Build(spec ExprSpec) (colexpr.VectorExpression, error) {
	if spec.Input < 0 {
		return nil, invalidf("%s: negative input column %d", spec.Op, spec.Input)
	}
	isFilter := spec.Op == OpFilterDecimalInList
	if !isFilter && spec.Output < 0 {
		return nil, invalidf("%s: negative output column %d", spec.Op, spec.Output)
	}
	isInList := spec.Op == OpDecimalInList || isFilter
	if !isInList && len(spec.Values) > 0 {
		return nil, invalidf("%s does not take values", spec.Op)
	}

	var expr interface {
		colexpr.VectorExpression
		childSetter
	}
	switch spec.Op {
	case OpLTrim, OpRTrim, OpTrim:
		if spec.Input == spec.Output {
			// The output buffer is reset before the input is read.
			return nil, invalidf("%s: input and output must be distinct columns", spec.Op)
		}
		switch spec.Op {
		case OpLTrim:
			expr = colexpr.NewLTrim(spec.Input, spec.Output)
		case OpRTrim:
			expr = colexpr.NewRTrim(spec.Input, spec.Output)
		default:
			expr = colexpr.NewTrim(spec.Input, spec.Output)
		}
	case OpCastStringToDecimal:
		expr = colexpr.NewCastStringToDecimal(spec.Input, spec.Output)
	case OpDecimalInList:
		e := colexpr.NewDecimalColumnInList(spec.Input, spec.Output)
		e.SetInListValues(spec.Values...)
		expr = e
	case OpFilterDecimalInList:
		e := colexpr.NewFilterDecimalColumnInList(spec.Input)
		e.SetInListValues(spec.Values...)
		expr = e
	default:
		return nil, invalidf("unknown expression %q", spec.Op)
	}

	if len(spec.Children) > 0 {
		children := make([]colexpr.VectorExpression, len(spec.Children))
		for i := range spec.Children {
			child, err := Build(spec.Children[i])
			if err != nil {
				return nil, errors.Wrapf(err, "child %d of %s", i, spec.Op)
			}
			children[i] = child
		}
		expr.SetChildren(children...)
	}
	return expr, nil
}

// FromExpr returns the serialized form of expr. Derived state, such as the
// membership set of an IN list, is not part of it.
func FromExpr(expr colexpr.VectorExpression) (ExprSpec, error) {
	var spec ExprSpec
	switch e := expr.(type) {
	case *colexpr.Instrumented:
		return FromExpr(e.Unwrap())
	case *colexpr.StringUnaryDirect:
		switch e.Name() {
		case OpLTrim, OpRTrim, OpTrim:
		default:
			return ExprSpec{}, errors.AssertionFailedf("cannot serialize string function %q", e.Name())
		}
		spec = ExprSpec{Op: e.Name(), Input: e.InputColumn(), Output: e.OutputColumn()}
	case *colexpr.CastStringToDecimal:
		spec = ExprSpec{Op: OpCastStringToDecimal, Input: e.InputColumn(), Output: e.OutputColumn()}
	case *colexpr.DecimalColumnInList:
		spec = ExprSpec{
			Op: OpDecimalInList, Input: e.InputColumn(), Output: e.OutputColumn(),
			Values: append([]string(nil), e.InListValues()...),
		}
	case *colexpr.FilterDecimalColumnInList:
		spec = ExprSpec{
			Op: OpFilterDecimalInList, Input: e.InputColumn(), Output: e.OutputColumn(),
			Values: append([]string(nil), e.InListValues()...),
		}
	default:
		return ExprSpec{}, errors.AssertionFailedf("cannot serialize %T", expr)
	}
	for _, child := range expr.Children() {
		childSpec, err := FromExpr(child)
		if err != nil {
			return ExprSpec{}, err
		}
		spec.Children = append(spec.Children, childSpec)
	}
	return spec, nil
}
