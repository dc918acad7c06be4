// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
)

// Mode is the evaluation mode of an expression.
type Mode int

const (
	// Projection expressions write an output column.
	Projection Mode = iota
	// Filter expressions narrow the selection of the batch.
	Filter
)

func (m Mode) String() string {
	switch m {
	case Projection:
		return "PROJECTION"
	case Filter:
		return "FILTER"
	default:
		return "UNKNOWN"
	}
}

// ArgumentType is a bitmask of the argument kinds accepted at one argument
// position.
type ArgumentType uint32

const (
	ArgLong ArgumentType = 1 << iota
	ArgDecimal
	ArgString
	ArgChar
	ArgVarchar

	// ArgStringFamily accepts every string-like kind.
	ArgStringFamily = ArgString | ArgChar | ArgVarchar
	// ArgAny accepts every kind.
	ArgAny = ArgLong | ArgDecimal | ArgStringFamily
)

var argumentTypeNames = []struct {
	t    ArgumentType
	name string
}{
	{ArgLong, "LONG"},
	{ArgDecimal, "DECIMAL"},
	{ArgString, "STRING"},
	{ArgChar, "CHAR"},
	{ArgVarchar, "VARCHAR"},
}

func (a ArgumentType) String() string {
	switch a {
	case 0:
		return "NONE"
	case ArgAny:
		return "ANY"
	case ArgStringFamily:
		return "STRING_FAMILY"
	}
	var names []string
	for _, n := range argumentTypeNames {
		if a&n.t != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// InputExpressionType says whether an argument is read from a column or is a
// literal.
type InputExpressionType int

const (
	InputColumn InputExpressionType = iota
	InputScalar
	// InputDynamic arguments are literals only known at execution time.
	InputDynamic
)

func (t InputExpressionType) String() string {
	switch t {
	case InputColumn:
		return "COLUMN"
	case InputScalar:
		return "SCALAR"
	case InputDynamic:
		return "DYNAMIC"
	default:
		return "UNKNOWN"
	}
}

// Descriptor is the declarative capability tag of an expression: its mode
// and, per argument, the accepted kinds and where the argument comes from.
type Descriptor struct {
	Mode          Mode
	ArgumentTypes []ArgumentType
	InputTypes    []InputExpressionType
}

// NumArguments returns the number of arguments of the expression.
func (d *Descriptor) NumArguments() int {
	return len(d.ArgumentTypes)
}

// Matches returns whether an expression described by d can serve a request
// for the expression described by request. Every argument kind of the request
// must be accepted by d at the same position.
func (d *Descriptor) Matches(request *Descriptor) bool {
	if d.Mode != request.Mode || d.NumArguments() != request.NumArguments() {
		return false
	}
	for i, t := range request.ArgumentTypes {
		if t == 0 || t&^d.ArgumentTypes[i] != 0 {
			return false
		}
		if request.InputTypes[i] != d.InputTypes[i] {
			return false
		}
	}
	return true
}

func (d *Descriptor) String() string {
	var buf strings.Builder
	buf.WriteString(d.Mode.String())
	buf.WriteByte('(')
	for i := range d.ArgumentTypes {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(d.ArgumentTypes[i].String())
		buf.WriteByte(' ')
		buf.WriteString(d.InputTypes[i].String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// DescriptorBuilder assembles a Descriptor.
type DescriptorBuilder struct {
	mode         Mode
	numArguments int
	argTypes     []ArgumentType
	inputTypes   []InputExpressionType
}

// NewDescriptorBuilder returns a builder for a projection with no arguments.
func NewDescriptorBuilder() *DescriptorBuilder {
	return &DescriptorBuilder{}
}

// SetMode sets the evaluation mode.
func (b *DescriptorBuilder) SetMode(m Mode) *DescriptorBuilder {
	b.mode = m
	return b
}

// SetNumArguments sets the arity.
func (b *DescriptorBuilder) SetNumArguments(n int) *DescriptorBuilder {
	b.numArguments = n
	return b
}

// SetArgumentTypes sets the accepted kinds, one per argument.
func (b *DescriptorBuilder) SetArgumentTypes(types ...ArgumentType) *DescriptorBuilder {
	b.argTypes = types
	return b
}

// SetInputExpressionTypes sets the source of each argument.
func (b *DescriptorBuilder) SetInputExpressionTypes(types ...InputExpressionType) *DescriptorBuilder {
	b.inputTypes = types
	return b
}

// Build returns the descriptor. The number of argument and input types must
// match the arity.
func (b *DescriptorBuilder) Build() *Descriptor {
	if len(b.argTypes) != b.numArguments || len(b.inputTypes) != b.numArguments {
		colexecerror.InternalError(errors.AssertionFailedf(
			"descriptor with %d arguments has %d argument types and %d input types",
			b.numArguments, len(b.argTypes), len(b.inputTypes),
		))
	}
	return &Descriptor{
		Mode:          b.mode,
		ArgumentTypes: append([]ArgumentType(nil), b.argTypes...),
		InputTypes:    append([]InputExpressionType(nil), b.inputTypes...),
	}
}
