// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coltypes

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// T represents an exec physical type - a bytes representation of a particular
// column type.
type T int

const (
	// Unhandled is the zero value and is never a valid column type.
	Unhandled T = iota
	// Long is a column of fixed-width int64 values. Booleans are stored in it
	// as 0/1.
	Long
	// Bytes is a column of variable-length byte values.
	Bytes
	// Decimal is a column of arbitrary-precision decimals.
	Decimal
)

// AllTypes is a slice of all exec types except Unhandled.
var AllTypes = []T{Long, Bytes, Decimal}

var typeNames = [...]string{
	Unhandled: "unhandled",
	Long:      "long",
	Bytes:     "bytes",
	Decimal:   "decimal",
}

func (t T) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// FromString returns the physical type named s. The names accepted are the
// ones returned by String, case-insensitively, plus the "bool" alias for Long.
func FromString(s string) (T, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "int", "bool":
		return Long, nil
	case "bytes", "string":
		return Bytes, nil
	case "decimal":
		return Decimal, nil
	}
	return Unhandled, errors.Newf("unknown column type %q", s)
}
