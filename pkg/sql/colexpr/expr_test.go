// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"testing"

	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	inList := NewDecimalColumnInList(1, 2)
	cast := NewCastStringToDecimal(0, 1)
	inList.SetChildren(cast)

	var names []string
	var depths []int
	Walk(inList, func(e VectorExpression, depth int) {
		names = append(names, e.Name())
		depths = append(depths, depth)
	})
	require.Equal(t, []string{"decimal_in_list", "cast_string_to_decimal"}, names)
	require.Equal(t, []int{0, 1}, depths)
	require.Equal(t, []VectorExpression{cast}, inList.Children())
	require.Equal(t, coltypes.Long, inList.OutputType())
	require.Equal(t, coltypes.Decimal, cast.OutputType())
}

func TestExplain(t *testing.T) {
	inList := NewDecimalColumnInList(1, 2)
	inList.SetInListValues("1")
	inList.SetChildren(NewCastStringToDecimal(0, 1))
	require.Equal(t,
		"decimal_in_list(col 1 IN (1)) -> col 2 (special-cased)\n"+
			"  cast_string_to_decimal(col 0) -> col 1 PROJECTION(STRING_FAMILY COLUMN)\n",
		Explain(inList))
}
