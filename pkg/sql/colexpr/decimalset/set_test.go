// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package decimalset

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func hashed(d *apd.Decimal) *Hashed {
	h := &Hashed{}
	h.Reset(d)
	return h
}

func TestHashedEqual(t *testing.T) {
	for _, tc := range []struct {
		a, b  string
		equal bool
	}{
		{"1", "1.0", true},
		{"1.00", "1", true},
		{"2.5", "2.50000", true},
		{"100", "1E+2", true},
		{"0", "-0", true},
		{"0", "0.000", true},
		{"0E+5", "-0.0", true},
		{"-3.10", "-3.1", true},
		{"NaN", "NaN", true},
		{"NaN", "sNaN", true},
		{"Inf", "Infinity", true},
		{"-Inf", "-Infinity", true},
		{"1", "2", false},
		{"1", "-1", false},
		{"10", "1", false},
		{"0.1", "1", false},
		{"Inf", "-Inf", false},
		{"NaN", "0", false},
		{"12345678901234567890123456789", "12345678901234567890123456789.000", true},
		{"12345678901234567890123456789", "12345678901234567890123456788", false},
	} {
		t.Run(fmt.Sprintf("%s=%s", tc.a, tc.b), func(t *testing.T) {
			a, b := hashed(mustParse(t, tc.a)), hashed(mustParse(t, tc.b))
			require.Equal(t, tc.equal, a.Equal(b))
			require.Equal(t, tc.equal, b.Equal(a))
			if tc.equal {
				require.Equal(t, a.Hash(), b.Hash())
			}
		})
	}
}

func TestHashedReset(t *testing.T) {
	var h Hashed
	one, two := mustParse(t, "1.0"), mustParse(t, "2")
	h.Reset(one)
	require.Same(t, one, h.Decimal())
	first := h.Hash()
	h.Reset(two)
	require.Same(t, two, h.Decimal())
	require.NotEqual(t, first, h.Hash())
	// The view does not modify what it points at.
	require.Equal(t, "1.0", one.String())
}

// TestHashedScaleInvariance checks that c*10^-e equals (c*10^k)*10^-(e+k)
// and hashes identically, for random coefficients and scales.
func TestHashedScaleInvariance(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("trailing zeros do not change value or hash", prop.ForAll(
		func(coeff int64, exp int32, k int) bool {
			a := apd.New(coeff, exp)
			scaled := coeff
			for i := 0; i < k; i++ {
				scaled *= 10
			}
			b := apd.New(scaled, exp-int32(k))
			ha, hb := hashed(a), hashed(b)
			return ha.Equal(hb) && ha.Hash() == hb.Hash()
		},
		gen.Int64Range(-1e9, 1e9),
		gen.Int32Range(-20, 20),
		gen.IntRange(0, 6),
	))

	properties.Property("different values are not equal", prop.ForAll(
		func(x, y int64) bool {
			return hashed(apd.New(x, -2)).Equal(hashed(apd.New(y, -2))) == (x == y)
		},
		gen.Int64Range(-1000, 1000),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

func TestSet(t *testing.T) {
	s := New(4)
	require.True(t, s.Add(mustParse(t, "1")))
	require.True(t, s.Add(mustParse(t, "2.5")))
	require.False(t, s.Add(mustParse(t, "1.000")))
	require.True(t, s.Add(mustParse(t, "-0")))
	require.False(t, s.Add(mustParse(t, "0")))
	require.Equal(t, 3, s.Len())

	for _, tc := range []struct {
		v        string
		contains bool
	}{
		{"1", true},
		{"1.0", true},
		{"2.50", true},
		{"0.00", true},
		{"2", false},
		{"-1", false},
		{"NaN", false},
	} {
		require.Equal(t, tc.contains, s.ContainsDecimal(mustParse(t, tc.v)), tc.v)
	}
}

func TestSetCopiesMembers(t *testing.T) {
	s := New(1)
	d := mustParse(t, "7")
	s.Add(d)
	d.SetInt64(8)
	require.True(t, s.ContainsDecimal(mustParse(t, "7")))
	require.False(t, s.ContainsDecimal(mustParse(t, "8")))
}

func TestSetContainsDoesNotAllocate(t *testing.T) {
	s := New(3)
	for _, v := range []string{"1", "2.5", "10"} {
		s.Add(mustParse(t, v))
	}
	values := make([]apd.Decimal, 64)
	for i := range values {
		values[i].SetFinite(int64(i*50), -2)
	}
	var probe Hashed
	allocs := testing.AllocsPerRun(10, func() {
		for i := range values {
			probe.Reset(&values[i])
			_ = s.Contains(&probe)
		}
	})
	require.Zero(t, allocs)
}
