// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package decimalset implements a hash set of decimals compared by numeric
// value, so that 1.0, 1.00 and 1 are the same member.
package decimalset

import (
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/swiss"
)

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211

	zeroHash   = fnvOffset64
	nanHash    = fnvOffset64 ^ 0x6e616e
	posInfHash = fnvOffset64 ^ 0x2b696e66
	negInfHash = fnvOffset64 ^ 0x2d696e66
)

// Hashed is a view of a decimal that hashes and compares by numeric value.
// A Hashed does not own the decimal it points to. It can be re-pointed with
// Reset any number of times; the space used to normalize the value is owned
// by the Hashed, so probing a Set with a reused Hashed does not
// allocate for decimals whose coefficient fits in a machine word.
type Hashed struct {
	d    *apd.Decimal
	hash uint64
	// reduced is d with trailing zeros stripped. It is only maintained for
	// finite non-zero values.
	reduced apd.Decimal
}

// Reset points h at d and recomputes its hash. d must not be modified while h
// points at it.
func (h *Hashed) Reset(d *apd.Decimal) {
	h.d = d
	h.hash = h.computeHash()
}

// Decimal returns the decimal h points at.
func (h *Hashed) Decimal() *apd.Decimal {
	return h.d
}

// Hash returns the value hash of the decimal. Numerically equal decimals
// have equal hashes.
func (h *Hashed) Hash() uint64 {
	return h.hash
}

// Equal returns whether h and o hold the same numeric value. Zeros are equal
// regardless of sign and exponent, NaNs are equal to each other, and
// infinities are equal when their signs are.
func (h *Hashed) Equal(o *Hashed) bool {
	if h.hash != o.hash {
		return false
	}
	hNaN, oNaN := isNaN(h.d), isNaN(o.d)
	if hNaN || oNaN {
		return hNaN && oNaN
	}
	if isReducible(h.d) && isReducible(o.d) {
		// Equal values have identical reduced forms.
		return h.reduced.Negative == o.reduced.Negative &&
			h.reduced.Exponent == o.reduced.Exponent &&
			h.reduced.Coeff.Cmp(&o.reduced.Coeff) == 0
	}
	return h.d.Cmp(o.d) == 0
}

func isNaN(d *apd.Decimal) bool {
	return d.Form == apd.NaN || d.Form == apd.NaNSignaling
}

func isReducible(d *apd.Decimal) bool {
	return d.Form == apd.Finite && !d.IsZero()
}

// computeHash hashes the canonical form of h.d: sign, exponent and
// coefficient with trailing zeros stripped.
func (h *Hashed) computeHash() uint64 {
	d := h.d
	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return nanHash
	case apd.Infinite:
		if d.Negative {
			return negInfHash
		}
		return posInfHash
	}
	if d.IsZero() {
		return zeroHash
	}
	r, _ := h.reduced.Reduce(d)
	hash := uint64(fnvOffset64)
	if r.Negative {
		hash = mix(hash, 1)
	}
	hash = mix(hash, uint64(uint32(r.Exponent)))
	if r.Coeff.IsUint64() {
		hash = mix(hash, r.Coeff.Uint64())
	} else {
		// Large coefficients only contribute their size. They are rare in
		// literal lists, and Equal resolves the collisions.
		hash = mix(hash, math.MaxUint64-uint64(r.Coeff.BitLen()))
	}
	return hash
}

func mix(hash, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		hash ^= v & 0xff
		hash *= fnvPrime64
		v >>= 8
	}
	return hash
}

// Set is a set of decimals built once and then probed many times. It is not
// safe for concurrent use.
type Set struct {
	// buckets maps a value hash to the members with that hash.
	buckets *swiss.Map[uint64, []*Hashed]
	len     int
	// probe is the scratch view used by ContainsDecimal.
	probe Hashed
}

// New returns an empty set sized for capacity members.
func New(capacity int) *Set {
	return &Set{buckets: swiss.New[uint64, []*Hashed](capacity)}
}

// Add adds a copy of d to the set. It returns false if a numerically equal
// value was already a member.
func (s *Set) Add(d *apd.Decimal) bool {
	s.probe.Reset(d)
	if s.Contains(&s.probe) {
		return false
	}
	m := &Hashed{}
	m.Reset(new(apd.Decimal).Set(d))
	chain, _ := s.buckets.Get(m.hash)
	s.buckets.Put(m.hash, append(chain, m))
	s.len++
	return true
}

// Len returns the number of distinct values in the set.
func (s *Set) Len() int {
	return s.len
}

// Contains returns whether the value probe points at is a member.
func (s *Set) Contains(probe *Hashed) bool {
	chain, ok := s.buckets.Get(probe.hash)
	if !ok {
		return false
	}
	for _, m := range chain {
		if m.Equal(probe) {
			return true
		}
	}
	return false
}

// ContainsDecimal is like Contains, using a probe owned by the set.
func (s *Set) ContainsDecimal(d *apd.Decimal) bool {
	s.probe.Reset(d)
	return s.Contains(&s.probe)
}
