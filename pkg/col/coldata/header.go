// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

// VecHeader holds the state that is common to every column vector
// representation: the null markers and the repeating flag.
//
// NoNulls is a pure performance shortcut. When it is true nobody needs to look
// at IsNull, and IsNull may hold stale values from an earlier batch. When it
// is false, IsNull must be accurate for every active row.
//
// IsRepeating means that physical index 0 holds the value (and null flag) of
// every active row in the batch.
type VecHeader struct {
	NoNulls     bool
	IsRepeating bool
	IsNull      []bool

	// Flags saved by Flatten and restored by Unflatten.
	preFlattenNoNulls     bool
	preFlattenIsRepeating bool
}

func makeHeader(capacity int) VecHeader {
	return VecHeader{
		NoNulls:           true,
		IsNull:            make([]bool, capacity),
		preFlattenNoNulls: true,
	}
}

// Header returns h. It makes every type that embeds a VecHeader satisfy the
// corresponding part of the Vec interface.
func (h *VecHeader) Header() *VecHeader {
	return h
}

// Capacity returns the number of physical rows the vector can hold.
func (h *VecHeader) Capacity() int {
	return len(h.IsNull)
}

// Reset prepares the header for a new batch: no nulls and not repeating. The
// null markers are only cleared if some of them might have been set.
func (h *VecHeader) Reset() {
	if !h.NoNulls {
		for i := range h.IsNull {
			h.IsNull[i] = false
		}
	}
	h.NoNulls = true
	h.IsRepeating = false
	h.preFlattenNoNulls = true
	h.preFlattenIsRepeating = false
}

// SetNull marks physical row i as null.
func (h *VecHeader) SetNull(i int) {
	h.NoNulls = false
	h.IsNull[i] = true
}

// NullAt returns whether physical row i is null. It does not take IsRepeating
// into account; callers that want the logical null flag of a row in a
// repeating vector should ask for index 0.
func (h *VecHeader) NullAt(i int) bool {
	return !h.NoNulls && h.IsNull[i]
}

// SetRepeating marks the vector as repeating (or not).
func (h *VecHeader) SetRepeating(repeating bool) {
	h.IsRepeating = repeating
}

// flattenPush saves the flags that Unflatten restores.
func (h *VecHeader) flattenPush() {
	h.preFlattenNoNulls = h.NoNulls
	h.preFlattenIsRepeating = h.IsRepeating
}

// Unflatten restores the NoNulls and IsRepeating flags that were in effect
// before the last call to Flatten.
func (h *VecHeader) Unflatten() {
	h.IsRepeating = h.preFlattenIsRepeating
	h.NoNulls = h.preFlattenNoNulls
}

// flattenRepeatingNulls copies the null flag of row 0 to every active row.
func (h *VecHeader) flattenRepeatingNulls(selectedInUse bool, sel []int, size int) {
	var nullFillValue bool
	if !h.NoNulls {
		nullFillValue = h.IsNull[0]
	}
	if selectedInUse {
		for _, i := range sel[:size] {
			h.IsNull[i] = nullFillValue
		}
	} else {
		for i := 0; i < size; i++ {
			h.IsNull[i] = nullFillValue
		}
	}
}

// flattenNoNulls turns NoNulls off, writing explicit false markers for every
// active row so the markers are accurate.
func (h *VecHeader) flattenNoNulls(selectedInUse bool, sel []int, size int) {
	if !h.NoNulls {
		return
	}
	h.NoNulls = false
	if selectedInUse {
		for _, i := range sel[:size] {
			h.IsNull[i] = false
		}
	} else {
		for i := 0; i < size; i++ {
			h.IsNull[i] = false
		}
	}
}
