// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/cockroachdb/vecexpr/pkg/util/envutil"
)

// defaultBatchSize is the size of batches that is used in the non-test
// setting.
const defaultBatchSize = 1024

var batchSize = envutil.EnvOrDefaultInt("COCKROACH_VEC_BATCH_SIZE", defaultBatchSize)

// BatchSize is the maximum number of tuples that fit in a batch produced by
// the engine by default.
func BatchSize() int {
	return batchSize
}

// SetBatchSizeForTests modifies batchSize variable. It returns a function that
// restores the previous value.
func SetBatchSizeForTests(newBatchSize int) (restore func()) {
	if newBatchSize < 1 {
		panic(errors.AssertionFailedf("batch size %d must be positive", newBatchSize))
	}
	old := batchSize
	batchSize = newBatchSize
	return func() { batchSize = old }
}

// Batch is a fixed-capacity collection of parallel column vectors together
// with a description of which of its rows are active.
//
// If SelectedInUse is false, rows [0, Size) are the active rows. If it is
// true, Selected[:Size] lists the physical indices of the active rows, in the
// order in which they must be processed; these indices are not necessarily
// contiguous or sorted.
//
// Physical index i refers to the same row in every column of the batch.
type Batch struct {
	Cols          []Vec
	Size          int
	SelectedInUse bool
	Selected      []int

	capacity int
}

// NewBatch allocates a new batch with one vector of each of the given types,
// each able to hold capacity rows.
func NewBatch(typs []coltypes.T, capacity int) *Batch {
	b := &Batch{
		Cols:     make([]Vec, len(typs)),
		Selected: make([]int, capacity),
		capacity: capacity,
	}
	for i, t := range typs {
		b.Cols[i] = NewVec(t, capacity)
	}
	return b
}

// Capacity returns the maximum number of rows the batch can hold.
func (b *Batch) Capacity() int {
	return b.capacity
}

// Width returns the number of columns in the batch.
func (b *Batch) Width() int {
	return len(b.Cols)
}

// ColVec returns the ith Vec in the batch.
func (b *Batch) ColVec(i int) Vec {
	return b.Cols[i]
}

// AppendCol appends the given Vec to the batch.
func (b *Batch) AppendCol(col Vec) {
	if col.Capacity() < b.capacity {
		panic(errors.AssertionFailedf(
			"column with capacity %d cannot be added to a batch with capacity %d", col.Capacity(), b.capacity,
		))
	}
	b.Cols = append(b.Cols, col)
}

// SetSelection makes sel the active rows of the batch, in order. Size is set
// to len(sel).
func (b *Batch) SetSelection(sel []int) {
	if len(sel) > b.capacity {
		panic(errors.AssertionFailedf("selection of %d rows exceeds capacity %d", len(sel), b.capacity))
	}
	b.SelectedInUse = true
	b.Size = copy(b.Selected, sel)
}

// ResetSelection makes rows [0, size) the active rows of the batch.
func (b *Batch) ResetSelection(size int) {
	if size > b.capacity {
		panic(errors.AssertionFailedf("size %d exceeds capacity %d", size, b.capacity))
	}
	b.SelectedInUse = false
	b.Size = size
}

// Reset empties the batch and resets every column for reuse.
func (b *Batch) Reset() {
	b.Size = 0
	b.SelectedInUse = false
	for _, col := range b.Cols {
		col.Reset()
	}
}

// ActiveRows returns the physical indices of the active rows, in processing
// order. It allocates and is meant for tests and diagnostics.
func (b *Batch) ActiveRows() []int {
	rows := make([]int, b.Size)
	if b.SelectedInUse {
		copy(rows, b.Selected[:b.Size])
		return rows
	}
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// String returns a pretty representation of the active rows of the batch.
func (b *Batch) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "[%d active rows, selectedInUse=%t]", b.Size, b.SelectedInUse)
	for _, i := range b.ActiveRows() {
		fmt.Fprintf(&buf, "\n%d:", i)
		for _, col := range b.Cols {
			buf.WriteByte(' ')
			buf.WriteString(col.PrettyValueAt(i))
		}
	}
	return buf.String()
}
