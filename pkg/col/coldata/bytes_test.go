// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesVecSetVal(t *testing.T) {
	v := NewBytesVec(BatchSize())
	v.InitBuffer()

	src := []byte("hello")
	v.SetVal(0, src)
	src[0] = 'j'
	require.Equal(t, []byte("hello"), v.Bytes(0), "SetVal must copy its input")
	require.Equal(t, 5, v.BufferSize())

	v.SetRef(1, src, 1, 3)
	require.Equal(t, []byte("ell"), v.Bytes(1))
	src[1] = 'a'
	require.Equal(t, []byte("all"), v.Bytes(1), "SetRef must not copy its input")

	v.InitBuffer()
	require.Equal(t, 0, v.BufferSize())
}

func TestBytesVecGrowKeepsEarlierValues(t *testing.T) {
	v := NewBytesVec(16)
	v.InitBuffer()
	large := bytes.Repeat([]byte("x"), defaultBytesBufferSize)

	v.SetVal(0, []byte("first"))
	// Does not fit in the remaining space, so a new buffer is allocated.
	v.SetVal(1, large)
	v.SetVal(2, bytes.Repeat([]byte("y"), 3*defaultBytesBufferSize))

	require.Equal(t, []byte("first"), v.Bytes(0))
	require.Equal(t, large, v.Bytes(1))
	require.Len(t, v.Bytes(2), 3*defaultBytesBufferSize)
}

func TestBytesVecFlatten(t *testing.T) {
	v := NewBytesVec(8)
	v.InitBuffer()
	v.SetVal(0, []byte("rep"))
	v.IsRepeating = true
	v.Flatten(true /* selectedInUse */, []int{2, 5}, 2)
	require.Equal(t, []byte("rep"), v.Bytes(2))
	require.Equal(t, []byte("rep"), v.Bytes(5))
	require.Equal(t, `"rep"`, v.PrettyValueAt(5))
}

func TestBytesVecManyValues(t *testing.T) {
	v := NewBytesVec(BatchSize())
	v.InitBufferWithSize(1)
	for i := 0; i < BatchSize(); i++ {
		v.SetVal(i, []byte(fmt.Sprintf("value-%d", i)))
	}
	for i := 0; i < BatchSize(); i++ {
		require.Equal(t, fmt.Sprintf("value-%d", i), string(v.Bytes(i)))
	}
}
