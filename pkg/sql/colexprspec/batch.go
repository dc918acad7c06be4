// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexprspec

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"gopkg.in/yaml.v3"
)

// BatchSpec is the serialized form of a batch.
type BatchSpec struct {
	// Capacity defaults to the larger of coldata.BatchSize() and the number
	// of rows.
	Capacity int `yaml:"capacity,omitempty"`
	// Size is the number of active rows when there is no selection. It
	// defaults to the number of rows.
	Size *int `yaml:"size,omitempty"`
	// Selected, when set, lists the active rows in order.
	Selected []int        `yaml:"selected,omitempty"`
	Columns  []ColumnSpec `yaml:"columns"`
}

// ColumnSpec is the serialized form of one column. A null value denotes a
// NULL row.
type ColumnSpec struct {
	Type      string    `yaml:"type"`
	Values    []*string `yaml:"values,omitempty"`
	Repeating bool      `yaml:"repeating,omitempty"`
}

// ParseBatch decodes a BatchSpec. Unknown fields are rejected.
func ParseBatch(data []byte) (BatchSpec, error) {
	var spec BatchSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return BatchSpec{}, errors.Mark(errors.Wrap(err, "parsing batch"), ErrInvalidSpec)
	}
	return spec, nil
}

// numRows returns the number of physical rows described by spec.
func (spec *BatchSpec) numRows() int {
	n := 0
	for _, c := range spec.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	for _, i := range spec.Selected {
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}

// BuildBatch returns the batch described by spec.
func BuildBatch(spec BatchSpec) (*coldata.Batch, error) {
	typs := make([]coltypes.T, len(spec.Columns))
	for i, c := range spec.Columns {
		t, err := coltypes.FromString(c.Type)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "column %d", i), ErrInvalidSpec)
		}
		typs[i] = t
	}

	rows := spec.numRows()
	capacity := spec.Capacity
	if capacity == 0 {
		capacity = coldata.BatchSize()
		if rows > capacity {
			capacity = rows
		}
	}
	if rows > capacity {
		return nil, invalidf("%d rows do not fit in a batch with capacity %d", rows, capacity)
	}

	b := coldata.NewBatch(typs, capacity)
	for i, c := range spec.Columns {
		if c.Repeating && len(c.Values) != 1 {
			return nil, invalidf("repeating column %d must have exactly one value, found %d", i, len(c.Values))
		}
		if err := fillColumn(b.ColVec(i), c.Values); err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		b.ColVec(i).Header().SetRepeating(c.Repeating)
	}

	switch {
	case spec.Selected != nil:
		if len(spec.Selected) > capacity {
			return nil, invalidf("selection of %d rows exceeds capacity %d", len(spec.Selected), capacity)
		}
		for _, i := range spec.Selected {
			if i < 0 {
				return nil, invalidf("negative selected row %d", i)
			}
		}
		b.SetSelection(spec.Selected)
	case spec.Size != nil:
		if *spec.Size < 0 || *spec.Size > capacity {
			return nil, invalidf("size %d out of range [0, %d]", *spec.Size, capacity)
		}
		b.ResetSelection(*spec.Size)
	default:
		b.ResetSelection(rows)
	}
	return b, nil
}

func fillColumn(vec coldata.Vec, values []*string) error {
	switch v := vec.(type) {
	case *coldata.LongVec:
		for i, s := range values {
			if s == nil {
				v.SetNull(i)
				continue
			}
			x, err := strconv.ParseInt(*s, 10, 64)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "row %d", i), ErrInvalidSpec)
			}
			v.Vector[i] = x
		}
	case *coldata.BytesVec:
		v.InitBuffer()
		for i, s := range values {
			if s == nil {
				v.SetNull(i)
				continue
			}
			v.SetVal(i, []byte(*s))
		}
	case *coldata.DecimalVec:
		for i, s := range values {
			if s == nil {
				v.SetNull(i)
				continue
			}
			if _, _, err := v.Vector[i].SetString(*s); err != nil {
				return errors.Mark(errors.Wrapf(err, "row %d", i), ErrInvalidSpec)
			}
		}
	default:
		return errors.AssertionFailedf("unhandled vector %T", vec)
	}
	return nil
}
