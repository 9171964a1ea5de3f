package xgboost

import (
	"fmt"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// Features is the input to tree traversal: a feature source in which any index
// may be missing.
type Features interface {
	// IsMissing reports whether idx has no value.
	IsMissing(idx int) bool

	// FValue returns the value at idx. Calling it for a missing index is a
	// contract violation.
	FValue(idx int) float64
}

// FVec is a sparse feature vector keyed by feature index. An FVec is not safe
// for concurrent mutation; use one per goroutine and Reset it between
// instances.
type FVec struct {
	vec map[int]float64
}

// NewFVec returns an empty FVec. sizeHint preallocates room for that many
// entries.
func NewFVec(sizeHint int) *FVec {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &FVec{vec: make(map[int]float64, sizeHint)}
}

// Fill sets the (indices[i], values[i]) pairs. A later pair overwrites an
// earlier one for the same index.
func (f *FVec) Fill(indices []int, values []float64) error {
	if len(indices) != len(values) {
		return xgbErrors.NewDimensionError("FVec.Fill", len(indices), len(values), 1)
	}
	for i, idx := range indices {
		f.vec[idx] = values[i]
	}
	return nil
}

// Set stores value at idx.
func (f *FVec) Set(idx int, value float64) {
	f.vec[idx] = value
}

// Drop removes the given indices, making them missing again.
func (f *FVec) Drop(indices ...int) {
	for _, idx := range indices {
		delete(f.vec, idx)
	}
}

// Reset removes every entry, keeping the allocated map.
func (f *FVec) Reset() {
	clear(f.vec)
}

// Len returns the number of present features.
func (f *FVec) Len() int { return len(f.vec) }

// IsMissing reports whether idx has no entry.
func (f *FVec) IsMissing(idx int) bool {
	_, ok := f.vec[idx]
	return !ok
}

// FValue returns the value stored at idx. It panics if idx is missing; check
// IsMissing first.
func (f *FVec) FValue(idx int) float64 {
	v, ok := f.vec[idx]
	if !ok {
		panic(fmt.Sprintf("xgboost: FValue called for missing feature %d", idx))
	}
	return v
}
