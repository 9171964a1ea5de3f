package xgboost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/xgboost"
)

func TestFVec(t *testing.T) {
	fv := xgboost.NewFVec(4)
	require.NoError(t, fv.Fill([]int{3, 1, 3}, []float64{0.5, -2, 7}))

	assert.Equal(t, 2, fv.Len())
	assert.False(t, fv.IsMissing(1))
	assert.False(t, fv.IsMissing(3))
	assert.True(t, fv.IsMissing(0))
	assert.Equal(t, -2.0, fv.FValue(1))
	assert.Equal(t, 7.0, fv.FValue(3), "later pair wins")

	fv.Set(0, 0)
	assert.False(t, fv.IsMissing(0), "zero is a value, not missing")

	fv.Drop(1, 42)
	assert.True(t, fv.IsMissing(1))
	assert.Equal(t, 2, fv.Len())

	fv.Reset()
	assert.Equal(t, 0, fv.Len())
	assert.True(t, fv.IsMissing(3))
}

func TestFVec_FillMismatch(t *testing.T) {
	fv := xgboost.NewFVec(0)
	err := fv.Fill([]int{1, 2, 3}, []float64{1})

	var dimErr *xgbErrors.DimensionError
	require.True(t, xgbErrors.As(err, &dimErr))
	assert.Equal(t, "FVec.Fill", dimErr.Op)
	assert.Equal(t, 0, fv.Len())
}

func TestFVec_FValueMissingPanics(t *testing.T) {
	fv := xgboost.NewFVec(-1)
	assert.Panics(t, func() { fv.FValue(0) })
}
