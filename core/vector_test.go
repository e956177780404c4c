package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("zero vector", func(t *testing.T) {
		v := Normalize([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []float32{1, 1}
		_ = Normalize(in)
		assert.Equal(t, []float32{1, 1}, in)
	})
}

func TestMean(t *testing.T) {
	assert.Nil(t, Mean(nil))
	assert.Equal(t, []float32{2, 3}, Mean([][]float32{{1, 2}, {3, 4}}))
}

func TestDot(t *testing.T) {
	a := Normalize([]float32{1, 2, 3})
	assert.InDelta(t, 1.0, Dot(a, a), 1e-6)
	assert.InDelta(t, 0.0, Dot([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, 1.0, Dot([]float32{1, 0, 5}, []float32{1}), 1e-6)
	assert.False(t, math.IsNaN(float64(Dot(nil, nil))))
}
