package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	N := 3
	v1 := NewVector(N).Set(1)
	require.Equal(t, 1., v1.V.RawVector().Data[N-1])
	v1.Set(2)
	require.Equal(t, 2., v1.V.RawVector().Data[N-1])

	// Subset, Concat
	{
		v := NewVector(4, []float64{10, 20, 30, 40})
		s := v.Subset(Index{3, 0})
		assert.Equal(t, []float64{40, 10}, s.RawVector().Data)
		c := s.Concat(NewVector(1, []float64{5}))
		assert.Equal(t, []float64{40, 10, 5}, c.RawVector().Data)
	}
	// Dot, Sum
	{
		v := NewVector(3, []float64{1, 2, 3})
		w := NewVector(3, []float64{4, 5, 6})
		assert.Equal(t, 32., v.Dot(w))
		assert.Equal(t, 6., v.Sum())
	}
	// Copy is independent of the source
	{
		v := NewVector(2, []float64{1, 2})
		w := v.Copy().Scale(10)
		assert.Equal(t, []float64{1, 2}, v.RawVector().Data)
		assert.Equal(t, []float64{10, 20}, w.RawVector().Data)
	}
	// Min, Max
	{
		v := NewVector(4, []float64{3, -1, 7, 2})
		assert.Equal(t, -1., v.Min())
		assert.Equal(t, 7., v.Max())
	}
	// Add, Apply, POW, ToIndex
	{
		v := NewVector(3, []float64{1, 2, 3})
		v.Add(1).POW(2)
		assert.Equal(t, []float64{4, 9, 16}, v.RawVector().Data)
		v.Apply(func(x float64) float64 { return x - 4 })
		assert.Equal(t, []float64{0, 5, 12}, v.RawVector().Data)
		assert.Equal(t, Index{0, 5, 12}, v.ToIndex())
	}
}
