package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// SliceRows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		I := NewIndex(2)
		I[0] = 1
		I[1] = 0
		A := M.SliceRows(I)
		assert.Equal(t, A, NewMatrix(2, 3, []float64{
			4, 5, 6,
			1, 2, 3,
		}))
	}
	// SliceCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		I := NewIndex(2)
		I[0] = 1
		I[1] = 0
		A := M.SliceCols(I)
		assert.Equal(t, A, NewMatrix(2, 2, []float64{
			2, 1,
			5, 4,
		}))
	}
	// Row, Col
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, []float64{4, 5, 6}, M.Row(1).RawVector().Data)
		assert.Equal(t, []float64{2, 5}, M.Col(1).RawVector().Data)
		// negative indices count from the end
		assert.Equal(t, []float64{3, 6}, M.Col(-1).RawVector().Data)
	}
	// SumRows, SumCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, []float64{6, 15}, M.SumRows().RawVector().Data)
		assert.Equal(t, []float64{5, 7, 9}, M.SumCols().RawVector().Data)
	}
	// ElMul, ElDiv
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A := NewMatrix(2, 2, []float64{2, 2, 2, 2})
		M.ElMul(A)
		assert.Equal(t, []float64{2, 4, 6, 8}, M.RawMatrix().Data)
		M.ElDiv(A)
		assert.Equal(t, []float64{1, 2, 3, 4}, M.RawMatrix().Data)
	}
	// Inverse
	{
		M := NewMatrix(2, 2, []float64{4, 7, 2, 6})
		Minv, err := M.Inverse()
		assert.NoError(t, err)
		P := M.Mul(Minv)
		assert.InDelta(t, 1, P.At(0, 0), 1.e-12)
		assert.InDelta(t, 0, P.At(0, 1), 1.e-12)
		assert.InDelta(t, 0, P.At(1, 0), 1.e-12)
		assert.InDelta(t, 1, P.At(1, 1), 1.e-12)
	}
	// Scale, AddScalar, Apply, POW
	{
		M := NewMatrix(1, 3, []float64{1, 2, 3})
		M.Scale(2).AddScalar(-1)
		assert.Equal(t, []float64{1, 3, 5}, M.RawMatrix().Data)
		M.Apply(func(v float64) float64 { return v + 1 }).POW(2)
		assert.Equal(t, []float64{4, 16, 36}, M.RawMatrix().Data)
	}
	// Find
	{
		M := NewMatrix(2, 3, []float64{
			0, 5, 0,
			5, 0, 5,
		})
		I2 := M.Find(Equal, 5)
		assert.Equal(t, Index{0, 1, 1}, I2.RI)
		assert.Equal(t, Index{1, 0, 2}, I2.CI)
		assert.Equal(t, 3, I2.Len)
		assert.Equal(t, 6, M.Find(GreaterOrEqual, 0).Len)
		assert.Equal(t, 0, M.Find(Greater, 5).Len)
	}
	// read only guard
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		assert.NotPanics(t, func() { M.Set(0, 0, 1) })
	}
}
