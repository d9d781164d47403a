package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{2, 3, 4}, NewRange(2, 4))
	assert.Equal(t, Index{1, 4, 7}, NewRangeStride(1, 3, 3))
	assert.Equal(t, Index{3, 1}, NewFromFloat([]float64{3.0, 1.0}))

	I := NewRange(0, 3)
	assert.Equal(t, Index{10, 11, 12, 13}, I.Add(10))
	assert.Equal(t, Index{0, 2, 4, 6}, I.Apply(func(v int) int { return 2 * v }))
	assert.Equal(t, Index{3, 0}, I.Subset(Index{3, 0}))
	assert.True(t, I.Contains(2))
	assert.False(t, I.Contains(7))

	J := I.Copy()
	J[0] = 99
	assert.Equal(t, 0, I[0])

	_, err := NewIndex2D(Index{1, 2}, Index{1})
	assert.Error(t, err)
	I2, err := NewIndex2D(Index{1, 2}, Index{3, 4})
	assert.NoError(t, err)
	assert.Equal(t, 2, I2.Len)
}
