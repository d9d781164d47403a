package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDofAdjacency(t *testing.T) {
	m := testMesh(t, false)
	sp, err := testDefinition().Build(m)
	assert.NoError(t, err)

	A := sp.DofAdjacency(m)
	nr, nc := A.Dims()
	assert.Equal(t, sp.Ndof, nr)
	assert.Equal(t, sp.Ndof, nc)

	// element 0 couples dofs {0,1,2,3}, element 1 couples {2,3,4,5}
	assert.True(t, A.At(0, 3) > 0)
	assert.True(t, A.At(2, 5) > 0)
	assert.Equal(t, 0., A.At(0, 4))
	assert.Equal(t, 0., A.At(0, 5))
	assert.Equal(t, 0., A.At(1, 4))

	// pattern is symmetric with a nonzero diagonal
	for i := 0; i < sp.Ndof; i++ {
		assert.True(t, A.At(i, i) > 0)
		for j := 0; j < sp.Ndof; j++ {
			assert.Equal(t, A.At(i, j), A.At(j, i))
		}
	}
}
