package bspline

import (
	"math"
	"testing"

	"github.com/Karlmann7/geopdes/utils"
	"github.com/stretchr/testify/assert"
)

// spanNodes builds an (nqn x nel) node matrix with evenly spaced interior
// points per non-empty knot span.
func spanNodes(knots []float64, degree, nqn int) (nodes utils.Matrix) {
	spans, err := elementSpans(knots, degree)
	if err != nil {
		panic(err)
	}
	nodes = utils.NewMatrix(nqn, len(spans))
	for k, span := range spans {
		a, b := knots[span], knots[span+1]
		for q := 0; q < nqn; q++ {
			nodes.Set(q, k, a+(b-a)*float64(q+1)/float64(nqn+1))
		}
	}
	return
}

func TestBasis1D(t *testing.T) {
	var (
		knots  = []float64{0, 0, 0, 0, 0.25, 0.5, 0.75, 1, 1, 1, 1}
		degree = 3
		nodes  = spanNodes(knots, degree, 4)
	)
	b, err := NewBasis1D(knots, degree, nodes, true, true)
	assert.NoError(t, err)
	assert.Equal(t, 7, b.Ndof)
	assert.Equal(t, 4, b.NshMax)
	assert.Equal(t, 4, b.Nel)
	assert.Equal(t, 4, b.Nqn)

	// partition of unity, gradient and curvature rows sum to zero
	for k := 0; k < b.Nel; k++ {
		for q := 0; q < b.Nqn; q++ {
			var sum, dsum, ddsum float64
			for s := 0; s < b.NshMax; s++ {
				sum += b.Values[k].At(q, s)
				dsum += b.Gradients[k].At(q, s)
				ddsum += b.Hessians[k].At(q, s)
			}
			assert.InDelta(t, 1, sum, 1.e-12)
			assert.InDelta(t, 0, dsum, 1.e-10)
			assert.InDelta(t, 0, ddsum, 1.e-9)
		}
	}

	// each element supports degree+1 consecutive functions
	for k := 0; k < b.Nel; k++ {
		first := b.Connectivity[0][k]
		assert.Equal(t, k, first)
		for s := 1; s < b.NshMax; s++ {
			assert.Equal(t, first+s, b.Connectivity[s][k])
		}
	}
}

func TestBasis1DQuadratic(t *testing.T) {
	var (
		knots  = []float64{0, 0, 0, 0.5, 1, 1, 1}
		degree = 2
		nodes  = spanNodes(knots, degree, 3)
	)
	b, err := NewBasis1D(knots, degree, nodes, true, false)
	assert.NoError(t, err)
	assert.Equal(t, 4, b.Ndof)
	assert.Nil(t, b.Hessians)
	assert.Equal(t, []int{0, 1, 2}, []int{b.Connectivity[0][0], b.Connectivity[1][0], b.Connectivity[2][0]})
	assert.Equal(t, []int{1, 2, 3}, []int{b.Connectivity[0][1], b.Connectivity[1][1], b.Connectivity[2][1]})

	// gradient of the quadratic basis against a finite difference
	var (
		h  = 1.e-7
		u  = 0.3
		up = u + h
		um = u - h
	)
	span, vals := BasisFunctions(u, degree, knots)
	_, valsP := BasisFunctions(up, degree, knots)
	_, valsM := BasisFunctions(um, degree, knots)
	ders := dersBasisFuns(span, u, degree, 1, knots)
	for s := 0; s <= degree; s++ {
		assert.InDelta(t, vals[s], ders[0][s], 1.e-12)
		fd := (valsP[s] - valsM[s]) / (2 * h)
		assert.InDelta(t, fd, ders[1][s], 1.e-5)
	}
}

func TestRationalize(t *testing.T) {
	var (
		knots  = []float64{0, 0, 0, 0.5, 1, 1, 1}
		degree = 2
		nodes  = spanNodes(knots, degree, 3)
		w      = utils.NewVector(4, []float64{1, 2, 3, 4})
	)
	b, err := NewBasis1D(knots, degree, nodes, true, true)
	assert.NoError(t, err)
	r, err := b.Rationalize(w)
	assert.NoError(t, err)
	assert.Nil(t, r.Hessians)

	// rational basis is a partition of unity for any positive weights
	for k := 0; k < r.Nel; k++ {
		for q := 0; q < r.Nqn; q++ {
			var sum, dsum float64
			for s := 0; s < r.NshMax; s++ {
				sum += r.Values[k].At(q, s)
				dsum += r.Gradients[k].At(q, s)
			}
			assert.InDelta(t, 1, sum, 1.e-12)
			assert.InDelta(t, 0, dsum, 1.e-10)
		}
	}

	// all-ones weights reproduce the polynomial basis exactly
	ones := utils.NewVector(4).Set(1)
	r1, err := b.Rationalize(ones)
	assert.NoError(t, err)
	for k := 0; k < b.Nel; k++ {
		for q := 0; q < b.Nqn; q++ {
			for s := 0; s < b.NshMax; s++ {
				assert.InDelta(t, b.Values[k].At(q, s), r1.Values[k].At(q, s), 1.e-14)
			}
		}
	}

	_, err = b.Rationalize(utils.NewVector(3).Set(1))
	assert.Error(t, err)
}

func TestBasisErrors(t *testing.T) {
	nodes := utils.NewMatrix(2, 1, []float64{0.25, 0.75})
	// decreasing knots
	_, err := NewBasis1D([]float64{0, 0, 1, 0.5, 1}, 1, nodes, false, false)
	assert.Error(t, err)
	// node columns must match span count
	_, err = NewBasis1D([]float64{0, 0, 0.5, 1, 1}, 1, nodes, false, false)
	assert.Error(t, err)
	// too few knots for the degree
	_, err = NewBasis1D([]float64{0, 1}, 2, nodes, false, false)
	assert.Error(t, err)
}

func TestFindSpan(t *testing.T) {
	knots := []float64{0, 0, 0, 0.5, 1, 1, 1}
	assert.Equal(t, 2, FindSpan(0, 2, knots))
	assert.Equal(t, 2, FindSpan(0.25, 2, knots))
	assert.Equal(t, 3, FindSpan(0.5, 2, knots))
	// the right domain boundary belongs to the last non-empty span
	assert.Equal(t, 3, FindSpan(1, 2, knots))

	_, vals := BasisFunctions(0, 2, knots)
	assert.InDelta(t, 1, vals[0], 1.e-15)
	assert.InDelta(t, 0, vals[1], 1.e-15)
	assert.InDelta(t, 0, vals[2], 1.e-15)

	var sum float64
	_, vals = BasisFunctions(0.7, 2, knots)
	for _, v := range vals {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1.e-14)
	assert.False(t, math.IsNaN(sum))
}
