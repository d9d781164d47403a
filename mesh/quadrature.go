package mesh

import (
	"math"

	"github.com/Karlmann7/geopdes/utils"
	"gonum.org/v1/gonum/mat"
)

// GaussLegendre returns the N-point Gauss-Legendre nodes and weights on
// [-1,1], computed from the eigen decomposition of the Jacobi matrix
// (Golub-Welsch).
func GaussLegendre(N int) (X, W utils.Vector) {
	if N == 1 {
		X = utils.NewVector(1, []float64{0})
		W = utils.NewVector(1, []float64{2})
		return
	}
	var (
		d0 = make([]float64, N)
		d1 = make([]float64, N-1)
	)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		d1[i] = ip1 / math.Sqrt(4*ip1*ip1-1)
	}
	JJ := utils.NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	X = utils.NewVector(N, x)

	VVr := mat.NewDense(N, N, nil)
	eig.VectorsTo(VVr)
	w := make([]float64, N)
	for j := 0; j < N; j++ {
		v0 := VVr.At(0, j)
		w[j] = 2 * v0 * v0
	}
	W = utils.NewVector(N, w)
	return
}

// spanQuadrature maps an N-point reference rule onto each interval of breaks,
// returning node and weight matrices sized (N x len(breaks)-1).
func spanQuadrature(breaks []float64, N int) (Qn, Qw utils.Matrix) {
	var (
		nel  = len(breaks) - 1
		x, w = GaussLegendre(N)
	)
	Qn, Qw = utils.NewMatrix(N, nel), utils.NewMatrix(N, nel)
	for k := 0; k < nel; k++ {
		var (
			a = breaks[k]
			b = breaks[k+1]
			h = 0.5 * (b - a)
		)
		for q := 0; q < N; q++ {
			Qn.Set(q, k, a+h*(x.AtVec(q)+1))
			Qw.Set(q, k, h*w.AtVec(q))
		}
	}
	return
}
