package bspline

import (
	"fmt"

	"github.com/Karlmann7/geopdes/utils"
)

// Basis1D holds a univariate B-spline basis evaluated at a structured set of
// quadrature nodes, one column of nodes per knot span. Values and derivative
// matrices are stored per element, each sized (Nqn x NshMax), with
// Connectivity mapping local shape function s of element k to its global
// univariate degree of freedom.
type Basis1D struct {
	Knots        []float64
	Degree       int
	Ndof         int
	NshMax       int
	Nel          int
	Nqn          int
	Connectivity [][]int        // [NshMax][Nel]
	Values       []utils.Matrix // per element, (Nqn x NshMax)
	Gradients    []utils.Matrix // nil unless requested
	Hessians     []utils.Matrix // nil unless requested
}

// NewBasis1D evaluates the basis defined by an open knot vector and degree at
// the node matrix (nqn x nel). The number of node columns must equal the
// number of non-empty knot spans.
func NewBasis1D(knots []float64, degree int, nodes utils.Matrix, wantGradient, wantHessian bool) (b *Basis1D, err error) {
	var (
		nqn, nel = nodes.Dims()
		spans    []int
	)
	if err = validateKnots(knots, degree); err != nil {
		return
	}
	if spans, err = elementSpans(knots, degree); err != nil {
		return
	}
	if nel != len(spans) {
		err = fmt.Errorf("configuration error: node matrix has %d columns, knot vector has %d non-empty spans", nel, len(spans))
		return
	}
	nDeriv := 0
	if wantGradient {
		nDeriv = 1
	}
	if wantHessian {
		nDeriv = 2
	}
	b = &Basis1D{
		Knots:        append([]float64(nil), knots...),
		Degree:       degree,
		Ndof:         len(knots) - degree - 1,
		NshMax:       degree + 1,
		Nel:          nel,
		Nqn:          nqn,
		Connectivity: make([][]int, degree+1),
		Values:       make([]utils.Matrix, nel),
	}
	for s := range b.Connectivity {
		b.Connectivity[s] = make([]int, nel)
	}
	if wantGradient {
		b.Gradients = make([]utils.Matrix, nel)
	}
	if wantHessian {
		b.Hessians = make([]utils.Matrix, nel)
	}
	for k := 0; k < nel; k++ {
		span := spans[k]
		for s := 0; s <= degree; s++ {
			b.Connectivity[s][k] = span - degree + s
		}
		V := utils.NewMatrix(nqn, degree+1)
		var G, H utils.Matrix
		if wantGradient {
			G = utils.NewMatrix(nqn, degree+1)
		}
		if wantHessian {
			H = utils.NewMatrix(nqn, degree+1)
		}
		for q := 0; q < nqn; q++ {
			ders := dersBasisFuns(span, nodes.At(q, k), degree, nDeriv, knots)
			V.SetRow(q, ders[0])
			if wantGradient {
				G.SetRow(q, ders[1])
			}
			if wantHessian {
				H.SetRow(q, ders[2])
			}
		}
		b.Values[k] = V
		if wantGradient {
			b.Gradients[k] = G
		}
		if wantHessian {
			b.Hessians[k] = H
		}
	}
	return
}

// Rationalize converts the B-spline basis into a NURBS basis using one
// positive weight per degree of freedom. Second derivative data is dropped,
// values and gradients transform by the quotient rule. Weight positivity is a
// precondition on the caller, not checked here.
func (b *Basis1D) Rationalize(w utils.Vector) (r *Basis1D, err error) {
	if w.Len() != b.Ndof {
		err = fmt.Errorf("configuration error: %d weights for %d degrees of freedom", w.Len(), b.Ndof)
		return
	}
	r = &Basis1D{
		Knots:        b.Knots,
		Degree:       b.Degree,
		Ndof:         b.Ndof,
		NshMax:       b.NshMax,
		Nel:          b.Nel,
		Nqn:          b.Nqn,
		Connectivity: b.Connectivity,
		Values:       make([]utils.Matrix, b.Nel),
	}
	if b.Gradients != nil {
		r.Gradients = make([]utils.Matrix, b.Nel)
	}
	for k := 0; k < b.Nel; k++ {
		V := b.Values[k].Copy()
		var G utils.Matrix
		if b.Gradients != nil {
			G = b.Gradients[k].Copy()
		}
		for q := 0; q < b.Nqn; q++ {
			var W, dW float64
			for s := 0; s < b.NshMax; s++ {
				ws := w.AtVec(b.Connectivity[s][k])
				W += ws * b.Values[k].At(q, s)
				if b.Gradients != nil {
					dW += ws * b.Gradients[k].At(q, s)
				}
			}
			for s := 0; s < b.NshMax; s++ {
				ws := w.AtVec(b.Connectivity[s][k])
				N := b.Values[k].At(q, s)
				V.Set(q, s, ws*N/W)
				if b.Gradients != nil {
					dN := b.Gradients[k].At(q, s)
					G.Set(q, s, ws*(dN*W-N*dW)/(W*W))
				}
			}
		}
		r.Values[k] = V
		if b.Gradients != nil {
			r.Gradients[k] = G
		}
	}
	return
}

func validateKnots(knots []float64, degree int) (err error) {
	if degree < 0 {
		return fmt.Errorf("configuration error: negative degree %d", degree)
	}
	if len(knots) < 2*(degree+1) {
		return fmt.Errorf("configuration error: %d knots is too few for degree %d", len(knots), degree)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return fmt.Errorf("configuration error: knot vector decreases at position %d", i)
		}
	}
	return
}

// elementSpans returns the knot span index of each non-empty span inside the
// basis domain [knots[degree], knots[len-degree-1]].
func elementSpans(knots []float64, degree int) (spans []int, err error) {
	for i := degree; i < len(knots)-degree-1; i++ {
		if knots[i+1] > knots[i] {
			spans = append(spans, i)
		}
	}
	if len(spans) == 0 {
		err = fmt.Errorf("configuration error: knot vector has no non-empty spans")
	}
	return
}

// FindSpan locates the knot span containing u, clamped so the right domain
// boundary belongs to the last non-empty span.
func FindSpan(u float64, degree int, knots []float64) (span int) {
	var (
		n = len(knots) - degree - 2
	)
	if u >= knots[n+1] {
		for span = n; knots[span+1] <= knots[span]; span-- {
		}
		return
	}
	low, high := degree, n+1
	span = (low + high) / 2
	for u < knots[span] || u >= knots[span+1] {
		if u < knots[span] {
			high = span
		} else {
			low = span
		}
		span = (low + high) / 2
	}
	return
}

// BasisFunctions returns the degree+1 non-vanishing basis values at u together
// with the knot span index. Cox-de Boor recursion, no derivatives.
func BasisFunctions(u float64, degree int, knots []float64) (span int, vals []float64) {
	span = FindSpan(u, degree, knots)
	var (
		left  = make([]float64, degree+1)
		right = make([]float64, degree+1)
	)
	vals = make([]float64, degree+1)
	vals[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			temp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		vals[j] = saved
	}
	return
}

// dersBasisFuns returns rows 0..nDeriv of basis values and derivatives at u
// for the degree+1 functions supported on the given span.
func dersBasisFuns(span int, u float64, p, nDeriv int, knots []float64) (ders [][]float64) {
	var (
		ndu   = zeros2D(p+1, p+1)
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
	)
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders = zeros2D(nDeriv+1, p+1)
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}
	// derivative orders above the degree are identically zero
	nd := nDeriv
	if nd > p {
		nd = p
	}
	if nd == 0 {
		return
	}

	a := zeros2D(2, p+1)
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= nd; k++ {
			var (
				d      float64
				j1, j2 int
				rk     = r - k
				pk     = p - k
			)
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}

	acc := p
	for k := 1; k <= nd; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= float64(acc)
		}
		acc *= p - k
	}
	return
}

func zeros2D(n, m int) (z [][]float64) {
	z = make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, m)
	}
	return
}
