package mesh

import (
	"fmt"

	"github.com/Karlmann7/geopdes/utils"
)

// Mesh2D is a structured tensor-product quadrature mesh over a rectangular
// parametric domain. Elements are the Cartesian products of the knot spans of
// the two directions; each element carries NqnU*NqnV Gauss-Legendre nodes.
//
// Global element numbering runs first-direction fastest: e = iu + NelU*iv.
// Quadrature node numbering inside an element follows the same convention:
// q = qu + NqnU*qv.
type Mesh2D struct {
	BreaksU, BreaksV []float64
	NelU, NelV, Nel  int
	NqnU, NqnV, Nqn  int
	QnU, QnV         utils.Matrix   // parametric nodes, (NqnU x NelU) and (NqnV x NelV)
	QwU, QwV         utils.Matrix   // quadrature weights per direction
	F                []utils.Matrix // geometric map, one (Nqn x Nel) matrix per physical component
	Boundary         []*EdgeMesh    // sides 1..4 in order, nil when built without boundary
}

// EdgeMesh is the 1D quadrature mesh of one rectangular boundary edge.
type EdgeMesh struct {
	Side        int // 1..4 = u-min, u-max, v-min, v-max
	Nel         int
	Nqn         int
	QuadNodes   utils.Matrix // (Nqn x Nel)
	QuadWeights utils.Matrix
}

// ColumnRange describes one mesh column: all elements sharing the first
// parametric element index IU, listed in second-direction order.
type ColumnRange struct {
	IU       int
	Elements utils.Index
}

// NewMesh2D builds the quadrature mesh for the given pair of knot vectors.
// The knots only contribute their break points; multiplicities collapse.
// withBoundary controls construction of the 4 edge meshes.
func NewMesh2D(knotsU, knotsV []float64, nqnU, nqnV int, withBoundary bool) (m *Mesh2D, err error) {
	if nqnU < 1 || nqnV < 1 {
		err = fmt.Errorf("configuration error: quadrature orders must be positive, got %d, %d", nqnU, nqnV)
		return
	}
	var (
		breaksU = uniqueBreaks(knotsU)
		breaksV = uniqueBreaks(knotsV)
	)
	if len(breaksU) < 2 || len(breaksV) < 2 {
		err = fmt.Errorf("configuration error: each direction needs at least one non-empty knot span")
		return
	}
	m = &Mesh2D{
		BreaksU: breaksU,
		BreaksV: breaksV,
		NelU:    len(breaksU) - 1,
		NelV:    len(breaksV) - 1,
		NqnU:    nqnU,
		NqnV:    nqnV,
	}
	m.Nel = m.NelU * m.NelV
	m.Nqn = nqnU * nqnV
	m.QnU, m.QwU = spanQuadrature(breaksU, nqnU)
	m.QnV, m.QwV = spanQuadrature(breaksV, nqnV)
	if withBoundary {
		m.Boundary = []*EdgeMesh{
			{Side: 1, Nel: m.NelV, Nqn: nqnV, QuadNodes: m.QnV.Copy(), QuadWeights: m.QwV.Copy()},
			{Side: 2, Nel: m.NelV, Nqn: nqnV, QuadNodes: m.QnV.Copy(), QuadWeights: m.QwV.Copy()},
			{Side: 3, Nel: m.NelU, Nqn: nqnU, QuadNodes: m.QnU.Copy(), QuadWeights: m.QwU.Copy()},
			{Side: 4, Nel: m.NelU, Nqn: nqnU, QuadNodes: m.QnU.Copy(), QuadWeights: m.QwU.Copy()},
		}
	}
	return
}

// SetGeoMap attaches the physical coordinates of every quadrature node, one
// (Nqn x Nel) matrix per component. The matrices are frozen read only.
func (m *Mesh2D) SetGeoMap(F []utils.Matrix) (err error) {
	for c := range F {
		nr, nc := F[c].Dims()
		if nr != m.Nqn || nc != m.Nel {
			err = fmt.Errorf("configuration error: geo map component %d is (%d x %d), mesh needs (%d x %d)", c, nr, nc, m.Nqn, m.Nel)
			return
		}
		F[c].SetReadOnly(fmt.Sprintf("GeoMap[%d]", c))
	}
	m.F = F
	return
}

// GlobalElement composes the global element index from per-direction element
// indices.
func (m *Mesh2D) GlobalElement(iu, iv int) int { return iu + m.NelU*iv }

// Node returns the parametric coordinates of quadrature node q of global
// element e.
func (m *Mesh2D) Node(q, e int) (u, v float64) {
	var (
		iu, iv = e % m.NelU, e / m.NelU
		qu, qv = q % m.NqnU, q / m.NqnU
	)
	u = m.QnU.At(qu, iu)
	v = m.QnV.At(qv, iv)
	return
}

// Columns lists the mesh columns in first-direction order. Columns have
// disjoint element sets and are the unit of parallel decomposition.
func (m *Mesh2D) Columns() (cols []ColumnRange) {
	cols = make([]ColumnRange, m.NelU)
	for iu := 0; iu < m.NelU; iu++ {
		cols[iu] = ColumnRange{
			IU:       iu,
			Elements: utils.NewRangeStride(iu, m.NelV, m.NelU),
		}
	}
	return
}

func uniqueBreaks(knots []float64) (breaks []float64) {
	for i, val := range knots {
		if i == 0 || val > breaks[len(breaks)-1]+utils.NODETOL {
			breaks = append(breaks, val)
		}
	}
	return
}
