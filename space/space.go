package space

import (
	"fmt"

	"github.com/Karlmann7/geopdes/bspline"
	"github.com/Karlmann7/geopdes/geom"
	"github.com/Karlmann7/geopdes/mesh"
	"github.com/Karlmann7/geopdes/utils"
)

// NoDof marks a local shape function slot with no contributing degree of
// freedom. Gather steps map it to a zero coefficient.
const NoDof = -1

// Definition holds the immutable ingredients of a tensor-product NURBS space.
// It is the factory for Space: the same definition can be rebuilt over any
// number of quadrature or visualization meshes sharing the knot topology.
type Definition struct {
	KnotsU, KnotsV   []float64
	DegreeU, DegreeV int
	Weights          utils.Matrix // (McP x NcP), all entries > 0 (precondition, not checked)
}

// Space is a 2D rational tensor-product basis bound to one quadrature mesh.
// Immutable after construction, safe for concurrent read.
type Space struct {
	Def      Definition
	SpU, SpV *bspline.Basis1D
	Weights  utils.Matrix
	NdofDir  [2]int // (McP, NcP) degrees of freedom per direction
	Ndof     int
	NshMax   int
	Ncomp    int
	Boundary []*BoundaryTrace // 4 edges, or nil when the mesh has no boundary
}

// BoundaryTrace is the restriction of the space to one rectangular edge:
// a rational 1D basis over the edge quadrature mesh plus the global indices
// of the degrees of freedom living on the edge.
type BoundaryTrace struct {
	Side      int // 1..4 = u-min, u-max, v-min, v-max
	Direction int // parametric direction that varies along the edge, 1 or 2
	Basis     *bspline.Basis1D
	Dofs      utils.Index
}

// sideDirection maps edge side (1..4) to the direction running along it:
// sides 1,2 are parametrized by direction 2, sides 3,4 by direction 1.
var sideDirection = [4]int{2, 2, 1, 1}

// NewSpace builds a space from explicit knots, degrees and weights over the
// given mesh.
func NewSpace(def Definition, msh *mesh.Mesh2D) (*Space, error) {
	return def.Build(msh)
}

// NewSpaceFromSurface derives the space definition from a rational surface
// description: same knots and weights, degree = spline order - 1.
func NewSpaceFromSurface(srf *geom.Surface, msh *mesh.Mesh2D) (*Space, error) {
	def := Definition{
		KnotsU:  srf.KnotsU,
		KnotsV:  srf.KnotsV,
		DegreeU: srf.DegreeU,
		DegreeV: srf.DegreeV,
		Weights: srf.Weights,
	}
	return def.Build(msh)
}

// Build constructs the space over msh. Malformed shapes fail fast with no
// partial space returned.
func (def Definition) Build(msh *mesh.Mesh2D) (sp *Space, err error) {
	var (
		mcp = len(def.KnotsU) - def.DegreeU - 1
		ncp = len(def.KnotsV) - def.DegreeV - 1
	)
	wr, wc := def.Weights.Dims()
	if wr != mcp || wc != ncp {
		err = fmt.Errorf("configuration error: weight grid is (%d x %d), knots/degree require (%d x %d)", wr, wc, mcp, ncp)
		return
	}
	spU, err := bspline.NewBasis1D(def.KnotsU, def.DegreeU, msh.QnU, true, true)
	if err != nil {
		return nil, err
	}
	spV, err := bspline.NewBasis1D(def.KnotsV, def.DegreeV, msh.QnV, true, true)
	if err != nil {
		return nil, err
	}
	sp = &Space{
		Def:     def,
		SpU:     spU,
		SpV:     spV,
		Weights: def.Weights.SetReadOnly("SpaceWeights"),
		NdofDir: [2]int{mcp, ncp},
		Ndof:    mcp * ncp,
		NshMax:  spU.NshMax * spV.NshMax,
		Ncomp:   1,
	}
	if msh.Boundary != nil {
		if sp.Boundary, err = buildBoundaryTraces(def, msh); err != nil {
			return nil, err
		}
	}
	return
}

// Rebind regenerates the space over a different mesh with identical knots,
// degrees and weights.
func (sp *Space) Rebind(msh *mesh.Mesh2D) (*Space, error) {
	return sp.Def.Build(msh)
}

// DofIndex composes the global degree of freedom index from per-direction
// indices of the row-major (McP x NcP) grid.
func (sp *Space) DofIndex(i, j int) int { return i*sp.NdofDir[1] + j }

func buildBoundaryTraces(def Definition, msh *mesh.Mesh2D) (traces []*BoundaryTrace, err error) {
	var (
		mcp = len(def.KnotsU) - def.DegreeU - 1
		ncp = len(def.KnotsV) - def.DegreeV - 1
	)
	if len(msh.Boundary) != 4 {
		err = fmt.Errorf("configuration error: rectangular mesh boundary must have 4 edges, got %d", len(msh.Boundary))
		return
	}
	traces = make([]*BoundaryTrace, 4)
	for k, edge := range msh.Boundary {
		var (
			side      = k + 1
			direction = sideDirection[k]
			knots     = def.KnotsU
			degree    = def.DegreeU
			w         utils.Vector
			dofs      utils.Index
		)
		if direction == 2 {
			knots, degree = def.KnotsV, def.DegreeV
		}
		// trace basis needs values and gradients only; curvature data is
		// never used on edges
		var trace *bspline.Basis1D
		if trace, err = bspline.NewBasis1D(knots, degree, edge.QuadNodes, true, false); err != nil {
			return nil, fmt.Errorf("side %d: %w", side, err)
		}
		switch side {
		case 1:
			w = def.Weights.Row(0)
			dofs = utils.NewRange(0, ncp-1)
		case 2:
			w = def.Weights.Row(mcp - 1)
			dofs = utils.NewRange((mcp-1)*ncp, mcp*ncp-1)
		case 3:
			w = def.Weights.Col(0)
			dofs = utils.NewRangeStride(0, mcp, ncp)
		case 4:
			w = def.Weights.Col(ncp - 1)
			dofs = utils.NewRangeStride(ncp-1, mcp, ncp)
		}
		var rational *bspline.Basis1D
		if rational, err = trace.Rationalize(w); err != nil {
			return nil, fmt.Errorf("side %d: %w", side, err)
		}
		traces[k] = &BoundaryTrace{
			Side:      side,
			Direction: direction,
			Basis:     rational,
			Dofs:      dofs,
		}
	}
	return
}
