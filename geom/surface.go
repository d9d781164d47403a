package geom

import (
	"fmt"

	"github.com/Karlmann7/geopdes/bspline"
	"github.com/Karlmann7/geopdes/mesh"
	"github.com/Karlmann7/geopdes/utils"
)

// Surface is a rational tensor-product (NURBS) surface. The control net is
// (McP x NcP) with McP control points along the first parametric direction.
// Weights follow the same layout. Control points are stored in Cartesian
// form; evaluation goes through homogeneous coordinates.
type Surface struct {
	KnotsU, KnotsV   []float64
	DegreeU, DegreeV int
	ControlPoints    [][][3]float64
	Weights          utils.Matrix
}

func NewSurface(knotsU, knotsV []float64, degreeU, degreeV int, controlPoints [][][3]float64, weights utils.Matrix) (s *Surface, err error) {
	var (
		mcp    = len(knotsU) - degreeU - 1
		ncp    = len(knotsV) - degreeV - 1
		wr, wc = weights.Dims()
	)
	if len(controlPoints) != mcp {
		err = fmt.Errorf("configuration error: %d control point rows, knots/degree require %d", len(controlPoints), mcp)
		return
	}
	for i := range controlPoints {
		if len(controlPoints[i]) != ncp {
			err = fmt.Errorf("configuration error: control point row %d has %d entries, knots/degree require %d", i, len(controlPoints[i]), ncp)
			return
		}
	}
	if wr != mcp || wc != ncp {
		err = fmt.Errorf("configuration error: weight grid is (%d x %d), control net is (%d x %d)", wr, wc, mcp, ncp)
		return
	}
	s = &Surface{
		KnotsU:        append([]float64(nil), knotsU...),
		KnotsV:        append([]float64(nil), knotsV...),
		DegreeU:       degreeU,
		DegreeV:       degreeV,
		ControlPoints: controlPoints,
		Weights:       weights.SetReadOnly("SurfaceWeights"),
	}
	return
}

// Point evaluates the surface at a parametric point. The homogeneous control
// net is contracted against the non-vanishing basis functions of both
// directions, then dehomogenized.
func (s *Surface) Point(u, v float64) (p [3]float64) {
	var (
		spanU, Nu = bspline.BasisFunctions(u, s.DegreeU, s.KnotsU)
		spanV, Nv = bspline.BasisFunctions(v, s.DegreeV, s.KnotsV)
		pw        [4]float64
	)
	for su := 0; su <= s.DegreeU; su++ {
		i := spanU - s.DegreeU + su
		for sv := 0; sv <= s.DegreeV; sv++ {
			j := spanV - s.DegreeV + sv
			wN := s.Weights.At(i, j) * Nu[su] * Nv[sv]
			cp := s.ControlPoints[i][j]
			pw[0] += wN * cp[0]
			pw[1] += wN * cp[1]
			pw[2] += wN * cp[2]
			pw[3] += wN
		}
	}
	p[0] = pw[0] / pw[3]
	p[1] = pw[1] / pw[3]
	p[2] = pw[2] / pw[3]
	return
}

// GeoMap evaluates the surface at every quadrature node of the mesh and
// attaches the result as the mesh geometric map. The returned matrices are
// the same ones stored on the mesh.
func (s *Surface) GeoMap(msh *mesh.Mesh2D) (F []utils.Matrix, err error) {
	F = make([]utils.Matrix, 3)
	for c := range F {
		F[c] = utils.NewMatrix(msh.Nqn, msh.Nel)
	}
	for e := 0; e < msh.Nel; e++ {
		for q := 0; q < msh.Nqn; q++ {
			u, v := msh.Node(q, e)
			p := s.Point(u, v)
			for c := range F {
				F[c].Set(q, e, p[c])
			}
		}
	}
	err = msh.SetGeoMap(F)
	return
}
