package space

import (
	"fmt"

	"github.com/Karlmann7/geopdes/mesh"
	"github.com/Karlmann7/geopdes/utils"
)

// ShapeTensor is a strided (Ncomp x Nqn x Nsh x Nel) array of evaluated shape
// function values for the elements of one mesh column.
type ShapeTensor struct {
	Ncomp, Nqn, Nsh, Nel int
	data                 []float64
}

func NewShapeTensor(ncomp, nqn, nsh, nel int) ShapeTensor {
	return ShapeTensor{
		Ncomp: ncomp, Nqn: nqn, Nsh: nsh, Nel: nel,
		data: make([]float64, ncomp*nqn*nsh*nel),
	}
}

func (t ShapeTensor) index(c, q, s, e int) int {
	return ((c*t.Nqn+q)*t.Nsh+s)*t.Nel + e
}

func (t ShapeTensor) At(c, q, s, e int) float64 { return t.data[t.index(c, q, s, e)] }

func (t ShapeTensor) Set(c, q, s, e int, val float64) { t.data[t.index(c, q, s, e)] = val }

// Column carries the connectivity and evaluated basis tensor for all elements
// sharing first-direction element index IU.
type Column struct {
	IU           int
	Elements     utils.Index // global element indices, second-direction order
	Connectivity [][]int     // [NshMax][len(Elements)], NoDof where no shape contributes
	Shape        ShapeTensor
}

// EvaluateColumn assembles connectivity and the rational shape function
// tensor for one mesh column. Local shape functions are ordered first
// direction major: s = su*(DegreeV+1) + sv.
func EvaluateColumn(sp *Space, msh *mesh.Mesh2D, iu int) (col *Column, err error) {
	if iu < 0 || iu >= msh.NelU {
		err = fmt.Errorf("configuration error: column %d out of range, mesh has %d columns", iu, msh.NelU)
		return
	}
	var (
		nshU = sp.SpU.NshMax
		nshV = sp.SpV.NshMax
	)
	col = &Column{
		IU:           iu,
		Elements:     utils.NewRangeStride(iu, msh.NelV, msh.NelU),
		Connectivity: columnConnectivity(sp, iu, msh.NelV),
		Shape:        NewShapeTensor(sp.Ncomp, msh.Nqn, sp.NshMax, msh.NelV),
	}
	for iv := 0; iv < msh.NelV; iv++ {
		var (
			Nu = sp.SpU.Values[iu]
			Nv = sp.SpV.Values[iv]
		)
		for qv := 0; qv < msh.NqnV; qv++ {
			for qu := 0; qu < msh.NqnU; qu++ {
				q := qu + msh.NqnU*qv
				// weighted partition of unity sum at this node
				var W float64
				for su := 0; su < nshU; su++ {
					for sv := 0; sv < nshV; sv++ {
						s := su*nshV + sv
						dof := col.Connectivity[s][iv]
						if dof == NoDof {
							continue
						}
						W += weightOf(sp, dof) * Nu.At(qu, su) * Nv.At(qv, sv)
					}
				}
				for su := 0; su < nshU; su++ {
					for sv := 0; sv < nshV; sv++ {
						s := su*nshV + sv
						dof := col.Connectivity[s][iv]
						if dof == NoDof {
							continue
						}
						val := weightOf(sp, dof) * Nu.At(qu, su) * Nv.At(qv, sv) / W
						for c := 0; c < sp.Ncomp; c++ {
							col.Shape.Set(c, q, s, iv, val)
						}
					}
				}
			}
		}
	}
	return
}

// columnConnectivity combines the univariate connectivities into the 2D
// local-to-global map for one column. Slots without an active shape function
// carry NoDof.
func columnConnectivity(sp *Space, iu, nelv int) (conn [][]int) {
	var (
		nshU = sp.SpU.NshMax
		nshV = sp.SpV.NshMax
	)
	conn = make([][]int, sp.NshMax)
	for s := range conn {
		conn[s] = make([]int, nelv)
		for iv := range conn[s] {
			conn[s][iv] = NoDof
		}
	}
	for iv := 0; iv < nelv; iv++ {
		for su := 0; su < nshU; su++ {
			du := sp.SpU.Connectivity[su][iu]
			for sv := 0; sv < nshV; sv++ {
				dv := sp.SpV.Connectivity[sv][iv]
				conn[su*nshV+sv][iv] = sp.DofIndex(du, dv)
			}
		}
	}
	return
}

func weightOf(sp *Space, dof int) float64 {
	ncp := sp.NdofDir[1]
	return sp.Weights.At(dof/ncp, dof%ncp)
}
