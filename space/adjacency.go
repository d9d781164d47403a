package space

import (
	"github.com/Karlmann7/geopdes/mesh"
	"github.com/james-bowman/sparse"
)

// DofAdjacency returns the (Ndof x Ndof) sparsity pattern coupling degrees of
// freedom that share at least one element: the incidence product of the
// element-to-dof connectivity with itself. Downstream assemblers use it to
// preallocate system matrices; no matrix values are assembled here.
func (sp *Space) DofAdjacency(msh *mesh.Mesh2D) (A *sparse.CSR) {
	inc := sparse.NewDOK(msh.Nel, sp.Ndof)
	for iu := 0; iu < msh.NelU; iu++ {
		conn := columnConnectivity(sp, iu, msh.NelV)
		for iv := 0; iv < msh.NelV; iv++ {
			e := msh.GlobalElement(iu, iv)
			for s := 0; s < sp.NshMax; s++ {
				if dof := conn[s][iv]; dof != NoDof {
					inc.Set(e, dof, 1)
				}
			}
		}
	}
	C := inc.ToCSR()
	A = sparse.NewCSR(sp.Ndof, sp.Ndof, nil, nil, nil)
	A.Mul(C.T(), C)
	return
}
