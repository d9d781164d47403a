package space

import (
	"fmt"
	"sync"

	"github.com/Karlmann7/geopdes/mesh"
	"github.com/Karlmann7/geopdes/utils"
)

// EvalField reconstructs the field defined by the coefficient vector u at
// every quadrature node of the mesh: eu[c].At(q, e) is the sum over all
// degrees of freedom connected to element e of u[dof] times the shape
// function value, per component c. F is the mesh geometric map, returned
// untouched. u, sp and msh are not mutated.
func EvalField(u utils.Vector, sp *Space, msh *mesh.Mesh2D) (eu, F []utils.Matrix, err error) {
	if u.Len() != sp.Ndof {
		err = fmt.Errorf("dimension mismatch: coefficient vector has %d entries, space has %d degrees of freedom", u.Len(), sp.Ndof)
		return
	}
	eu = make([]utils.Matrix, sp.Ncomp)
	for c := range eu {
		eu[c] = utils.NewMatrix(msh.Nqn, msh.Nel)
	}
	for _, cr := range msh.Columns() {
		if err = evalColumnInto(u, sp, msh, cr, eu); err != nil {
			return nil, nil, err
		}
	}
	F = msh.F
	return
}

// EvalFieldParallel is EvalField with the mesh columns partitioned across
// nproc goroutines. Columns own disjoint element ranges of eu, so workers
// write without locks. Results are identical to the serial path.
func EvalFieldParallel(u utils.Vector, sp *Space, msh *mesh.Mesh2D, nproc int) (eu, F []utils.Matrix, err error) {
	if u.Len() != sp.Ndof {
		err = fmt.Errorf("dimension mismatch: coefficient vector has %d entries, space has %d degrees of freedom", u.Len(), sp.Ndof)
		return
	}
	if nproc < 1 || nproc > msh.NelU {
		nproc = msh.NelU
	}
	eu = make([]utils.Matrix, sp.Ncomp)
	for c := range eu {
		eu[c] = utils.NewMatrix(msh.Nqn, msh.Nel)
	}
	var (
		cols = msh.Columns()
		pm   = utils.NewPartitionMap(nproc, msh.NelU)
		errs = make([]error, nproc)
		wg   = sync.WaitGroup{}
	)
	for np := 0; np < nproc; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				if errs[np] = evalColumnInto(u, sp, msh, cols[k], eu); errs[np] != nil {
					return
				}
			}
		}(np)
	}
	wg.Wait()
	for _, workerErr := range errs {
		if workerErr != nil {
			return nil, nil, workerErr
		}
	}
	F = msh.F
	return
}

// evalColumnInto gathers coefficients through the column connectivity,
// contracts them against the shape tensor and scatters the result into the
// column's global elements of eu.
func evalColumnInto(u utils.Vector, sp *Space, msh *mesh.Mesh2D, cr mesh.ColumnRange, eu []utils.Matrix) (err error) {
	col, err := EvaluateColumn(sp, msh, cr.IU)
	if err != nil {
		return
	}
	// gather: NoDof slots contribute a zero coefficient so padded shape
	// values cannot leak into the sum
	coeff := make([][]float64, sp.NshMax)
	for s := range coeff {
		coeff[s] = make([]float64, len(col.Elements))
		for eLoc, dof := range col.Connectivity[s] {
			if dof != NoDof {
				coeff[s][eLoc] = u.AtVec(dof)
			}
		}
	}
	for c := 0; c < sp.Ncomp; c++ {
		for eLoc, eGlob := range col.Elements {
			for q := 0; q < msh.Nqn; q++ {
				var sum float64
				for s := 0; s < sp.NshMax; s++ {
					sum += coeff[s][eLoc] * col.Shape.At(c, q, s, eLoc)
				}
				eu[c].Set(q, eGlob, sum)
			}
		}
	}
	return
}
