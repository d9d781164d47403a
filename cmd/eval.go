/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/Karlmann7/geopdes/InputParameters"
	"github.com/Karlmann7/geopdes/geom"
	"github.com/Karlmann7/geopdes/mesh"
	"github.com/Karlmann7/geopdes/space"
	"github.com/Karlmann7/geopdes/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a coefficient-weighted field over a NURBS space",
	Long: `
Reads a YAML problem description (knots, degrees, weights, control points,
DOF coefficients), builds the tensor product space and quadrature mesh, and
evaluates the field at every quadrature point.

geopdes eval -f problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fileName, _ := cmd.Flags().GetString("file")
		nproc, _ := cmd.Flags().GetInt("nproc")
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start().Stop()
		}
		if err := runEval(fileName, nproc); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringP("file", "f", "problem.yaml", "YAML problem description")
	evalCmd.Flags().Int("nproc", 0, "number of parallel workers, 0 = one per mesh column")
	evalCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}

func runEval(fileName string, nproc int) (err error) {
	var (
		fp   InputParameters.FieldEvalParameters
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = fp.Parse(data); err != nil {
		return
	}
	fp.Print()

	msh, err := mesh.NewMesh2D(fp.KnotsU, fp.KnotsV, fp.QuadratureU, fp.QuadratureV, fp.Boundary)
	if err != nil {
		return
	}
	W := weightMatrix(fp.Weights)
	srf, err := geom.NewSurface(fp.KnotsU, fp.KnotsV, fp.DegreeU, fp.DegreeV, fp.ControlPoints, W)
	if err != nil {
		return
	}
	if _, err = srf.GeoMap(msh); err != nil {
		return
	}
	sp, err := space.NewSpaceFromSurface(srf, msh)
	if err != nil {
		return
	}
	if nproc == 0 && fp.Nproc != 0 {
		nproc = fp.Nproc
	}

	u := utils.NewVector(len(fp.Coefficients), fp.Coefficients)
	eu, _, err := space.EvalFieldParallel(u, sp, msh, nproc)
	if err != nil {
		return
	}
	fmt.Printf("space: ndof = %d, nsh_max = %d, boundary edges = %d\n", sp.Ndof, sp.NshMax, len(sp.Boundary))
	fmt.Printf("mesh: %d x %d elements, %d quadrature points per element\n", msh.NelU, msh.NelV, msh.Nqn)
	for c := range eu {
		fmt.Printf("component %d: min = %v, max = %v\n", c, eu[c].Min(), eu[c].Max())
	}
	return
}

func weightMatrix(w [][]float64) utils.Matrix {
	var (
		nr = len(w)
		nc = 0
	)
	if nr != 0 {
		nc = len(w[0])
	}
	W := utils.NewMatrix(nr, nc)
	for i := range w {
		W.SetRow(i, w[i])
	}
	return W
}
