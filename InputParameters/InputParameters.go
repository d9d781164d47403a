package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML problem file
type FieldEvalParameters struct {
	Title         string         `yaml:"Title"`
	DegreeU       int            `yaml:"DegreeU"`
	DegreeV       int            `yaml:"DegreeV"`
	KnotsU        []float64      `yaml:"KnotsU"`
	KnotsV        []float64      `yaml:"KnotsV"`
	Weights       [][]float64    `yaml:"Weights"` // (McP x NcP), row major
	ControlPoints [][][3]float64 `yaml:"ControlPoints"`
	QuadratureU   int            `yaml:"QuadratureU"` // Gauss-Legendre points per span
	QuadratureV   int            `yaml:"QuadratureV"`
	Coefficients  []float64      `yaml:"Coefficients"` // one per degree of freedom
	Boundary      bool           `yaml:"Boundary"`
	Nproc         int            `yaml:"Nproc"` // 0 = one goroutine per mesh column
}

func (fp *FieldEvalParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

func (fp *FieldEvalParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%d, %d]\t\t\t= Degree\n", fp.DegreeU, fp.DegreeV)
	fmt.Printf("%v\t= KnotsU\n", fp.KnotsU)
	fmt.Printf("%v\t= KnotsV\n", fp.KnotsV)
	fmt.Printf("[%d, %d]\t\t\t= Quadrature points per span\n", fp.QuadratureU, fp.QuadratureV)
	fmt.Printf("[%d]\t\t\t\t= Coefficients\n", len(fp.Coefficients))
	fmt.Printf("[%v]\t\t\t= Boundary\n", fp.Boundary)
}
