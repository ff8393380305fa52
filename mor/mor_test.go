package mor

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// identityProduct is the euclidean inner product as a sparse operator.
func identityProduct(n int) *Product {
	dok := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 1)
	}
	return NewProduct(dok.ToCSR())
}

func diagCSR(diag []float64) *sparse.CSR {
	n := len(diag)
	dok := sparse.NewDOK(n, n)
	for i, v := range diag {
		dok.Set(i, i, v)
	}
	return dok.ToCSR()
}

// diagTestModel is a 2-component diagonal model: A(mu) = mu_0 D + mu_1 I
// with a unit right-hand side. Its solutions sweep through enough
// directions to feed a greedy run.
func diagTestModel(diag []float64) *StationaryModel {
	n := len(diag)
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	eye := make([]float64, n)
	for i := range eye {
		eye[i] = 1
	}
	model, err := NewStationaryModel("diag-test",
		ParameterType{Name: "diffusion", Dim: 2},
		[]*sparse.CSR{diagCSR(diag), diagCSR(eye)},
		[]CoefficientFunc{
			func(mu Parameter) float64 { return mu.Values[0] },
			func(mu Parameter) float64 { return mu.Values[1] },
		},
		mat.NewVecDense(n, ones),
		map[string]*Product{"h1": identityProduct(n)},
		NewDefaults())
	if err != nil {
		panic(err)
	}
	return model
}
