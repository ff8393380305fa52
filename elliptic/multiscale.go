package elliptic

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gorbms/gomor/mor"
)

// MultiscaleModel augments the global model with a disjoint partition of
// the interior degrees of freedom into subdomains, each carrying a local h1
// product and a local right-hand-side restriction.
type MultiscaleModel struct {
	*mor.StationaryModel
	partition [][]int
	localH1   []*mor.Product
	localRHS  []*mat.VecDense
}

func (mm *MultiscaleModel) NumSubdomains() int { return len(mm.partition) }

// Partition lists the global DOF indices per subdomain.
func (mm *MultiscaleModel) Partition() [][]int { return mm.partition }

// LocalDims gives the number of DOFs per subdomain.
func (mm *MultiscaleModel) LocalDims() []int {
	dims := make([]int, len(mm.partition))
	for s, idx := range mm.partition {
		dims[s] = len(idx)
	}
	return dims
}

// LocalProduct returns the named inner product restricted to a subdomain.
// Only "h1" is assembled.
func (mm *MultiscaleModel) LocalProduct(s int, id string) (*mor.Product, error) {
	if s < 0 || s >= len(mm.partition) {
		return nil, fmt.Errorf("elliptic: no subdomain %d (have %d)", s, len(mm.partition))
	}
	if id != "h1" {
		return nil, fmt.Errorf("elliptic: no local product %q on subdomain %d", id, s)
	}
	return mm.localH1[s], nil
}

// LocalRHS returns the right-hand side restricted to a subdomain.
func (mm *MultiscaleModel) LocalRHS(s int) *mat.VecDense { return mm.localRHS[s] }

// WithParameterSpace rebinds the underlying model to a parameter space.
func (mm *MultiscaleModel) WithParameterSpace(space *mor.CubicParameterSpace) *MultiscaleModel {
	c := *mm
	c.StationaryModel = mm.StationaryModel.WithParameterSpace(space)
	return &c
}
