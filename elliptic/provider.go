package elliptic

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gorbms/gomor/mor"
)

// Provider assembles the full-order discretizations of a thermal-block
// problem once and hands them out. The parameter is the vector of block
// diffusion coefficients.
type Provider struct {
	spec   ProblemSpec
	global *mor.StationaryModel
	ms     *MultiscaleModel
}

func NewProvider(spec ProblemSpec, defaults *mor.Defaults) (*Provider, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	m := newMesh(spec.GridN)
	ops, h1, rhs := m.assembleBlocks(spec.XBlocks, spec.YBlocks)

	nb := spec.XBlocks * spec.YBlocks
	coeffs := make([]mor.CoefficientFunc, nb)
	for b := 0; b < nb; b++ {
		b := b
		coeffs[b] = func(mu mor.Parameter) float64 { return mu.Values[b] }
	}
	ptype := mor.ParameterType{Name: "diffusion", Dim: nb}
	products := map[string]*mor.Product{"h1": mor.NewProduct(h1)}

	global, err := mor.NewStationaryModel(spec.Title, ptype, ops, coeffs, rhs, products, defaults)
	if err != nil {
		return nil, fmt.Errorf("elliptic: building global discretization: %w", err)
	}

	part := m.partition(spec.XSubdomains, spec.YSubdomains)
	for s, idx := range part {
		if len(idx) == 0 {
			return nil, fmt.Errorf("elliptic: subdomain %d carries no degrees of freedom", s)
		}
	}
	localH1 := make([]*mor.Product, len(part))
	localRHS := make([]*mat.VecDense, len(part))
	for s, idx := range part {
		localH1[s] = mor.NewProduct(restrict(h1, idx))
		lr := make([]float64, len(idx))
		for li, gi := range idx {
			lr[li] = rhs.AtVec(gi)
		}
		localRHS[s] = mat.NewVecDense(len(lr), lr)
	}

	ms := &MultiscaleModel{
		StationaryModel: global,
		partition:       part,
		localH1:         localH1,
		localRHS:        localRHS,
	}
	return &Provider{spec: spec, global: global, ms: ms}, nil
}

func (p *Provider) Spec() ProblemSpec { return p.spec }

// GlobalDiscretization returns the continuous Galerkin full-order model.
func (p *Provider) GlobalDiscretization() *mor.StationaryModel { return p.global }

// MultiscaleDiscretization returns the partitioned variant sharing the
// global operators.
func (p *Provider) MultiscaleDiscretization() *MultiscaleModel { return p.ms }
