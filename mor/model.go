package mor

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// CoefficientFunc evaluates one affine coefficient at a parameter.
type CoefficientFunc func(mu Parameter) float64

// StationaryModel is an affine-decomposed stationary full-order model
//
//	A(mu) = sum_q c_q(mu) A_q,    A(mu) u = f
//
// with named inner products. The component operators A_q must be symmetric
// and the coefficients positive over the parameter space, so that A(mu) is
// amenable to conjugate gradients.
type StationaryModel struct {
	Name     string
	Ops      []*sparse.CSR
	Coeffs   []CoefficientFunc
	RHS      *mat.VecDense
	Space    *CubicParameterSpace
	Defaults *Defaults

	ptype    ParameterType
	products map[string]*Product
}

func NewStationaryModel(name string, ptype ParameterType, ops []*sparse.CSR,
	coeffs []CoefficientFunc, rhs *mat.VecDense, products map[string]*Product,
	defaults *Defaults) (*StationaryModel, error) {
	if len(ops) == 0 || len(ops) != len(coeffs) {
		return nil, fmt.Errorf("mor: model %q: %d operator components for %d coefficients",
			name, len(ops), len(coeffs))
	}
	n := rhs.Len()
	for q, op := range ops {
		r, c := op.Dims()
		if r != n || c != n {
			return nil, fmt.Errorf("mor: model %q: component %d is %dx%d, rhs has %d entries",
				name, q, r, c, n)
		}
	}
	if _, ok := products["h1"]; !ok {
		return nil, fmt.Errorf("mor: model %q: missing h1 product", name)
	}
	return &StationaryModel{
		Name:     name,
		Ops:      ops,
		Coeffs:   coeffs,
		RHS:      rhs,
		Defaults: defaults,
		ptype:    ptype,
		products: products,
	}, nil
}

func (m *StationaryModel) Dim() int                     { return m.RHS.Len() }
func (m *StationaryModel) ParameterType() ParameterType { return m.ptype }

// WithParameterSpace returns a shallow copy of the model bound to space.
func (m *StationaryModel) WithParameterSpace(space *CubicParameterSpace) *StationaryModel {
	c := *m
	c.Space = space
	return &c
}

// Product looks up a named inner product.
func (m *StationaryModel) Product(id string) (*Product, bool) {
	p, ok := m.products[id]
	return p, ok
}

func (m *StationaryModel) H1Product() *Product {
	return m.products["h1"]
}

func (m *StationaryModel) H1Norm() Norm {
	return m.products["h1"].InducedNorm()
}

// ApplyOperator accumulates A(mu)*x into dst. dst must be zeroed by the
// caller.
func (m *StationaryModel) ApplyOperator(mu Parameter, dst, x []float64) {
	for q, op := range m.Ops {
		c := m.Coeffs[q](mu)
		if c == 0 {
			continue
		}
		op.DoNonZero(func(i, j int, v float64) {
			dst[i] += c * v * x[j]
		})
	}
}

// Solve computes the full-order solution at mu by conjugate gradients.
func (m *StationaryModel) Solve(mu Parameter) (*mat.VecDense, error) {
	if len(mu.Values) != m.ptype.Dim {
		return nil, fmt.Errorf("mor: model %q: parameter %s does not match type %s",
			m.Name, mu, m.ptype)
	}
	mv := func(dst, src []float64) { m.ApplyOperator(mu, dst, src) }
	x, err := CG(mv, vecData(m.RHS),
		m.Defaults.Float("cg_tol", 1e-12),
		m.Defaults.Int("cg_maxiter", 10000))
	if err != nil {
		return nil, fmt.Errorf("mor: model %q: solve at mu = %s: %w", m.Name, mu, err)
	}
	return mat.NewVecDense(len(x), x), nil
}

// CoercivityLowerBound is the min-theta bound for parameter-separable SPD
// operators: alpha(mu) >= min_q c_q(mu).
func (m *StationaryModel) CoercivityLowerBound(mu Parameter) float64 {
	lb := m.Coeffs[0](mu)
	for _, c := range m.Coeffs[1:] {
		if v := c(mu); v < lb {
			lb = v
		}
	}
	return lb
}
