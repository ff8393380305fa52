package mor

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Norm measures a full-order vector.
type Norm func(u *mat.VecDense) float64

// Product is a symmetric positive definite inner-product operator held as a
// sparse matrix.
type Product struct {
	M *sparse.CSR
}

func NewProduct(m *sparse.CSR) *Product { return &Product{M: m} }

func (p *Product) Dim() int {
	r, _ := p.M.Dims()
	return r
}

// Apply accumulates M*x into dst. dst must be zeroed by the caller.
func (p *Product) Apply(dst, x []float64) {
	p.M.DoNonZero(func(i, j int, v float64) {
		dst[i] += v * x[j]
	})
}

// Inner computes u' M v.
func (p *Product) Inner(u, v []float64) float64 {
	var s float64
	p.M.DoNonZero(func(i, j int, w float64) {
		s += w * u[i] * v[j]
	})
	return s
}

func (p *Product) Norm(u []float64) float64 {
	return math.Sqrt(p.Inner(u, u))
}

// InducedNorm wraps the product as a Norm on dense vectors.
func (p *Product) InducedNorm() Norm {
	return func(u *mat.VecDense) float64 {
		return p.Norm(vecData(u))
	}
}

// vecData returns the contiguous data slice backing v, copying when the
// vector is strided.
func vecData(v *mat.VecDense) []float64 {
	raw := v.RawVector()
	if raw.Inc == 1 {
		return raw.Data
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
