package mor

import (
	"gonum.org/v1/gonum/mat"
)

// Basis is an ordered set of full-order vectors, stored as column slices.
// The extension algorithms keep it orthonormal with respect to their bound
// product.
type Basis struct {
	Dim  int
	Cols [][]float64
}

// NewBasis returns an empty basis over a full-order space of the given
// dimension.
func NewBasis(dim int) *Basis { return &Basis{Dim: dim} }

func (b *Basis) Size() int { return len(b.Cols) }

// Dense lays the basis out as a Dim x Size matrix. Returns nil for an empty
// basis.
func (b *Basis) Dense() *mat.Dense {
	if b.Size() == 0 {
		return nil
	}
	V := mat.NewDense(b.Dim, b.Size(), nil)
	for j, col := range b.Cols {
		V.SetCol(j, col)
	}
	return V
}

func (b *Basis) append(col []float64) {
	b.Cols = append(b.Cols, col)
}

// Reconstructor maps reduced coordinates back into the full-order space.
type Reconstructor interface {
	// Reconstruct expands reduced coordinates; a nil argument stands for
	// the empty-basis zero solution and yields the zero full-order vector.
	Reconstruct(u *mat.VecDense) *mat.VecDense
}

type rbReconstructor struct {
	basis *Basis
}

// NewReconstructor wraps a flat basis.
func NewReconstructor(b *Basis) Reconstructor { return &rbReconstructor{basis: b} }

func (rc *rbReconstructor) Reconstruct(u *mat.VecDense) *mat.VecDense {
	out := make([]float64, rc.basis.Dim)
	if u != nil {
		for j, col := range rc.basis.Cols {
			c := u.AtVec(j)
			for i, v := range col {
				out[i] += c * v
			}
		}
	}
	return mat.NewVecDense(len(out), out)
}
