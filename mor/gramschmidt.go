package mor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// gramSchmidtExtend appends the snapshot to the basis after orthogonalizing
// it against every existing column in the configured product. The existing
// columns are assumed orthonormal and are not touched.
func gramSchmidtExtend(b *Basis, snapshot []float64, cfg ExtensionConfig) error {
	var (
		p        = cfg.Product
		d        = cfg.Defaults
		tol      = d.Float("gram_schmidt_tol", 1e-10)
		checkTol = d.Float("gram_schmidt_check_tol", 1e-3)
		check    = d.Bool("gram_schmidt_check", true)
		dedupe   = d.Bool("gram_schmidt_find_duplicates", true)
		passes   = d.Int("gram_schmidt_maxiter", 2)
	)

	initial := p.Norm(snapshot)
	if initial == 0 {
		return ErrExtensionStagnant
	}
	if dedupe {
		for _, col := range b.Cols {
			if floats.Equal(col, snapshot) {
				return ErrExtensionStagnant
			}
		}
	}

	w := make([]float64, len(snapshot))
	copy(w, snapshot)
	// repeated projection: one pass is not enough in floating point once
	// the snapshot is nearly dependent
	for iter := 0; iter < passes; iter++ {
		for _, col := range b.Cols {
			floats.AddScaled(w, -p.Inner(col, w), col)
		}
	}

	nrm := p.Norm(w)
	if nrm <= tol*initial {
		return ErrExtensionStagnant
	}
	floats.Scale(1/nrm, w)
	b.append(w)

	if check {
		for i, ci := range b.Cols {
			for j := i; j < b.Size(); j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if got := p.Inner(ci, b.Cols[j]); math.Abs(got-want) > checkTol {
					return fmt.Errorf("mor: gram-schmidt produced a non-orthonormal basis: (%d,%d) product is %g", i, j, got)
				}
			}
		}
	}
	return nil
}
