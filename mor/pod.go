package mor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// podExtend appends the dominant modes of the snapshots' product-orthogonal
// complement to the basis, using the method of snapshots: the eigenvalue
// problem is posed on the small Gramian C' P C instead of the full space.
func podExtend(b *Basis, snapshots [][]float64, cfg ExtensionConfig) error {
	var (
		p        = cfg.Product
		d        = cfg.Defaults
		tol      = d.Float("pod_tol", 4e-8)
		symm     = d.Bool("pod_symmetrize", false)
		raiseNeg = d.Bool("pod_raise_negative", true)
	)

	// complement of each snapshot against the (orthonormal) basis
	comps := make([][]float64, 0, len(snapshots))
	for _, s := range snapshots {
		w := make([]float64, len(s))
		copy(w, s)
		for _, col := range b.Cols {
			floats.AddScaled(w, -p.Inner(col, w), col)
		}
		comps = append(comps, w)
	}
	m := len(comps)
	if m == 0 {
		return ErrExtensionStagnant
	}

	gram := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			v := p.Inner(comps[i], comps[j])
			if symm && i != j {
				v = 0.5 * (v + p.Inner(comps[j], comps[i]))
			}
			gram.SetSym(i, j, v)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(gram, true); !ok {
		return fmt.Errorf("mor: pod: eigendecomposition of the %dx%d gramian failed", m, m)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	lambdaMax := vals[m-1] // gonum orders eigenvalues ascending
	if lambdaMax <= 0 {
		return ErrExtensionStagnant
	}

	added := 0
	for k := m - 1; k >= 0; k-- {
		lambda := vals[k]
		if lambda < 0 {
			if raiseNeg && lambda < -tol*lambdaMax {
				return fmt.Errorf("mor: pod: gramian has negative eigenvalue %g", lambda)
			}
			continue
		}
		if lambda <= tol*lambdaMax {
			continue
		}
		mode := make([]float64, b.Dim)
		scale := 1 / math.Sqrt(lambda)
		for i := 0; i < m; i++ {
			floats.AddScaled(mode, scale*vecs.At(i, k), comps[i])
		}
		b.append(mode)
		added++
	}
	if added == 0 {
		return ErrExtensionStagnant
	}
	return nil
}
