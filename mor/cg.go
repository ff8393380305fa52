package mor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Matvec computes dst = A*src for a fixed square operator.
type Matvec func(dst, src []float64)

// CG solves A x = b by conjugate gradients for a symmetric positive
// definite operator given through its matvec. Convergence is declared when
// the residual 2-norm drops below tol times the norm of b.
func CG(mv Matvec, b []float64, tol float64, maxiter int) ([]float64, error) {
	n := len(b)
	x := make([]float64, n)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return x, nil
	}

	r := make([]float64, n)
	copy(r, b)
	p := make([]float64, n)
	copy(p, r)
	ap := make([]float64, n)

	rsold := floats.Dot(r, r)
	for iter := 0; iter < maxiter; iter++ {
		for i := range ap {
			ap[i] = 0
		}
		mv(ap, p)
		pap := floats.Dot(p, ap)
		if pap <= 0 {
			return nil, fmt.Errorf("mor: cg: operator not positive definite (p'Ap = %g)", pap)
		}
		alpha := rsold / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)
		rsnew := floats.Dot(r, r)
		if math.Sqrt(rsnew) <= tol*bnorm {
			return x, nil
		}
		beta := rsnew / rsold
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rsold = rsnew
	}
	return nil, fmt.Errorf("mor: cg failed to converge within %d iterations (residual %g)",
		maxiter, math.Sqrt(rsold)/bnorm)
}
