package mor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ReducedModel is the Galerkin projection of a StationaryModel onto a
// reduced basis. The projected components are dense and small; reduced
// solves run through a Cholesky factorization.
type ReducedModel struct {
	k      int
	ops    []*mat.Dense
	coeffs []CoefficientFunc
	rhs    *mat.VecDense

	// retained for the residual-based estimator; errProduct is nil when
	// the producing reductor assembles no estimator
	model      *StationaryModel
	basis      *Basis
	errProduct *Product
}

func (rm *ReducedModel) Size() int { return rm.k }

// Solve returns the reduced coordinates at mu. An empty basis yields a nil
// vector, standing for the zero solution.
func (rm *ReducedModel) Solve(mu Parameter) (*mat.VecDense, error) {
	if rm.k == 0 {
		return nil, nil
	}
	A := mat.NewSymDense(rm.k, nil)
	for q, op := range rm.ops {
		c := rm.coeffs[q](mu)
		for i := 0; i < rm.k; i++ {
			for j := i; j < rm.k; j++ {
				A.SetSym(i, j, A.At(i, j)+c*0.5*(op.At(i, j)+op.At(j, i)))
			}
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return nil, fmt.Errorf("mor: reduced system at mu = %s is not positive definite", mu)
	}
	u := mat.NewVecDense(rm.k, nil)
	if err := chol.SolveVecTo(u, rm.rhs); err != nil {
		return nil, fmt.Errorf("mor: reduced solve at mu = %s: %w", mu, err)
	}
	return u, nil
}

// Estimate bounds the full-order error of the reduced solution u at mu by
// the dual norm of the residual over the coercivity lower bound. Only
// available when the producing reductor assembled an estimator.
func (rm *ReducedModel) Estimate(mu Parameter, u *mat.VecDense) (float64, error) {
	if rm.errProduct == nil {
		return 0, fmt.Errorf("mor: reduced model assembles no estimator")
	}
	n := rm.model.Dim()

	// full-order residual f - A(mu) V u
	ur := NewReconstructor(rm.basis).Reconstruct(u)
	res := make([]float64, n)
	rm.model.ApplyOperator(mu, res, vecData(ur))
	rhs := vecData(rm.model.RHS)
	for i := range res {
		res[i] = rhs[i] - res[i]
	}

	// Riesz representative in the error product
	p := rm.errProduct
	z, err := CG(p.Apply, res,
		rm.model.Defaults.Float("cg_tol", 1e-12),
		rm.model.Defaults.Int("cg_maxiter", 10000))
	if err != nil {
		return 0, fmt.Errorf("mor: riesz solve for the estimator: %w", err)
	}
	dual := p.Norm(z)

	alpha := rm.model.CoercivityLowerBound(mu)
	if alpha <= 0 {
		return 0, fmt.Errorf("mor: coercivity lower bound %g at mu = %s is not positive", alpha, mu)
	}
	return dual / alpha, nil
}
