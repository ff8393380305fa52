package mor

import (
	"gonum.org/v1/gonum/mat"
)

// Reductor projects the full-order model onto the current reduced basis.
// It is re-invoked by the greedy loop after every extension.
type Reductor interface {
	Reduce() (*ReducedModel, Reconstructor, error)
}

// GenericRBReductor is the plain Galerkin projection. The reduced model it
// produces assembles no error estimator.
type GenericRBReductor struct {
	model *StationaryModel
	basis *Basis
}

func NewGenericRBReductor(m *StationaryModel, b *Basis) *GenericRBReductor {
	return &GenericRBReductor{model: m, basis: b}
}

func (r *GenericRBReductor) Reduce() (*ReducedModel, Reconstructor, error) {
	return reduceGalerkin(r.model, r.basis, nil)
}

// StationaryAffineLinearReductor additionally equips the reduced model with
// a residual-based error estimator in the given error product. A nil error
// product means the model's own h1 product.
type StationaryAffineLinearReductor struct {
	model        *StationaryModel
	basis        *Basis
	errorProduct *Product
}

func NewStationaryAffineLinearReductor(m *StationaryModel, b *Basis, errorProduct *Product) *StationaryAffineLinearReductor {
	return &StationaryAffineLinearReductor{model: m, basis: b, errorProduct: errorProduct}
}

func (r *StationaryAffineLinearReductor) Reduce() (*ReducedModel, Reconstructor, error) {
	p := r.errorProduct
	if p == nil {
		p = r.model.H1Product()
	}
	return reduceGalerkin(r.model, r.basis, p)
}

// BlockRBReductor projects a partitioned model onto the flattening of a
// block basis; reconstruction scatters per-subdomain coordinates.
type BlockRBReductor struct {
	model     *StationaryModel
	basis     *BlockBasis
	partition [][]int
}

func NewBlockRBReductor(m *StationaryModel, bb *BlockBasis, partition [][]int) *BlockRBReductor {
	return &BlockRBReductor{model: m, basis: bb, partition: partition}
}

func (r *BlockRBReductor) Reduce() (*ReducedModel, Reconstructor, error) {
	flat := r.basis.Flatten(r.partition, r.model.Dim())
	rm, _, err := reduceGalerkin(r.model, flat, nil)
	if err != nil {
		return nil, nil, err
	}
	snap := &BlockBasis{Blocks: make([]*Basis, len(r.basis.Blocks))}
	for s, b := range r.basis.Blocks {
		snap.Blocks[s] = &Basis{Dim: b.Dim, Cols: append([][]float64(nil), b.Cols...)}
	}
	return rm, NewBlockReconstructor(snap, r.partition, r.model.Dim()), nil
}

func reduceGalerkin(m *StationaryModel, basis *Basis, errProduct *Product) (*ReducedModel, Reconstructor, error) {
	// freeze the column list so later extensions cannot skew an already
	// issued reduction
	frozen := &Basis{Dim: basis.Dim, Cols: append([][]float64(nil), basis.Cols...)}
	k := frozen.Size()
	rm := &ReducedModel{
		k:          k,
		coeffs:     m.Coeffs,
		model:      m,
		basis:      frozen,
		errProduct: errProduct,
	}
	if k > 0 {
		V := frozen.Dense()
		n := frozen.Dim
		rm.ops = make([]*mat.Dense, len(m.Ops))
		for q, op := range m.Ops {
			AV := mat.NewDense(n, k, nil)
			for j, col := range frozen.Cols {
				av := make([]float64, n)
				op.DoNonZero(func(i, jj int, v float64) {
					av[i] += v * col[jj]
				})
				AV.SetCol(j, av)
			}
			red := mat.NewDense(k, k, nil)
			red.Mul(V.T(), AV)
			rm.ops[q] = red
		}
		rhs := mat.NewVecDense(k, nil)
		rhs.MulVec(V.T(), m.RHS)
		rm.rhs = rhs
	}
	return rm, NewReconstructor(frozen), nil
}
