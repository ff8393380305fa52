package mor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrExtensionStagnant is returned when a snapshot lies in the span of the
// current basis and extending would add nothing.
var ErrExtensionStagnant = errors.New("mor: snapshot already lies in the span of the basis")

// ExtensionMethod selects a basis extension algorithm.
type ExtensionMethod int

const (
	ExtensionGramSchmidt ExtensionMethod = iota
	ExtensionPOD
)

func (m ExtensionMethod) String() string {
	switch m {
	case ExtensionGramSchmidt:
		return "gram_schmidt"
	case ExtensionPOD:
		return "pod"
	}
	return fmt.Sprintf("ExtensionMethod(%d)", int(m))
}

// ExtensionConfig captures the bound arguments of a basis extension
// algorithm: the method, the inner product it orthogonalizes against, and
// the defaults registry its tolerances come from.
type ExtensionConfig struct {
	Method   ExtensionMethod
	Product  *Product
	Defaults *Defaults
}

func (cfg ExtensionConfig) extend(b *Basis, snapshot []float64) error {
	if len(snapshot) != b.Dim {
		return fmt.Errorf("mor: snapshot has %d entries, basis space has %d", len(snapshot), b.Dim)
	}
	switch cfg.Method {
	case ExtensionGramSchmidt:
		return gramSchmidtExtend(b, snapshot, cfg)
	case ExtensionPOD:
		return podExtend(b, [][]float64{snapshot}, cfg)
	}
	return fmt.Errorf("mor: unknown extension method %v", cfg.Method)
}

// Extender grows a reduced basis from full-order snapshots.
type Extender interface {
	Extend(snapshot *mat.VecDense) error
	// Sizes reports the basis size, one entry per block (a single entry
	// for a flat basis).
	Sizes() []int
}

// BasisExtender applies one ExtensionConfig to a flat basis.
type BasisExtender struct {
	basis *Basis
	cfg   ExtensionConfig
}

func NewBasisExtender(b *Basis, cfg ExtensionConfig) *BasisExtender {
	return &BasisExtender{basis: b, cfg: cfg}
}

func (e *BasisExtender) Extend(snapshot *mat.VecDense) error {
	return e.cfg.extend(e.basis, vecData(snapshot))
}

func (e *BasisExtender) Sizes() []int { return []int{e.basis.Size()} }
