package mor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BlockBasis holds one local basis per subdomain of a partitioned
// full-order space.
type BlockBasis struct {
	Blocks []*Basis
}

// NewBlockBasis returns empty per-subdomain bases with the given local
// dimensions.
func NewBlockBasis(localDims []int) *BlockBasis {
	blocks := make([]*Basis, len(localDims))
	for s, dim := range localDims {
		blocks[s] = NewBasis(dim)
	}
	return &BlockBasis{Blocks: blocks}
}

func (bb *BlockBasis) Sizes() []int {
	sizes := make([]int, len(bb.Blocks))
	for s, b := range bb.Blocks {
		sizes[s] = b.Size()
	}
	return sizes
}

func (bb *BlockBasis) TotalSize() int {
	total := 0
	for _, b := range bb.Blocks {
		total += b.Size()
	}
	return total
}

// Flatten embeds the local bases into the global space described by the
// partition: the column for local vector j of subdomain s carries that
// vector on partition[s] and zeros elsewhere.
func (bb *BlockBasis) Flatten(partition [][]int, dim int) *Basis {
	flat := NewBasis(dim)
	for s, b := range bb.Blocks {
		idx := partition[s]
		for _, col := range b.Cols {
			global := make([]float64, dim)
			for i, v := range col {
				global[idx[i]] = v
			}
			flat.append(global)
		}
	}
	return flat
}

// BlockBasisExtender extends each subdomain's basis independently with the
// restriction of the global snapshot, each subdomain bound to its own
// extension configuration (and thereby its own local product).
type BlockBasisExtender struct {
	basis     *BlockBasis
	partition [][]int
	cfgs      []ExtensionConfig
}

func NewBlockBasisExtender(bb *BlockBasis, partition [][]int, cfgs []ExtensionConfig) (*BlockBasisExtender, error) {
	if len(bb.Blocks) != len(partition) || len(cfgs) != len(partition) {
		return nil, fmt.Errorf("mor: block extender: %d blocks, %d partition cells, %d configs",
			len(bb.Blocks), len(partition), len(cfgs))
	}
	return &BlockBasisExtender{basis: bb, partition: partition, cfgs: cfgs}, nil
}

func (e *BlockBasisExtender) Sizes() []int { return e.basis.Sizes() }

func (e *BlockBasisExtender) Extend(snapshot *mat.VecDense) error {
	data := vecData(snapshot)
	stagnant := 0
	for s, b := range e.basis.Blocks {
		idx := e.partition[s]
		local := make([]float64, len(idx))
		for i, g := range idx {
			local[i] = data[g]
		}
		err := e.cfgs[s].extend(b, local)
		switch {
		case err == nil:
		case err == ErrExtensionStagnant:
			stagnant++
		default:
			return fmt.Errorf("mor: block extension on subdomain %d: %w", s, err)
		}
	}
	// progress on any subdomain counts as progress
	if stagnant == len(e.basis.Blocks) {
		return ErrExtensionStagnant
	}
	return nil
}

type blockReconstructor struct {
	basis     *BlockBasis
	partition [][]int
	dim       int
}

// NewBlockReconstructor scatters flattened per-subdomain reduced
// coordinates back into the global space.
func NewBlockReconstructor(bb *BlockBasis, partition [][]int, dim int) Reconstructor {
	return &blockReconstructor{basis: bb, partition: partition, dim: dim}
}

func (rc *blockReconstructor) Reconstruct(u *mat.VecDense) *mat.VecDense {
	out := make([]float64, rc.dim)
	if u != nil {
		off := 0
		for s, b := range rc.basis.Blocks {
			idx := rc.partition[s]
			for _, col := range b.Cols {
				c := u.AtVec(off)
				off++
				for i, v := range col {
					out[idx[i]] += c * v
				}
			}
		}
	}
	return mat.NewVecDense(len(out), out)
}
