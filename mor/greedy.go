package mor

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// FullModel is the full-order side the greedy loop drives.
type FullModel interface {
	Solve(mu Parameter) (*mat.VecDense, error)
}

type GreedyOptions struct {
	// UseEstimator switches the training-error measure from the true
	// reconstruction error to the reduced model's estimator.
	UseEstimator  bool
	ErrorNorm     Norm
	MaxExtensions int
	TargetError   float64
}

// GreedyData is the result of one greedy run.
type GreedyData struct {
	Reduced       *ReducedModel
	Reconstructor Reconstructor
	// Sizes has one entry per basis block; a single entry for a flat
	// basis.
	Sizes []int
	// MaxErrs records the worst training error seen before each
	// extension, plus the final one.
	MaxErrs    []float64
	Extensions int
	Time       time.Duration
}

// Greedy runs the weak greedy basis generation loop: reduce with the
// current basis, scan the training set for the worst (estimated or true)
// error, and extend the basis with the full-order solution at that point.
// It stops when the worst error reaches opts.TargetError, when
// opts.MaxExtensions extensions have been made, or when an extension
// stagnates.
func Greedy(model FullModel, reductor Reductor, training []Parameter, ext Extender, opts GreedyOptions) (*GreedyData, error) {
	start := time.Now()
	data := &GreedyData{}
	for {
		rd, rc, err := reductor.Reduce()
		if err != nil {
			return nil, fmt.Errorf("mor: greedy: reduction failed: %w", err)
		}
		data.Reduced, data.Reconstructor = rd, rc

		maxErr := -1.0
		var maxMu Parameter
		for _, mu := range training {
			e, err := trainingError(model, rd, rc, mu, opts)
			if err != nil {
				return nil, err
			}
			if e > maxErr {
				maxErr = e
				maxMu = mu
			}
		}
		data.MaxErrs = append(data.MaxErrs, maxErr)
		fmt.Printf("greedy: basis sizes %v, max err %.6e\n", ext.Sizes(), maxErr)

		if maxMu.IsZero() || maxErr <= opts.TargetError {
			break
		}
		if data.Extensions >= opts.MaxExtensions {
			fmt.Printf("greedy: maximum number of %d extensions reached\n", opts.MaxExtensions)
			break
		}

		snapshot, err := model.Solve(maxMu)
		if err != nil {
			return nil, fmt.Errorf("mor: greedy: snapshot at mu = %s: %w", maxMu, err)
		}
		if err := ext.Extend(snapshot); err != nil {
			if errors.Is(err, ErrExtensionStagnant) {
				fmt.Println("greedy: extension stagnated, stopping")
				break
			}
			return nil, fmt.Errorf("mor: greedy: extension failed: %w", err)
		}
		data.Extensions++
	}
	data.Sizes = ext.Sizes()
	data.Time = time.Since(start)
	return data, nil
}

func trainingError(model FullModel, rd *ReducedModel, rc Reconstructor, mu Parameter, opts GreedyOptions) (float64, error) {
	u, err := rd.Solve(mu)
	if err != nil {
		return 0, err
	}
	if opts.UseEstimator {
		return rd.Estimate(mu, u)
	}
	U, err := model.Solve(mu)
	if err != nil {
		return 0, err
	}
	diff := rc.Reconstruct(u)
	diff.SubVec(U, diff)
	return opts.ErrorNorm(diff), nil
}
