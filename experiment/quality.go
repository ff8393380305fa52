package experiment

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

// detailedModel is the full-order side the quality test solves against.
type detailedModel interface {
	Solve(mu mor.Parameter) (*mat.VecDense, error)
	H1Norm() mor.Norm
}

// maxTracker keeps the running maximum error and the first parameter that
// attained it. The sentinel start value assumes real errors are
// non-negative; a NaN error never displaces the current maximum.
type maxTracker struct {
	err float64
	mu  mor.Parameter
}

func newMaxTracker() *maxTracker { return &maxTracker{err: -1} }

func (t *maxTracker) observe(err float64, mu mor.Parameter) {
	if err > t.err {
		t.err = err
		t.mu = mu
	}
}

// testQuality solves every test point with both the detailed and the
// reduced model and reports the worst reconstruction error in the h1 norm.
func testQuality(st *settings.Settings, defs *mor.Defaults, testSamples []mor.Parameter,
	detailed detailedModel, data *mor.GreedyData, strategy string) (string, error) {

	if st.TestErrorNorm != "h1" {
		return "", fmt.Errorf("experiment: 'pymor.test_error_norm' is restricted to \"h1\", got %q",
			st.TestErrorNorm)
	}
	norm := detailed.H1Norm()

	if len(testSamples) == 0 {
		fmt.Println("warning: empty test set, the reported maximal error is the scan sentinel")
	}

	tracker := newMaxTracker()
	tic := time.Now()
	for _, mu := range testSamples {
		U, err := detailed.Solve(mu)
		if err != nil {
			return "", err
		}
		u, err := data.Reduced.Solve(mu)
		if err != nil {
			return "", err
		}
		diff := data.Reconstructor.Reconstruct(u)
		diff.SubVec(U, diff)
		tracker.observe(norm(diff), mu)
	}
	elapsed := time.Since(tic)

	return formatQualityReport(defs, strategy, len(testSamples), tracker, elapsed), nil
}
