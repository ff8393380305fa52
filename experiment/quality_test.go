package experiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorbms/gomor/elliptic"
	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

func TestMaxTrackerRetainsFirstOccurrence(t *testing.T) {
	mus := []mor.Parameter{
		{Values: []float64{1}},
		{Values: []float64{2}},
		{Values: []float64{3}},
		{Values: []float64{4}},
	}
	tracker := newMaxTracker()
	for i, e := range []float64{0.3, 0.9, 0.2, 0.9} {
		tracker.observe(e, mus[i])
	}
	assert.Equal(t, 0.9, tracker.err)
	assert.Equal(t, mus[1], tracker.mu)
}

func TestMaxTrackerSentinelSurvivesEmptyScan(t *testing.T) {
	tracker := newMaxTracker()
	assert.Equal(t, -1.0, tracker.err)
	assert.True(t, tracker.mu.IsZero())
}

func testModel(t *testing.T) *mor.StationaryModel {
	t.Helper()
	p, err := elliptic.NewProvider(elliptic.ProblemSpec{
		Title: "quality test block", GridN: 4,
		XBlocks: 1, YBlocks: 1, XSubdomains: 1, YSubdomains: 1,
	}, nil)
	require.NoError(t, err)
	return p.GlobalDiscretization()
}

func emptyGreedyData(t *testing.T, model *mor.StationaryModel) *mor.GreedyData {
	t.Helper()
	rd, rc, err := mor.NewGenericRBReductor(model, mor.NewBasis(model.Dim())).Reduce()
	require.NoError(t, err)
	return &mor.GreedyData{Reduced: rd, Reconstructor: rc, Sizes: []int{0}}
}

func TestTestQualityEmptyTestSetKeepsSentinel(t *testing.T) {
	model := testModel(t)
	st := &settings.Settings{TestErrorNorm: "h1"}

	report, err := testQuality(st, nil, nil, model, emptyGreedyData(t, model), "training")
	require.NoError(t, err)
	assert.Contains(t, report, "number of samples:     0")
	assert.Contains(t, report, "maximal error:         -1")
	assert.Contains(t, report, "mu = n/a")
}

func TestTestQualityRejectsUnsupportedNorm(t *testing.T) {
	model := testModel(t)
	st := &settings.Settings{TestErrorNorm: "l2"}
	_, err := testQuality(st, nil, nil, model, emptyGreedyData(t, model), "training")
	assert.Error(t, err)
}

func TestTestQualityReportsWorstError(t *testing.T) {
	model := testModel(t)
	st := &settings.Settings{TestErrorNorm: "h1"}
	samples := []mor.Parameter{
		{Values: []float64{1}},
		{Values: []float64{0.2}},
	}

	// against an empty basis the reduction error is the full solution
	// norm, which grows as the diffusion shrinks
	report, err := testQuality(st, nil, samples, model, emptyGreedyData(t, model), "training")
	require.NoError(t, err)
	assert.Contains(t, report, "number of samples:     2")
	assert.Contains(t, report, "mu = [0.2000]")
	assert.True(t, strings.Contains(report, "training error estimation"))
}
