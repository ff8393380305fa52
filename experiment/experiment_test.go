package experiment

import (
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorbms/gomor/elliptic"
	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

func writeExperimentFiles(t *testing.T, pymor string) string {
	t.Helper()
	dir := t.TempDir()
	problem := filepath.Join(dir, "problem.yaml")
	require.NoError(t, ioutil.WriteFile(problem, []byte(`
Title: "test thermal block"
GridN: 8
XBlocks: 2
YBlocks: 2
XSubdomains: 2
YSubdomains: 2
`), 0644))
	path := filepath.Join(dir, "settings.ini")
	content := "[pymor]\n" + pymor + "\n[problem]\nfile = " + problem + "\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunStandardRBEndToEnd(t *testing.T) {
	path := writeExperimentFiles(t, `framework = rb
num_training_samples = 5
max_rb_size = 10
target_error = 0.01
`)
	require.NoError(t, Run(path))
}

func TestRunLRBMSEndToEnd(t *testing.T) {
	path := writeExperimentFiles(t, `framework = lrbms
num_training_samples = 4
max_rb_size = 8
target_error = 0.01
`)
	require.NoError(t, Run(path))
}

func TestRunLRBMSRejectsEstimator(t *testing.T) {
	path := writeExperimentFiles(t, `framework = lrbms
num_training_samples = 3
use_estimator = True
`)
	err := Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented for the lrbms")
}

func TestRunFailsOnUnknownFramework(t *testing.T) {
	path := writeExperimentFiles(t, "framework = petrov\n")
	err := Run(path)
	var cerr *settings.ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func lrbmsFixture(t *testing.T) (*settings.Settings, *elliptic.MultiscaleModel, []mor.Parameter) {
	t.Helper()
	provider, err := elliptic.NewProvider(elliptic.ProblemSpec{
		Title: "lrbms fixture", GridN: 8,
		XBlocks: 2, YBlocks: 2, XSubdomains: 2, YSubdomains: 2,
	}, nil)
	require.NoError(t, err)

	ms := provider.MultiscaleDiscretization()
	space, err := mor.NewCubicParameterSpace(ms.ParameterType(), paramLow, paramHigh)
	require.NoError(t, err)
	ms = ms.WithParameterSpace(space)

	rng := rand.New(rand.NewSource(17))
	training := space.SampleRandomly(4, rng)
	st := &settings.Settings{
		Framework:                 settings.FrameworkLRBMS,
		ExtensionAlgorithm:        mor.ExtensionGramSchmidt,
		ExtensionAlgorithmProduct: "h1",
		GreedyErrorNorm:           "h1",
		MaxRBSize:                 8,
		TargetError:               0.01,
	}
	return st, ms, training
}

func TestRunLRBMSProducesPerSubdomainSizes(t *testing.T) {
	st, ms, training := lrbmsFixture(t)
	report, data, err := runLRBMS(st, nil, ms, training)
	require.NoError(t, err)

	assert.Len(t, data.Sizes, ms.NumSubdomains())
	for s, size := range data.Sizes {
		assert.GreaterOrEqual(t, size, 1, "subdomain %d never extended", s)
	}
	assert.Contains(t, report, "extension method:      gram_schmidt (h1)")
}

func TestRunLRBMSEstimatorFailsBeforeGreedy(t *testing.T) {
	st, ms, training := lrbmsFixture(t)
	st.UseEstimator = true
	_, data, err := runLRBMS(st, nil, ms, training)
	require.Error(t, err)
	assert.Nil(t, data)
}

func TestRunStandardRBRespectsBasisCap(t *testing.T) {
	provider, err := elliptic.NewProvider(elliptic.ProblemSpec{
		Title: "rb cap fixture", GridN: 8,
		XBlocks: 2, YBlocks: 2, XSubdomains: 2, YSubdomains: 2,
	}, nil)
	require.NoError(t, err)

	global := provider.GlobalDiscretization()
	space, err := mor.NewCubicParameterSpace(global.ParameterType(), paramLow, paramHigh)
	require.NoError(t, err)
	global = global.WithParameterSpace(space)

	rng := rand.New(rand.NewSource(23))
	training := space.SampleRandomly(6, rng)
	st := &settings.Settings{
		Framework:                 settings.FrameworkRB,
		ExtensionAlgorithm:        mor.ExtensionGramSchmidt,
		ExtensionAlgorithmProduct: "h1",
		GreedyErrorNorm:           "h1",
		ReductorErrorProduct:      "None",
		MaxRBSize:                 3,
		TargetError:               0,
	}
	report, data, err := runStandardRB(st, nil, global, training)
	require.NoError(t, err)
	require.Len(t, data.Sizes, 1)
	assert.LessOrEqual(t, data.Sizes[0], 3)
	assert.Contains(t, report, "prescribed basis size: 3")
}
