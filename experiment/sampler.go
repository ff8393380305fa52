package experiment

import (
	"math/rand"

	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

// sampleTrainingSet draws the training parameters from the space according
// to the configured strategy.
func sampleTrainingSet(st *settings.Settings, space *mor.CubicParameterSpace, rng *rand.Rand) ([]mor.Parameter, error) {
	switch st.TrainingSet {
	case settings.SamplingRandom:
		return space.SampleRandomly(st.NumTrainingSamples, rng), nil
	}
	return nil, settings.NewConfigurationError("unknown 'pymor.training_set' sampling strategy given: %q", st.TrainingSet)
}

// selectTestSet resolves the test parameters. The only supported strategy
// reuses the full training set; num_test_samples only matters to strategies
// that draw a fresh sample.
func selectTestSet(st *settings.Settings, training []mor.Parameter) ([]mor.Parameter, error) {
	switch st.TestSet {
	case settings.TestSetTraining:
		return training, nil
	}
	return nil, settings.NewConfigurationError("unknown 'pymor.test_set' sampling strategy given: %q", st.TestSet)
}
