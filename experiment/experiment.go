// Package experiment drives one greedy reduced-basis experiment:
// configuration resolution, discretization construction, training-set
// sampling, strategy selection, greedy training, and a quality test over a
// test sample set. Every stage runs sequentially and any failure aborts the
// run.
package experiment

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gorbms/gomor/elliptic"
	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

// parameter range of the thermal-block experiment
const (
	paramLow  = 0.1
	paramHigh = 10.0
)

// Run executes the experiment described by the settings file.
func Run(settingsPath string) error {
	st, defs, err := settings.Resolve(settingsPath)
	if err != nil {
		return err
	}

	spec, err := elliptic.LoadProblemSpec(st.ProblemFile)
	if err != nil {
		return err
	}
	spec.Print()

	fmt.Println("initializing thermal block discretizations...")
	provider, err := elliptic.NewProvider(spec, defs)
	if err != nil {
		return err
	}

	global := provider.GlobalDiscretization()
	space, err := mor.NewCubicParameterSpace(global.ParameterType(), paramLow, paramHigh)
	if err != nil {
		return err
	}
	global = global.WithParameterSpace(space)
	fmt.Printf("the parameter type is %s\n", global.ParameterType())
	multiscale := provider.MultiscaleDiscretization().WithParameterSpace(space)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	training, err := sampleTrainingSet(st, global.Space, rng)
	if err != nil {
		return err
	}

	var (
		reductionReport string
		data            *mor.GreedyData
		detailed        detailedModel
	)
	switch st.Framework {
	case settings.FrameworkRB:
		fmt.Println("running standard rb for the global cg discretization:")
		detailed = global
		reductionReport, data, err = runStandardRB(st, defs, global, training)
	case settings.FrameworkLRBMS:
		fmt.Printf("running lrbms with %d subdomains:\n", multiscale.NumSubdomains())
		detailed = multiscale
		reductionReport, data, err = runLRBMS(st, defs, multiscale, training)
	}
	if err != nil {
		return err
	}

	testSamples, err := selectTestSet(st, training)
	if err != nil {
		return err
	}
	testReport, err := testQuality(st, defs, testSamples, detailed, data, st.TestSet.String())
	if err != nil {
		return err
	}

	fmt.Print(reductionReport)
	fmt.Print(testReport)
	return nil
}
