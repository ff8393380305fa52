// Package settings resolves the INI experiment settings file: documented
// defaults for every [pymor] option, load-time validation of the enumerated
// values, and suffix-typed application of the optional [pymor.defaults]
// section onto the reduction library's defaults registry.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/gorbms/gomor/mor"
)

// ConfigurationError reports an unreadable settings file, a missing [pymor]
// section, or an unrecognized enumerated option value.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{msg: "settings: " + fmt.Sprintf(format, args...)}
}

type Framework int

const (
	FrameworkRB Framework = iota
	FrameworkLRBMS
)

func (f Framework) String() string {
	if f == FrameworkLRBMS {
		return "lrbms"
	}
	return "rb"
}

type ReductorKind int

const (
	ReductorGeneric ReductorKind = iota
	ReductorStationaryAffineLinear
)

func (r ReductorKind) String() string {
	if r == ReductorStationaryAffineLinear {
		return "stationary_affine_linear"
	}
	return "generic"
}

type SamplingStrategy int

const (
	SamplingRandom SamplingStrategy = iota
)

func (s SamplingStrategy) String() string { return "random" }

type TestSetStrategy int

const (
	TestSetTraining TestSetStrategy = iota
)

func (s TestSetStrategy) String() string { return "training" }

// enumerated option values resolve through these tables, so every
// unrecognized value fails at load time, before any discretization or
// greedy run is built
var (
	frameworks = map[string]Framework{
		"rb":    FrameworkRB,
		"lrbms": FrameworkLRBMS,
	}
	reductors = map[string]ReductorKind{
		"generic":                  ReductorGeneric,
		"stationary_affine_linear": ReductorStationaryAffineLinear,
	}
	extensionAlgorithms = map[string]mor.ExtensionMethod{
		"gram_schmidt": mor.ExtensionGramSchmidt,
		"pod":          mor.ExtensionPOD,
	}
	samplingStrategies = map[string]SamplingStrategy{
		"random": SamplingRandom,
	}
	testSetStrategies = map[string]TestSetStrategy{
		"training": TestSetTraining,
	}
)

// suffix tables classifying [pymor.defaults] keys; keys matching none are
// silently ignored
var (
	floatSuffixes = []string{"_tol", "_threshold"}
	boolSuffixes  = []string{"_find_duplicates", "_check", "_symmetrize",
		"_orthonormalize", "_raise_negative", "compact_print"}
	intSuffixes = []string{"_maxiter"}
)

// Settings is the resolved experiment configuration.
type Settings struct {
	Framework                 Framework
	NumTrainingSamples        int
	TrainingSet               SamplingStrategy
	Reductor                  ReductorKind
	ReductorErrorProduct      string
	ExtensionAlgorithm        mor.ExtensionMethod
	ExtensionAlgorithmProduct string
	GreedyErrorNorm           string
	UseEstimator              bool
	MaxRBSize                 int
	TargetError               float64
	NumTestSamples            int
	TestSet                   TestSetStrategy
	TestErrorNorm             string

	// ProblemFile points at the YAML problem description; empty means the
	// built-in default problem.
	ProblemFile string
}

// Resolve loads the settings file and builds the defaults registry from its
// [pymor.defaults] section. The registry is returned instead of applied to
// any global state; callers thread it into discretization construction.
func Resolve(path string) (*Settings, *mor.Defaults, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, nil, NewConfigurationError("SETTINGSFILE %s cannot be read: %v", path, err)
	}
	sec, err := cfg.GetSection("pymor")
	if err != nil {
		return nil, nil, NewConfigurationError("SETTINGSFILE %s lacks a [pymor] section", path)
	}

	get := func(key, fallback string) string {
		if sec.HasKey(key) {
			return sec.Key(key).String()
		}
		return fallback
	}

	st := &Settings{
		ReductorErrorProduct:      get("reductor_error_product", "None"),
		ExtensionAlgorithmProduct: get("extension_algorithm_product", "h1"),
		GreedyErrorNorm:           get("greedy_error_norm", "h1"),
		TestErrorNorm:             get("test_error_norm", "h1"),
	}

	var ok bool
	if st.Framework, ok = frameworks[get("framework", "rb")]; !ok {
		return nil, nil, NewConfigurationError("unknown 'pymor.framework' given: %q", get("framework", ""))
	}
	if st.TrainingSet, ok = samplingStrategies[get("training_set", "random")]; !ok {
		return nil, nil, NewConfigurationError("unknown 'pymor.training_set' sampling strategy given: %q", get("training_set", ""))
	}
	if st.Reductor, ok = reductors[get("reductor", "generic")]; !ok {
		return nil, nil, NewConfigurationError("unknown 'pymor.reductor' given: %q", get("reductor", ""))
	}
	if st.ExtensionAlgorithm, ok = extensionAlgorithms[get("extension_algorithm", "gram_schmidt")]; !ok {
		return nil, nil, NewConfigurationError("unknown 'pymor.extension_algorithm' given: %q", get("extension_algorithm", ""))
	}
	if st.TestSet, ok = testSetStrategies[get("test_set", "training")]; !ok {
		return nil, nil, NewConfigurationError("unknown 'pymor.test_set' sampling strategy given: %q", get("test_set", ""))
	}

	if st.NumTrainingSamples, err = strconv.Atoi(get("num_training_samples", "100")); err != nil {
		return nil, nil, NewConfigurationError("'pymor.num_training_samples' is not an integer: %v", err)
	}
	if st.UseEstimator, err = strconv.ParseBool(get("use_estimator", "False")); err != nil {
		return nil, nil, NewConfigurationError("'pymor.use_estimator' is not a boolean: %v", err)
	}
	if st.MaxRBSize, err = strconv.Atoi(get("max_rb_size", "100")); err != nil {
		return nil, nil, NewConfigurationError("'pymor.max_rb_size' is not an integer: %v", err)
	}
	if st.TargetError, err = strconv.ParseFloat(get("target_error", "0.01"), 64); err != nil {
		return nil, nil, NewConfigurationError("'pymor.target_error' is not a float: %v", err)
	}
	if st.NumTestSamples, err = strconv.Atoi(get("num_test_samples", "100")); err != nil {
		return nil, nil, NewConfigurationError("'pymor.num_test_samples' is not an integer: %v", err)
	}

	if psec, err := cfg.GetSection("problem"); err == nil && psec.HasKey("file") {
		st.ProblemFile = psec.Key("file").String()
	}

	defaults, err := resolveDefaults(cfg)
	if err != nil {
		return nil, nil, err
	}
	return st, defaults, nil
}

func resolveDefaults(cfg *ini.File) (*mor.Defaults, error) {
	defaults := mor.NewDefaults()
	sec, err := cfg.GetSection("pymor.defaults")
	if err != nil {
		return defaults, nil
	}
	for _, key := range sec.Keys() {
		name, raw := key.Name(), key.String()
		switch {
		case hasAnySuffix(name, floatSuffixes):
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, NewConfigurationError("'pymor.defaults.%s' is not a float: %v", name, err)
			}
			defaults.SetFloat(name, v)
		case hasAnySuffix(name, boolSuffixes):
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, NewConfigurationError("'pymor.defaults.%s' is not a boolean: %v", name, err)
			}
			defaults.SetBool(name, v)
		case hasAnySuffix(name, intSuffixes):
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, NewConfigurationError("'pymor.defaults.%s' is not an integer: %v", name, err)
			}
			defaults.SetInt(name, v)
		}
	}
	return defaults, nil
}

func hasAnySuffix(key string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(key, s) {
			return true
		}
	}
	return false
}
