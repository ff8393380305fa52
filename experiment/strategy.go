package experiment

import (
	"fmt"

	"github.com/gorbms/gomor/elliptic"
	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

// runStandardRB trains a single global reduced basis on the detailed
// discretization and reports on the run.
func runStandardRB(st *settings.Settings, defs *mor.Defaults, model *mor.StationaryModel,
	training []mor.Parameter) (string, *mor.GreedyData, error) {

	// the reductor option only selects which additional validation
	// applies; the greedy run itself is always driven by the generic
	// Galerkin reductor
	switch st.Reductor {
	case settings.ReductorGeneric:
	case settings.ReductorStationaryAffineLinear:
		if st.ReductorErrorProduct != "None" {
			return "", nil, fmt.Errorf("experiment: 'pymor.reductor_error_product' is restricted to \"None\", got %q",
				st.ReductorErrorProduct)
		}
	}

	if st.ExtensionAlgorithmProduct != "h1" {
		return "", nil, fmt.Errorf("experiment: 'pymor.extension_algorithm_product' is restricted to \"h1\", got %q",
			st.ExtensionAlgorithmProduct)
	}
	if st.GreedyErrorNorm != "h1" {
		return "", nil, fmt.Errorf("experiment: 'pymor.greedy_error_norm' is restricted to \"h1\", got %q",
			st.GreedyErrorNorm)
	}

	basis := mor.NewBasis(model.Dim())
	ext := mor.NewBasisExtender(basis, mor.ExtensionConfig{
		Method:   st.ExtensionAlgorithm,
		Product:  model.H1Product(),
		Defaults: defs,
	})
	reductor := mor.NewGenericRBReductor(model, basis)

	data, err := mor.Greedy(model, reductor, training, ext, mor.GreedyOptions{
		UseEstimator:  st.UseEstimator,
		ErrorNorm:     model.H1Norm(),
		MaxExtensions: st.MaxRBSize,
		TargetError:   st.TargetError,
	})
	if err != nil {
		return "", nil, err
	}
	return formatGreedyReport(st, data), data, nil
}

// runLRBMS trains one local basis per subdomain of the multiscale
// discretization. The estimator path is not implemented for this strategy.
func runLRBMS(st *settings.Settings, defs *mor.Defaults, model *elliptic.MultiscaleModel,
	training []mor.Parameter) (string, *mor.GreedyData, error) {

	if st.ExtensionAlgorithmProduct != "h1" {
		return "", nil, fmt.Errorf("experiment: 'pymor.extension_algorithm_product' is restricted to \"h1\", got %q",
			st.ExtensionAlgorithmProduct)
	}
	if st.GreedyErrorNorm != "h1" {
		return "", nil, fmt.Errorf("experiment: 'pymor.greedy_error_norm' is restricted to \"h1\", got %q",
			st.GreedyErrorNorm)
	}
	if st.UseEstimator {
		return "", nil, fmt.Errorf("experiment: 'pymor.use_estimator' is not implemented for the lrbms framework")
	}

	ns := model.NumSubdomains()
	cfgs := make([]mor.ExtensionConfig, ns)
	for s := 0; s < ns; s++ {
		product, err := model.LocalProduct(s, st.ExtensionAlgorithmProduct)
		if err != nil {
			return "", nil, err
		}
		cfgs[s] = mor.ExtensionConfig{
			Method:   st.ExtensionAlgorithm,
			Product:  product,
			Defaults: defs,
		}
	}

	blocks := mor.NewBlockBasis(model.LocalDims())
	ext, err := mor.NewBlockBasisExtender(blocks, model.Partition(), cfgs)
	if err != nil {
		return "", nil, err
	}
	reductor := mor.NewBlockRBReductor(model.StationaryModel, blocks, model.Partition())

	data, err := mor.Greedy(model, reductor, training, ext, mor.GreedyOptions{
		UseEstimator:  false,
		ErrorNorm:     model.H1Norm(),
		MaxExtensions: st.MaxRBSize,
		TargetError:   st.TargetError,
	})
	if err != nil {
		return "", nil, err
	}
	return formatGreedyReport(st, data), data, nil
}
