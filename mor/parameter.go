package mor

import (
	"fmt"
	"math/rand"
	"strings"
)

// ParameterType describes the single vector-valued component of a parameter.
type ParameterType struct {
	Name string
	Dim  int
}

func (pt ParameterType) String() string {
	return fmt.Sprintf("%s[%d]", pt.Name, pt.Dim)
}

// Parameter is one point of a parameter space.
type Parameter struct {
	Values []float64
}

// IsZero reports whether the parameter has never been assigned.
func (mu Parameter) IsZero() bool { return mu.Values == nil }

func (mu Parameter) String() string {
	if mu.Values == nil {
		return "n/a"
	}
	comps := make([]string, len(mu.Values))
	for i, v := range mu.Values {
		comps[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(comps, " ") + "]"
}

// CubicParameterSpace is the box [Low, High]^dim.
type CubicParameterSpace struct {
	Type ParameterType
	Low  float64
	High float64
}

func NewCubicParameterSpace(pt ParameterType, low, high float64) (*CubicParameterSpace, error) {
	if pt.Dim < 1 {
		return nil, fmt.Errorf("mor: parameter type %s has no components", pt)
	}
	if low >= high {
		return nil, fmt.Errorf("mor: empty parameter range [%g, %g]", low, high)
	}
	return &CubicParameterSpace{Type: pt, Low: low, High: high}, nil
}

// SampleRandomly draws n points uniformly from the box.
func (s *CubicParameterSpace) SampleRandomly(n int, rng *rand.Rand) []Parameter {
	samples := make([]Parameter, n)
	for i := range samples {
		vals := make([]float64, s.Type.Dim)
		for j := range vals {
			vals[j] = s.Low + rng.Float64()*(s.High-s.Low)
		}
		samples[i] = Parameter{Values: vals}
	}
	return samples
}

// Contains reports whether mu lies inside the box and matches the type.
func (s *CubicParameterSpace) Contains(mu Parameter) bool {
	if len(mu.Values) != s.Type.Dim {
		return false
	}
	for _, v := range mu.Values {
		if v < s.Low || v > s.High {
			return false
		}
	}
	return true
}
