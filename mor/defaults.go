package mor

// Defaults is the reduction library's defaults registry: tolerances,
// iteration caps and feature switches consumed by the solvers and basis
// extension algorithms. It is built once by the configuration resolver and
// threaded explicitly into every consumer; there is no process-global
// instance, so construction order carries no hazard.
//
// Keys follow the suffix convention of the settings file: *_tol and
// *_threshold are floats, *_maxiter are integers, the remaining recognized
// suffixes are booleans.
type Defaults struct {
	floats map[string]float64
	bools  map[string]bool
	ints   map[string]int
}

func NewDefaults() *Defaults {
	return &Defaults{
		floats: make(map[string]float64),
		bools:  make(map[string]bool),
		ints:   make(map[string]int),
	}
}

func (d *Defaults) SetFloat(key string, v float64) { d.floats[key] = v }
func (d *Defaults) SetBool(key string, v bool)     { d.bools[key] = v }
func (d *Defaults) SetInt(key string, v int)       { d.ints[key] = v }

// Float returns the registered value for key, or fallback when the key was
// never set. All getters tolerate a nil registry.
func (d *Defaults) Float(key string, fallback float64) float64 {
	if d == nil {
		return fallback
	}
	if v, ok := d.floats[key]; ok {
		return v
	}
	return fallback
}

func (d *Defaults) Bool(key string, fallback bool) bool {
	if d == nil {
		return fallback
	}
	if v, ok := d.bools[key]; ok {
		return v
	}
	return fallback
}

func (d *Defaults) Int(key string, fallback int) int {
	if d == nil {
		return fallback
	}
	if v, ok := d.ints[key]; ok {
		return v
	}
	return fallback
}
