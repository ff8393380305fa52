package elliptic

import (
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
)

// ProblemSpec describes the thermal-block problem, read from an optional
// YAML file referenced by the settings file.
type ProblemSpec struct {
	Title       string `yaml:"Title"`
	GridN       int    `yaml:"GridN"`       // cells per side of the unit square
	XBlocks     int    `yaml:"XBlocks"`     // thermal block layout
	YBlocks     int    `yaml:"YBlocks"`
	XSubdomains int    `yaml:"XSubdomains"` // multiscale partition layout
	YSubdomains int    `yaml:"YSubdomains"`
}

func DefaultProblemSpec() ProblemSpec {
	return ProblemSpec{
		Title:       "2x2 thermal block",
		GridN:       16,
		XBlocks:     2,
		YBlocks:     2,
		XSubdomains: 2,
		YSubdomains: 2,
	}
}

func (ps *ProblemSpec) Parse(data []byte) error {
	return yaml.Unmarshal(data, ps)
}

func (ps *ProblemSpec) Print() {
	fmt.Printf("\"%s\"\t= Title\n", ps.Title)
	fmt.Printf("[%d]\t\t= GridN\n", ps.GridN)
	fmt.Printf("[%dx%d]\t\t= thermal blocks\n", ps.XBlocks, ps.YBlocks)
	fmt.Printf("[%dx%d]\t\t= subdomains\n", ps.XSubdomains, ps.YSubdomains)
}

func (ps ProblemSpec) validate() error {
	if ps.GridN < 2 {
		return fmt.Errorf("elliptic: grid of %d cells has no interior nodes", ps.GridN)
	}
	if ps.XBlocks < 1 || ps.YBlocks < 1 {
		return fmt.Errorf("elliptic: thermal block layout %dx%d is empty", ps.XBlocks, ps.YBlocks)
	}
	if ps.XBlocks > ps.GridN || ps.YBlocks > ps.GridN {
		return fmt.Errorf("elliptic: %dx%d blocks do not fit a grid of %d cells", ps.XBlocks, ps.YBlocks, ps.GridN)
	}
	if ps.XSubdomains < 1 || ps.YSubdomains < 1 {
		return fmt.Errorf("elliptic: subdomain layout %dx%d is empty", ps.XSubdomains, ps.YSubdomains)
	}
	if ps.XSubdomains > ps.GridN-1 || ps.YSubdomains > ps.GridN-1 {
		return fmt.Errorf("elliptic: %dx%d subdomains need a grid of more than %d cells",
			ps.XSubdomains, ps.YSubdomains, ps.GridN)
	}
	return nil
}

// LoadProblemSpec reads a YAML problem description; an empty path yields
// the built-in default problem.
func LoadProblemSpec(path string) (ProblemSpec, error) {
	ps := DefaultProblemSpec()
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return ps, fmt.Errorf("elliptic: reading problem file: %w", err)
		}
		if err := ps.Parse(data); err != nil {
			return ps, fmt.Errorf("elliptic: parsing problem file %s: %w", path, err)
		}
	}
	if err := ps.validate(); err != nil {
		return ps, err
	}
	return ps, nil
}
