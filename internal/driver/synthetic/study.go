package synthetic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/simextract/internal/models"
)

// Study describes a parameter sweep solved offline. Each entry of Solutions
// is one solution; each group holds the probes that play the role of plot
// features. Params override the model's default coefficients for every
// solution, and a solution's own Params are applied on top.
type Study struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Stride     int                `yaml:"stride"`
	Params     models.Params      `yaml:"params"`
	Solutions  []Solution         `yaml:"solutions"`
	Groups     map[string][]Probe `yaml:"groups"`
}

type Solution struct {
	InitState []float64     `yaml:"init_state"`
	Params    models.Params `yaml:"params"`
}

// Probe samples one state component, scaled.
type Probe struct {
	Tag      string  `yaml:"tag"`
	State    int     `yaml:"state"`
	Scale    float64 `yaml:"scale"`
	Disabled bool    `yaml:"disabled"`
}

func defaultStudy() *Study {
	return &Study{
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   10.0,
		Stride:     1,
	}
}

// LoadStudy reads a study file.
func LoadStudy(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	study := defaultStudy()
	if err := yaml.Unmarshal(data, study); err != nil {
		return nil, err
	}
	if err := study.validate(); err != nil {
		return nil, fmt.Errorf("study %s: %w", path, err)
	}
	return study, nil
}

func (s *Study) validate() error {
	if s.Model == "" {
		return fmt.Errorf("no model")
	}
	if s.Stride <= 0 {
		return fmt.Errorf("stride must be positive, got %d", s.Stride)
	}
	if len(s.Solutions) == 0 {
		return fmt.Errorf("no solutions")
	}
	for name, probes := range s.Groups {
		seen := make(map[string]bool, len(probes))
		for _, p := range probes {
			if p.Tag == "" {
				return fmt.Errorf("group %s: probe without tag", name)
			}
			if seen[p.Tag] {
				return fmt.Errorf("group %s: duplicate probe %s", name, p.Tag)
			}
			seen[p.Tag] = true
		}
	}
	return nil
}
