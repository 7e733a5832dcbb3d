package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/simextract/internal/sim"
)

type definition struct {
	dim      int
	defaults Params
	rhs      func(p Params, x sim.State, t float64) sim.State
}

var catalog = map[string]definition{
	// [theta, omega]
	"pendulum": {
		dim:      2,
		defaults: Params{"mass": 1, "length": 1, "damping": 0.1, "gravity": 9.81},
		rhs: func(p Params, x sim.State, _ float64) sim.State {
			m, l := p["mass"], p["length"]
			alpha := (-p["damping"]*x[1] - m*p["gravity"]*l*math.Sin(x[0])) / (m * l * l)
			return sim.State{x[1], alpha}
		},
	},
	// [pos, vel]
	"spring_mass": {
		dim:      2,
		defaults: Params{"mass": 1, "stiffness": 10, "damping": 0.5},
		rhs: func(p Params, x sim.State, _ float64) sim.State {
			force := -p["stiffness"]*x[0] - p["damping"]*x[1]
			return sim.State{x[1], force / p["mass"]}
		},
	},
	// [x, dx/dt]
	"vanderpol": {
		dim:      2,
		defaults: Params{"mu": 1},
		rhs: func(p Params, x sim.State, _ float64) sim.State {
			return sim.State{x[1], p["mu"]*(1-x[0]*x[0])*x[1] - x[0]}
		},
	},
	// [x, v], driven by gamma*cos(omega*t)
	"duffing": {
		dim:      2,
		defaults: Params{"alpha": -1, "beta": 1, "delta": 0.3, "gamma": 0.5, "omega": 1.2},
		rhs: func(p Params, x sim.State, t float64) sim.State {
			pos, vel := x[0], x[1]
			acc := -p["delta"]*vel - p["alpha"]*pos - p["beta"]*pos*pos*pos + p["gamma"]*math.Cos(p["omega"]*t)
			return sim.State{vel, acc}
		},
	},
}

// ByName returns the named model with its default coefficients.
func ByName(name string) (*Model, error) {
	def, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, Names())
	}
	m := &Model{name: name, dim: def.dim, rhs: def.rhs, params: make(Params, len(def.defaults))}
	for k, v := range def.defaults {
		m.params[k] = v
	}
	return m, nil
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
