// Package models holds the ODE systems a synthetic study can solve. A model
// is a right-hand side plus named coefficients; a study overrides the
// defaults before solving.
package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/simextract/internal/sim"
)

var ErrUnknownParam = errors.New("models: unknown parameter")

// Params maps coefficient names to values.
type Params map[string]float64

type Model struct {
	name   string
	dim    int
	params Params
	rhs    func(p Params, x sim.State, t float64) sim.State
}

func (m *Model) Name() string  { return m.name }
func (m *Model) StateDim() int { return m.dim }

func (m *Model) Derivative(x sim.State, t float64) sim.State {
	return m.rhs(m.params, x, t)
}

// Params returns a copy of the current coefficients.
func (m *Model) Params() Params {
	p := make(Params, len(m.params))
	for k, v := range m.params {
		p[k] = v
	}
	return p
}

func (m *Model) SetParam(name string, value float64) error {
	if _, ok := m.params[name]; !ok {
		return fmt.Errorf("%w: %s has no %q (has %v)", ErrUnknownParam, m.name, name, m.paramNames())
	}
	m.params[name] = value
	return nil
}

// SetParams applies every override or none of them.
func (m *Model) SetParams(p Params) error {
	for name := range p {
		if _, ok := m.params[name]; !ok {
			return fmt.Errorf("%w: %s has no %q (has %v)", ErrUnknownParam, m.name, name, m.paramNames())
		}
	}
	for name, value := range p {
		m.params[name] = value
	}
	return nil
}

func (m *Model) paramNames() []string {
	names := make([]string, 0, len(m.params))
	for name := range m.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
