// Package synthetic implements an extraction driver backed by the built-in
// ODE solver. The "model file" is a YAML study; its solutions are computed
// on first use and cached for the lifetime of the driver.
package synthetic

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/simextract/internal/extract"
	"github.com/san-kum/simextract/internal/integrators"
	"github.com/san-kum/simextract/internal/models"
	"github.com/san-kum/simextract/internal/sim"
)

type Driver struct {
	study  *Study
	probes map[string]Probe
	cache  map[int]*sim.Result
}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) LoadModel(_ context.Context, path string) error {
	study, err := LoadStudy(path)
	if err != nil {
		return err
	}
	for i := range study.Solutions {
		if _, err := modelFor(study, i); err != nil {
			return err
		}
	}
	if _, err := integrators.ByName(study.Integrator); err != nil {
		return err
	}

	d.study = study
	d.probes = nil
	d.cache = make(map[int]*sim.Result)
	return nil
}

func (d *Driver) ActivePlots(_ context.Context, group string) ([]extract.Plot, error) {
	if d.study == nil {
		return nil, fmt.Errorf("synthetic: no study loaded")
	}
	probes, ok := d.study.Groups[group]
	if !ok {
		return nil, fmt.Errorf("synthetic: unknown plot group %s (available: %v)", group, d.groupNames())
	}

	d.probes = make(map[string]Probe)
	plots := make([]extract.Plot, 0, len(probes))
	for _, p := range probes {
		if p.Disabled {
			continue
		}
		d.probes[p.Tag] = p
		plots = append(plots, extract.Plot{Tag: p.Tag, Solutions: len(d.study.Solutions)})
	}
	return plots, nil
}

func (d *Driver) FetchSamples(ctx context.Context, plot string, solution int) (extract.Series, error) {
	probe, ok := d.probes[plot]
	if !ok {
		return extract.Series{}, fmt.Errorf("synthetic: unknown plot %s", plot)
	}
	if solution < 0 || solution >= len(d.study.Solutions) {
		return extract.Series{}, fmt.Errorf("synthetic: solution %d out of range [0,%d)", solution, len(d.study.Solutions))
	}

	result, err := d.solve(ctx, solution)
	if err != nil {
		return extract.Series{}, err
	}

	scale := probe.Scale
	if scale == 0 {
		scale = 1
	}

	var series extract.Series
	for i := 0; i < len(result.States); i += d.study.Stride {
		state := result.States[i]
		if probe.State < 0 || probe.State >= len(state) {
			return extract.Series{}, fmt.Errorf("synthetic: plot %s probes state %d of %d", plot, probe.State, len(state))
		}
		series.Times = append(series.Times, result.Times[i])
		series.Values = append(series.Values, scale*state[probe.State])
	}
	return series, nil
}

func (d *Driver) solve(ctx context.Context, solution int) (*sim.Result, error) {
	if r, ok := d.cache[solution]; ok {
		return r, nil
	}

	dyn, err := modelFor(d.study, solution)
	if err != nil {
		return nil, err
	}
	sol := d.study.Solutions[solution]

	integ, err := integrators.ByName(d.study.Integrator)
	if err != nil {
		return nil, err
	}

	if len(sol.InitState) > dyn.StateDim() {
		return nil, fmt.Errorf("solution %d: init_state has %d values, model %s has %d",
			solution, len(sol.InitState), d.study.Model, dyn.StateDim())
	}
	x0 := make(sim.State, dyn.StateDim())
	copy(x0, sol.InitState)

	cfg := sim.Config{Dt: d.study.Dt, Duration: d.study.Duration}
	result, err := sim.New(dyn, integ).Run(ctx, x0, cfg)
	if err != nil {
		return nil, fmt.Errorf("solution %d: %w", solution, err)
	}
	d.cache[solution] = result
	return result, nil
}

// modelFor builds the model of one solution: catalog defaults, then the
// study overrides, then the solution's own.
func modelFor(study *Study, solution int) (*models.Model, error) {
	m, err := models.ByName(study.Model)
	if err != nil {
		return nil, err
	}
	if err := m.SetParams(study.Params); err != nil {
		return nil, err
	}
	if err := m.SetParams(study.Solutions[solution].Params); err != nil {
		return nil, fmt.Errorf("solution %d: %w", solution, err)
	}
	return m, nil
}

func (d *Driver) groupNames() []string {
	names := make([]string, 0, len(d.study.Groups))
	for name := range d.study.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
