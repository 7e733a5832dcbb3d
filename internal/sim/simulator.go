package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{dyn: dyn, integrator: integrator}
}

// Run integrates from x0 with a fixed step and records every state,
// including the initial one. Times are i*dt rather than a running sum so
// that sample times do not drift.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		States: make([]State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	x := x0.Clone()
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, 0)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := float64(i) * cfg.Dt
		x = s.integrator.Step(s.dyn, x, t, cfg.Dt)
		if !x.IsValid() {
			return nil, &StepError{Step: i + 1, Time: t + cfg.Dt}
		}

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, float64(i+1)*cfg.Dt)
	}

	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("initial state has %d values, model expects %d", len(x0), s.dyn.StateDim())
	}
	return nil
}
