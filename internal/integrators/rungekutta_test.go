package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/simextract/internal/sim"
)

// oscillator is x'' = -x, exact solution (cos t, -sin t) from (1, 0).
type oscillator struct{ calls int }

func (o *oscillator) Derivative(x sim.State, _ float64) sim.State {
	o.calls++
	return sim.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

// forced is x' = cos t, exact solution sin t from 0.
type forced struct{}

func (forced) Derivative(_ sim.State, t float64) sim.State { return sim.State{math.Cos(t)} }
func (forced) StateDim() int                                { return 1 }

func integrate(t *testing.T, name string, dyn sim.Dynamics, x sim.State, dt, until float64) sim.State {
	t.Helper()
	integ, err := ByName(name)
	if err != nil {
		t.Fatal(err)
	}
	steps := int(until/dt + 0.5)
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}
	return x
}

func oscillatorError(t *testing.T, name string, dt float64) float64 {
	x := integrate(t, name, &oscillator{}, sim.State{1, 0}, dt, 1)
	return math.Abs(x[0]-math.Cos(1)) + math.Abs(x[1]+math.Sin(1))
}

func TestIntegratorsTrackOscillator(t *testing.T) {
	tolerances := map[string]float64{
		"euler":    0.05,
		"midpoint": 1e-3,
		"rk4":      1e-8,
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			if e := oscillatorError(t, name, 0.01); e > tolerances[name] {
				t.Errorf("error %g exceeds %g", e, tolerances[name])
			}
		})
	}
}

func TestConvergenceOrder(t *testing.T) {
	orders := map[string]float64{"euler": 1, "midpoint": 2, "rk4": 4}

	for name, want := range orders {
		t.Run(name, func(t *testing.T) {
			coarse := oscillatorError(t, name, 0.02)
			fine := oscillatorError(t, name, 0.01)
			if got := math.Log2(coarse / fine); math.Abs(got-want) > 0.35 {
				t.Errorf("observed order %.2f, want %.0f", got, want)
			}
		})
	}
}

func TestStageTimes(t *testing.T) {
	tolerances := map[string]float64{"euler": 5e-3, "midpoint": 1e-4, "rk4": 1e-9}

	for name, tol := range tolerances {
		t.Run(name, func(t *testing.T) {
			x := integrate(t, name, forced{}, sim.State{0}, 0.01, 1)
			if got, want := x[0], math.Sin(1); math.Abs(got-want) > tol {
				t.Errorf("x(1) = %.9f, want %.9f", got, want)
			}
		})
	}
}

func TestStagesPerStep(t *testing.T) {
	for name, stages := range map[string]int{"euler": 1, "midpoint": 2, "rk4": 4} {
		dyn := &oscillator{}
		integrate(t, name, dyn, sim.State{1, 0}, 0.1, 1)
		if dyn.calls != 10*stages {
			t.Errorf("%s: %d derivative calls over 10 steps, want %d", name, dyn.calls, 10*stages)
		}
	}
}

func TestStepDoesNotAliasInput(t *testing.T) {
	integ := New(RK4Tableau)
	x := sim.State{1, 0}
	next := integ.Step(&oscillator{}, x, 0, 0.1)
	if x[0] != 1 || x[1] != 0 {
		t.Errorf("input modified: %v", x)
	}
	if &next[0] == &x[0] {
		t.Error("result aliases input")
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
