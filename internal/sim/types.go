package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState indicates a state containing NaN or Inf.
var ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Dynamics is the right-hand side of an autonomous or time-forced ODE.
type Dynamics interface {
	Derivative(x State, t float64) State
	StateDim() int
}

// Integrator advances x by one step of size dt.
type Integrator interface {
	Step(dyn Dynamics, x State, t, dt float64) State
}

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	States []State
	Times  []float64
}

// StepError reports the step at which a run diverged.
type StepError struct {
	Step int
	Time float64
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, ErrInvalidState)
}

func (e *StepError) Unwrap() error {
	return ErrInvalidState
}
