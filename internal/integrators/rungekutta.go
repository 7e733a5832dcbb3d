package integrators

import "github.com/san-kum/simextract/internal/sim"

// Tableau is the Butcher tableau of an explicit Runge-Kutta method: A is
// strictly lower triangular, B holds the output weights and C the stage
// time offsets as fractions of dt.
type Tableau struct {
	A    [][]float64
	B, C []float64
}

var (
	EulerTableau = Tableau{
		A: [][]float64{{}},
		B: []float64{1},
		C: []float64{0},
	}

	MidpointTableau = Tableau{
		A: [][]float64{{}, {0.5}},
		B: []float64{0, 1},
		C: []float64{0, 0.5},
	}

	RK4Tableau = Tableau{
		A: [][]float64{{}, {0.5}, {0, 0.5}, {0, 0, 1}},
		B: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
		C: []float64{0, 0.5, 0.5, 1},
	}
)

// RungeKutta steps a state with a fixed tableau. It keeps per-stage scratch
// buffers and must not be shared between goroutines.
type RungeKutta struct {
	tab   Tableau
	k     []sim.State
	stage sim.State
}

func New(tab Tableau) *RungeKutta {
	return &RungeKutta{tab: tab}
}

func (r *RungeKutta) grow(n int) {
	if len(r.stage) == n && len(r.k) == len(r.tab.B) {
		return
	}
	r.stage = make(sim.State, n)
	r.k = make([]sim.State, len(r.tab.B))
	for s := range r.k {
		r.k[s] = make(sim.State, n)
	}
}

func (r *RungeKutta) Step(dyn sim.Dynamics, x sim.State, t, dt float64) sim.State {
	r.grow(len(x))

	for s := range r.tab.B {
		copy(r.stage, x)
		for j, a := range r.tab.A[s] {
			if a == 0 {
				continue
			}
			for i := range r.stage {
				r.stage[i] += dt * a * r.k[j][i]
			}
		}
		copy(r.k[s], dyn.Derivative(r.stage, t+r.tab.C[s]*dt))
	}

	next := x.Clone()
	for s, b := range r.tab.B {
		if b == 0 {
			continue
		}
		for i := range next {
			next[i] += dt * b * r.k[s][i]
		}
	}
	return next
}
