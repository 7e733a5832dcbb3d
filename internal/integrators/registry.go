package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/simextract/internal/sim"
)

var tableaus = map[string]Tableau{
	"euler":    EulerTableau,
	"midpoint": MidpointTableau,
	"rk4":      RK4Tableau,
}

// ByName returns a fresh integrator for the named method.
func ByName(name string) (sim.Integrator, error) {
	tab, ok := tableaus[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return New(tab), nil
}

func Names() []string {
	names := make([]string, 0, len(tableaus))
	for name := range tableaus {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
