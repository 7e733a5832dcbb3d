package extract

import "context"

// Plot is an active result feature of a plot group.
type Plot struct {
	Tag string
	// Solutions is the number of solutions the feature holds data for.
	Solutions int
}

// Series is the sample sequence of one plot for one solution.
type Series struct {
	Times  []float64
	Values []float64
}

// Driver is the boundary to the simulation engine. Implementations are used
// from a single goroutine.
type Driver interface {
	// LoadModel opens the solved model stored at path.
	LoadModel(ctx context.Context, path string) error
	// ActivePlots lists the active features of the named plot group, in
	// the order the engine reports them.
	ActivePlots(ctx context.Context, group string) ([]Plot, error)
	// FetchSamples returns the samples of plot for the zero-based solution.
	FetchSamples(ctx context.Context, plot string, solution int) (Series, error)
}
