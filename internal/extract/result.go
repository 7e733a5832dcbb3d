package extract

import (
	"fmt"

	"github.com/san-kum/simextract/internal/npy"
)

// Result is the outcome of one extraction. It is built once by Extractor.Run
// and never modified afterwards.
type Result struct {
	ModelPath string
	Group     string
	Plots     []string
	Times     []float64
	// Data is indexed [solution][plot][sample].
	Data [][][]float64
}

// Shape returns (solutions, plots, samples).
func (r Result) Shape() npy.Shape {
	return npy.Shape{len(r.Data), len(r.Plots), len(r.Times)}
}

// Validate checks that the result is non-empty and rectangular.
func (r Result) Validate() error {
	shape := r.Shape()
	for axis, dim := range shape {
		if dim <= 0 {
			return fmt.Errorf("%w: axis %d of shape %s is empty", ErrShapeMismatch, axis, shape)
		}
	}
	for i, plots := range r.Data {
		if len(plots) != shape[1] {
			return fmt.Errorf("%w: solution %d has %d plots, want %d", ErrShapeMismatch, i, len(plots), shape[1])
		}
		for j, samples := range plots {
			if len(samples) != shape[2] {
				return &ShapeError{Solution: i, Plot: r.Plots[j], Want: shape[2], Got: len(samples)}
			}
		}
	}
	return nil
}

// WriteNPY validates r and stores its data at path.
func (r Result) WriteNPY(path string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return npy.WriteFile(path, r.Shape(), r.Data)
}
