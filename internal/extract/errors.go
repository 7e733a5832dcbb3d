package extract

import (
	"errors"
	"fmt"

	"github.com/san-kum/simextract/internal/npy"
)

var (
	// ErrModelLoad indicates the driver could not open the model.
	ErrModelLoad = errors.New("extract: model load failed")

	// ErrShapeMismatch indicates ragged, empty or non-positive extracted
	// dimensions. It is the same sentinel the serializer reports.
	ErrShapeMismatch = npy.ErrShapeMismatch
)

// ShapeError describes a series whose length disagrees with the time base.
type ShapeError struct {
	Solution int
	Plot     string
	Want     int
	Got      int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("extract: plot %s solution %d has %d samples, want %d", e.Plot, e.Solution, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
