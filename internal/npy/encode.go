package npy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ShapeOf infers the shape of data and checks that it is rectangular. When
// the plot axis is empty the sample count cannot be observed and is reported
// as zero.
func ShapeOf(data [][][]float64) (Shape, error) {
	var shape Shape
	shape[0] = len(data)
	if shape[0] == 0 {
		return shape, nil
	}
	shape[1] = len(data[0])
	if shape[1] > 0 {
		shape[2] = len(data[0][0])
	}
	if err := checkShape(shape, data); err != nil {
		return Shape{}, err
	}
	return shape, nil
}

func checkShape(shape Shape, data [][][]float64) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if len(data) != shape[0] {
		return fmt.Errorf("%w: %d solutions, want %d", ErrShapeMismatch, len(data), shape[0])
	}
	for i, plots := range data {
		if len(plots) != shape[1] {
			return fmt.Errorf("%w: solution %d has %d plots, want %d", ErrShapeMismatch, i, len(plots), shape[1])
		}
		for j, samples := range plots {
			if len(samples) != shape[2] {
				return fmt.Errorf("%w: solution %d plot %d has %d samples, want %d",
					ErrShapeMismatch, i, j, len(samples), shape[2])
			}
		}
	}
	return nil
}

// Encode returns the full container for data: the header followed by every
// value as a little-endian float64, solution outermost and sample innermost.
// The whole container is built in memory.
func Encode(shape Shape, data [][][]float64) ([]byte, error) {
	if err := checkShape(shape, data); err != nil {
		return nil, err
	}

	header, err := BuildHeader(shape)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, len(header)+shape.Len()*8)
	off := copy(buf, header)
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			for k := 0; k < shape[2]; k++ {
				binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(data[i][j][k]))
				off += 8
			}
		}
	}

	return buf, nil
}
