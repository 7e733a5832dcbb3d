// Package npy encodes and decodes three-dimensional float64 arrays in the
// NumPy .npy container format, version 1.0.
//
// A container is a fixed header followed by the raw payload:
//
//	\x93NUMPY | major | minor | uint16 LE length | descriptor | spaces | \n | data
//
// The header is always padded so that its total length is a multiple of 16
// bytes. The descriptor is a Python dict literal naming the dtype ('<f8'),
// the memory order (C order only) and the shape.
//
// # Example
//
//	shape := npy.Shape{2, 3, 100}
//	if err := npy.WriteFile("out.npy", shape, data); err != nil {
//	    return err
//	}
//
// Values are laid out solution-major: data[i][j][k] is written at
// ((i*d2)+j)*d3+k.
package npy
