package npy

import "errors"

var (
	// ErrShapeMismatch indicates an array whose dimensions are negative or
	// disagree with the declared shape.
	ErrShapeMismatch = errors.New("npy: shape mismatch")

	// ErrEncoding indicates descriptor text that cannot be stored as 7-bit ASCII.
	ErrEncoding = errors.New("npy: descriptor is not ASCII")

	// ErrHeaderTooLarge indicates a descriptor too long for a v1.0 length field.
	ErrHeaderTooLarge = errors.New("npy: header exceeds 65535 bytes")

	// ErrFormat indicates input that is not a well-formed .npy container.
	ErrFormat = errors.New("npy: malformed container")

	// ErrUnsupported indicates a valid container this package cannot decode.
	ErrUnsupported = errors.New("npy: unsupported container")
)
