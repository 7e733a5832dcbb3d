package npy

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	MajorVersion = 0x01
	MinorVersion = 0x00

	// DType is the little-endian float64 type tag.
	DType = "<f8"

	// Alignment is the boundary the full header is padded to.
	Alignment = 16

	magicLen    = 6
	preambleLen = magicLen + 2 + 2 // magic, version, length field
	terminator  = '\n'
)

// Magic is the fixed prefix of every container.
var Magic = [magicLen]byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

// Shape is (solutionCount, plotCount, sampleCount), outermost axis first.
type Shape [3]int

// Len returns the number of elements described by the shape.
func (s Shape) Len() int {
	return s[0] * s[1] * s[2]
}

// Validate reports whether every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrShapeMismatch, i, dim)
		}
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

// Descriptor returns the header dict literal for a C-ordered float64 array.
func Descriptor(shape Shape) string {
	return "{ 'descr': '" + DType + "', 'fortran_order': False, 'shape': " + shape.String() + ",}"
}

// BuildHeader returns the complete container header for shape. The result is
// deterministic: identical shapes yield identical bytes.
func BuildHeader(shape Shape) ([]byte, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return buildHeader(Descriptor(shape))
}

func buildHeader(descr string) ([]byte, error) {
	for i := 0; i < len(descr); i++ {
		if descr[i] > 0x7f {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrEncoding, descr[i], i)
		}
	}

	padding := Alignment - (len(descr)+preambleLen+1)%Alignment
	descrLen := len(descr) + padding + 1
	if descrLen > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d", ErrHeaderTooLarge, descrLen)
	}

	header := make([]byte, preambleLen+descrLen)
	copy(header, Magic[:])
	header[magicLen] = MajorVersion
	header[magicLen+1] = MinorVersion
	binary.LittleEndian.PutUint16(header[magicLen+2:preambleLen], uint16(descrLen))

	n := preambleLen + copy(header[preambleLen:], descr)
	for i := 0; i < padding; i++ {
		header[n+i] = ' '
	}
	header[len(header)-1] = terminator

	return header, nil
}
