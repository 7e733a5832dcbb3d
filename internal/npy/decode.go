package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	descrPattern   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranPattern = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapePattern   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// Header is the parsed form of a container header.
type Header struct {
	Major, Minor uint8
	Descr        string
	FortranOrder bool
	Shape        []int
	// Len is the total header size in bytes, including the preamble.
	Len int
}

// ParseHeader reads and parses a container header from r, leaving r
// positioned at the first payload byte.
func ParseHeader(r io.Reader) (Header, error) {
	var pre [preambleLen]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return Header{}, fmt.Errorf("%w: reading preamble: %v", ErrFormat, err)
	}
	if !bytes.Equal(pre[:magicLen], Magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic % x", ErrFormat, pre[:magicLen])
	}

	h := Header{Major: pre[magicLen], Minor: pre[magicLen+1]}
	if h.Major != MajorVersion {
		return Header{}, fmt.Errorf("%w: version %d.%d", ErrUnsupported, h.Major, h.Minor)
	}

	descrLen := int(binary.LittleEndian.Uint16(pre[magicLen+2:]))
	text := make([]byte, descrLen)
	if _, err := io.ReadFull(r, text); err != nil {
		return Header{}, fmt.Errorf("%w: reading descriptor: %v", ErrFormat, err)
	}
	if descrLen == 0 || text[descrLen-1] != terminator {
		return Header{}, fmt.Errorf("%w: descriptor not newline terminated", ErrFormat)
	}
	h.Len = preambleLen + descrLen

	if err := h.parseDescriptor(string(text)); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (h *Header) parseDescriptor(text string) error {
	m := descrPattern.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("%w: descriptor has no 'descr'", ErrFormat)
	}
	h.Descr = m[1]

	m = fortranPattern.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("%w: descriptor has no 'fortran_order'", ErrFormat)
	}
	h.FortranOrder = m[1] == "True"

	m = shapePattern.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("%w: descriptor has no 'shape'", ErrFormat)
	}
	h.Shape = h.Shape[:0]
	for _, field := range strings.Split(m[1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dim, err := strconv.Atoi(field)
		if err != nil || dim < 0 {
			return fmt.Errorf("%w: bad dimension %q", ErrFormat, field)
		}
		h.Shape = append(h.Shape, dim)
	}
	return nil
}

// Shape3 returns the header shape as a Shape, or ErrUnsupported when the
// array is not three-dimensional.
func (h Header) Shape3() (Shape, error) {
	if len(h.Shape) != 3 {
		return Shape{}, fmt.Errorf("%w: %d-dimensional array", ErrUnsupported, len(h.Shape))
	}
	return Shape{h.Shape[0], h.Shape[1], h.Shape[2]}, nil
}

// Decode parses a complete container produced by Encode.
func Decode(b []byte) (Shape, [][][]float64, error) {
	h, err := ParseHeader(bytes.NewReader(b))
	if err != nil {
		return Shape{}, nil, err
	}
	if h.Descr != DType {
		return Shape{}, nil, fmt.Errorf("%w: dtype %q", ErrUnsupported, h.Descr)
	}
	if h.FortranOrder {
		return Shape{}, nil, fmt.Errorf("%w: fortran order", ErrUnsupported)
	}
	shape, err := h.Shape3()
	if err != nil {
		return Shape{}, nil, err
	}

	payload := b[h.Len:]
	if err := checkPayload(shape, len(payload)); err != nil {
		return Shape{}, nil, err
	}

	data := make([][][]float64, shape[0])
	off := 0
	for i := range data {
		data[i] = make([][]float64, shape[1])
		for j := range data[i] {
			data[i][j] = make([]float64, shape[2])
			for k := range data[i][j] {
				data[i][j][k] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
				off += 8
			}
		}
	}
	return shape, data, nil
}

// maxEmptyRows bounds the slices allocated for an array with no elements,
// whose declared shape the payload size cannot confirm.
const maxEmptyRows = 1 << 20

// checkPayload verifies that a payload of size bytes holds exactly the
// elements of shape before anything is allocated for it.
func checkPayload(shape Shape, size int) error {
	n := 1
	for _, d := range shape {
		if d > 0 && n > math.MaxInt/8/d {
			return fmt.Errorf("%w: shape %s is too large", ErrFormat, shape)
		}
		n *= d
	}
	if n*8 != size {
		return fmt.Errorf("%w: payload is %d bytes, want %d", ErrFormat, size, n*8)
	}
	if n == 0 && (shape[0] > maxEmptyRows || shape[0] > 0 && shape[1] > maxEmptyRows/shape[0]) {
		return fmt.Errorf("%w: empty array with shape %s", ErrFormat, shape)
	}
	return nil
}

// ReadFile decodes the container stored at path.
func ReadFile(path string) (Shape, [][][]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Shape{}, nil, err
	}
	return Decode(b)
}
