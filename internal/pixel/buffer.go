// Package pixel provides the in-memory pixel matrix shared by the codec and
// the filters.
//
// A Buffer stores 24-bit pixels row-major in a single contiguous slice. Row 0
// is the first scanline encountered in the file; no vertical flip is ever
// applied.
package pixel

import (
	"errors"
	"math"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrTooLarge is returned when width*height overflows int.
	ErrTooLarge = errors.New("pixel: dimensions too large")
)

// Triple is one 24-bit pixel in BMP channel order: blue, green, red.
type Triple struct {
	B, G, R uint8
}

// TripleSize is the number of bytes a Triple occupies on the wire.
const TripleSize = 3

// Buffer is a height x width matrix of Triples.
//
// Thread safety: distinct rows may be written concurrently; anything else
// requires external synchronization.
type Buffer struct {
	pix    []Triple
	width  int
	height int
}

// NewBuffer creates a zero-filled buffer with the given dimensions.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width > math.MaxInt/height {
		return nil, ErrTooLarge
	}
	return &Buffer{
		pix:    make([]Triple, width*height),
		width:  width,
		height: height,
	}, nil
}

// MustBuffer is like NewBuffer but panics on invalid dimensions.
func MustBuffer(width, height int) *Buffer {
	b, err := NewBuffer(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Pixels returns the backing slice in row-major order.
func (b *Buffer) Pixels() []Triple {
	return b.pix
}

// Row returns the pixels of row y. It panics if y is out of range.
func (b *Buffer) Row(y int) []Triple {
	if y < 0 || y >= b.height {
		panic("pixel: row index out of range")
	}
	start := y * b.width
	return b.pix[start : start+b.width : start+b.width]
}

// At returns the pixel at (row, col). It panics if either index is out of range.
func (b *Buffer) At(row, col int) Triple {
	return b.pix[b.offset(row, col)]
}

// Set stores t at (row, col). It panics if either index is out of range.
func (b *Buffer) Set(row, col int, t Triple) {
	b.pix[b.offset(row, col)] = t
}

func (b *Buffer) offset(row, col int) int {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		panic("pixel: coordinates out of range")
	}
	return row*b.width + col
}

// Fill sets every pixel to t.
func (b *Buffer) Fill(t Triple) {
	for i := range b.pix {
		b.pix[i] = t
	}
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]Triple, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{
		pix:    pix,
		width:  b.width,
		height: b.height,
	}
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}
