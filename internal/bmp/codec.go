package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/hbmp/internal/pixel"
)

// DefaultMaxPixelBytes is the default limit on decoded pixel data (1 GiB).
const DefaultMaxPixelBytes = 1 << 30

// DecodeOptions controls resource limits during decoding.
type DecodeOptions struct {
	// MaxPixelBytes limits height*width*3, the memory needed for the pixel
	// buffer. Larger images fail with ErrAllocation.
	// 0 means DefaultMaxPixelBytes; a negative value disables the limit.
	MaxPixelBytes int
}

// Decode reads a supported BMP image from r.
// The returned header is exactly what was read and is meant to be passed
// back unmodified to Encode together with the returned buffer.
func Decode(r io.Reader) (*Header, *pixel.Buffer, error) {
	return DecodeWithOptions(r, DecodeOptions{})
}

// DecodeWithOptions is like Decode with explicit resource limits.
func DecodeWithOptions(r io.Reader, opts DecodeOptions) (*Header, *pixel.Buffer, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}

	if !IsSupported(h) {
		return nil, nil, ErrUnsupportedFormat
	}

	width, height, err := dimensions(&h.Info, opts)
	if err != nil {
		return nil, nil, err
	}

	buf, err := pixel.NewBuffer(width, height)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	if err := readScanlines(r, buf); err != nil {
		return nil, nil, err
	}

	return h, buf, nil
}

func readHeader(r io.Reader) (*Header, error) {
	var raw [FileHeaderSize + InfoHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}

	h := &Header{}
	if _, err := binary.Decode(raw[:FileHeaderSize], binary.LittleEndian, &h.File); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	if _, err := binary.Decode(raw[FileHeaderSize:], binary.LittleEndian, &h.Info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	return h, nil
}

// dimensions validates the info header dimensions and converts them to int.
// The height sign is dropped: rows are kept in file order either way.
func dimensions(info *InfoHeader, opts DecodeOptions) (width, height int, err error) {
	absHeight := uint32(info.Height)
	if info.Height < 0 {
		absHeight = -absHeight
	}
	if uint64(absHeight) > math.MaxInt {
		return 0, 0, ErrDimensionOverflow
	}

	height = int(absHeight)
	width = int(info.Width)

	if height == 0 || width == 0 {
		return 0, 0, ErrCorruptDimensions
	}

	// A negative width reinterpreted as an unsigned size is larger than
	// anything addressable.
	if width < 0 || width > (math.MaxInt-pixel.TripleSize)/pixel.TripleSize {
		return 0, 0, fmt.Errorf("%w %d", ErrWidthOverflow, info.Width)
	}
	if Stride(width) > math.MaxInt/height {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}

	limit := opts.MaxPixelBytes
	if limit == 0 {
		limit = DefaultMaxPixelBytes
	}
	if limit > 0 && width*pixel.TripleSize > limit/height {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %d bytes", ErrAllocation, width, height, limit)
	}

	return width, height, nil
}

func readScanlines(r io.Reader, buf *pixel.Buffer) error {
	width := buf.Width()
	line := make([]byte, Stride(width))

	for y := range buf.Height() {
		// Padding is read with the row and discarded.
		if _, err := io.ReadFull(r, line); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrTruncatedScanline, y, err)
		}
		row := buf.Row(y)
		for x := range row {
			off := x * pixel.TripleSize
			row[x] = pixel.Triple{B: line[off], G: line[off+1], R: line[off+2]}
		}
	}
	return nil
}

// Encode writes h verbatim followed by the rows of buf in storage order.
// Padding is recomputed from buf.Width(); the size fields of h are not
// checked against buf, so h must describe buf's dimensions.
func Encode(w io.Writer, h *Header, buf *pixel.Buffer) error {
	raw := make([]byte, 0, FileHeaderSize+InfoHeaderSize)
	raw, err := binary.Append(raw, binary.LittleEndian, &h.File)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	raw, err = binary.Append(raw, binary.LittleEndian, &h.Info)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if err := writeFull(w, raw); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWriteFailure, err)
	}

	return writeScanlines(w, buf)
}

func writeScanlines(w io.Writer, buf *pixel.Buffer) error {
	width := buf.Width()
	// Trailing padding bytes are never written to and stay zero.
	line := make([]byte, Stride(width))

	for y := range buf.Height() {
		for x, p := range buf.Row(y) {
			off := x * pixel.TripleSize
			line[off] = p.B
			line[off+1] = p.G
			line[off+2] = p.R
		}
		if err := writeFull(w, line); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrWriteFailure, y, err)
		}
	}
	return nil
}

func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
