package bmp

import (
	"errors"
	"fmt"
)

// Errors returned by Decode and Encode. All are terminal; callers test for
// them with errors.Is.
var (
	// ErrTruncatedHeader is returned when the input ends within the
	// first 54 bytes.
	ErrTruncatedHeader = errors.New("bmp: truncated header")

	// ErrUnsupportedFormat is returned for any header IsSupported rejects.
	ErrUnsupportedFormat = errors.New("bmp: unsupported file format")

	// ErrCorruptDimensions is returned when width or height is zero.
	ErrCorruptDimensions = errors.New("bmp: width or height is zero")

	// ErrDimensionOverflow is returned when the pixel matrix size cannot be
	// represented.
	ErrDimensionOverflow = errors.New("bmp: image dimensions too large for this system")

	// ErrWidthOverflow is the ErrDimensionOverflow case where the width
	// alone is unusable.
	ErrWidthOverflow = fmt.Errorf("%w: width", ErrDimensionOverflow)

	// ErrAllocation is returned when the pixel matrix exceeds the decode
	// memory limit.
	ErrAllocation = errors.New("bmp: not enough memory to store image")

	// ErrTruncatedScanline is returned when the input ends inside the
	// pixel data.
	ErrTruncatedScanline = errors.New("bmp: truncated scanline")

	// ErrWriteFailure wraps any error from the output writer.
	ErrWriteFailure = errors.New("bmp: write failed")
)
