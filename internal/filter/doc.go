// Package filter provides the pixel transformations applied between decode
// and encode.
//
// This package contains four in-place filters over a pixel.Buffer:
//   - Grayscale (channel average with a fixed rounding rule)
//   - Sepia (fixed-point color matrix, saturating)
//   - Reflect (horizontal mirror)
//   - Blur (three passes of a 3x3 box blur, clamp-to-edge)
//
// All filters are total: they cannot fail on a buffer that passed decoding.
// Integer arithmetic is used throughout so results are identical on every
// platform, and rows may be partitioned across workers (see WithWorkers)
// without changing the output.
package filter
