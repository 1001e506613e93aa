package hbmp

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/gogpu/hbmp/internal/bmp"
	"github.com/gogpu/hbmp/internal/filter"
	"github.com/gogpu/hbmp/internal/pixel"
)

// Header is the pair of BMP headers of a decoded image.
type Header = bmp.Header

// Buffer is the decoded pixel matrix. Row 0 is the first scanline in the file.
type Buffer = pixel.Buffer

// Triple is one pixel in blue, green, red order.
type Triple = pixel.Triple

// Kind identifies a filter.
type Kind = filter.Kind

// Filters.
const (
	Grayscale = filter.Grayscale
	Sepia     = filter.Sepia
	Reflect   = filter.Reflect
	Blur      = filter.Blur
)

// Errors reported by decoding, encoding and filter lookup.
var (
	ErrTruncatedHeader   = bmp.ErrTruncatedHeader
	ErrUnsupportedFormat = bmp.ErrUnsupportedFormat
	ErrCorruptDimensions = bmp.ErrCorruptDimensions
	ErrDimensionOverflow = bmp.ErrDimensionOverflow
	ErrWidthOverflow     = bmp.ErrWidthOverflow
	ErrAllocation        = bmp.ErrAllocation
	ErrTruncatedScanline = bmp.ErrTruncatedScanline
	ErrWriteFailure      = bmp.ErrWriteFailure
	ErrUnknownFilter     = filter.ErrUnknownFilter
)

// Option configures Process.
type Option func(*config)

type config struct {
	workers       int
	maxPixelBytes int
}

// WithWorkers sets the number of goroutines used by each filter.
// Values below 2 run the filters on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithMaxPixelBytes limits the pixel memory a decode may allocate.
// Zero keeps the default limit; a negative value disables the limit.
func WithMaxPixelBytes(n int) Option {
	return func(c *config) {
		c.maxPixelBytes = n
	}
}

// Decode reads a supported BMP from r.
func Decode(r io.Reader) (*Header, *Buffer, error) {
	return decode(r, config{})
}

func decode(r io.Reader, c config) (*Header, *Buffer, error) {
	h, buf, err := bmp.DecodeWithOptions(r, bmp.DecodeOptions{MaxPixelBytes: c.maxPixelBytes})
	if err != nil {
		return nil, nil, err
	}
	Logger().Debug("hbmp: decoded",
		"width", buf.Width(),
		"height", buf.Height(),
		"padding", bmp.Padding(buf.Width()))
	return h, buf, nil
}

// Encode writes h followed by the scanlines of b to w. h is written
// verbatim and must describe b.
func Encode(w io.Writer, h *Header, b *Buffer) error {
	cw := &countingWriter{w: w}
	if err := bmp.Encode(cw, h, b); err != nil {
		return err
	}
	Logger().Debug("hbmp: encoded", "bytes", cw.n)
	return nil
}

// EncodeImage writes img as a bottom-up 24-bit BMP. Alpha is discarded.
func EncodeImage(w io.Writer, img image.Image) error {
	b, err := pixel.FromImage(img)
	if err != nil {
		return fmt.Errorf("hbmp: encode image: %w", err)
	}
	h, err := bmp.NewHeader(b.Width(), b.Height())
	if err != nil {
		return fmt.Errorf("hbmp: encode image: %w", err)
	}
	// The file is bottom-up, so the last image row is the first scanline.
	flipped := pixel.MustBuffer(b.Width(), b.Height())
	for y := range b.Height() {
		copy(flipped.Row(b.Height()-1-y), b.Row(y))
	}
	return Encode(w, h, flipped)
}

// ToImage returns b as an upright image: for a bottom-up header (positive
// height) the last scanline becomes the top row.
func ToImage(h *Header, b *Buffer) *image.NRGBA {
	img := b.ToNRGBA()
	if h.Info.Height < 0 {
		return img
	}
	for top, bottom := 0, b.Height()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*img.Stride : (top+1)*img.Stride]
		u := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		for i := range t {
			t[i], u[i] = u[i], t[i]
		}
	}
	return img
}

// ApplyFilter applies the filter with the given name to b in place.
// Names are matched case-insensitively; "greyscale" and "reverse" are
// accepted as aliases.
func ApplyFilter(name string, b *Buffer) error {
	k, err := filter.Parse(name)
	if err != nil {
		return err
	}
	filter.Apply(k, b, logTrace)
	return nil
}

// Process decodes a BMP from r, applies kinds in order and encodes the
// result to w. Nothing is written to w unless decoding succeeds.
func Process(r io.Reader, w io.Writer, kinds []Kind, opts ...Option) error {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	h, buf, err := decode(r, c)
	if err != nil {
		return err
	}
	apply(kinds, buf, c)
	return Encode(w, h, buf)
}

// Apply runs kinds over b in order. Only WithWorkers is consulted.
func Apply(kinds []Kind, b *Buffer, opts ...Option) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	apply(kinds, b, c)
}

func apply(kinds []Kind, b *Buffer, c config) {
	filter.ApplyAll(kinds, b, filter.WithWorkers(c.workers), logTrace)
}

var logTrace = filter.WithTrace(func(k Kind, elapsed time.Duration) {
	Logger().Debug("hbmp: applied", "filter", k.String(), "elapsed", elapsed)
})

// countingWriter counts bytes accepted by w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
