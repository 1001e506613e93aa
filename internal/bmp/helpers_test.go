package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/gogpu/hbmp/internal/pixel"
)

// Test helper functions shared across codec tests.

// testHeader is NewHeader for dimensions known to be valid.
func testHeader(w, h int) *Header {
	hdr, err := NewHeader(w, h)
	if err != nil {
		panic(err)
	}
	return hdr
}

// rawBMP assembles a BMP byte stream from h and already padded scanlines.
func rawBMP(h *Header, scanlines ...[]byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, &h.File)
	_ = binary.Write(&buf, binary.LittleEndian, &h.Info)
	for _, line := range scanlines {
		buf.Write(line)
	}
	return buf.Bytes()
}

// patternBuffer returns a buffer whose pixels are derived from their position.
func patternBuffer(w, h int) *pixel.Buffer {
	b := pixel.MustBuffer(w, h)
	for y := range h {
		for x := range w {
			b.Set(y, x, pixel.Triple{
				B: uint8(x*31 + y),
				G: uint8(x + y*17),
				R: uint8(x*y + 5),
			})
		}
	}
	return b
}

// limitWriter accepts n bytes, then fails every write.
type limitWriter struct {
	n   int
	buf bytes.Buffer
}

var errDiskFull = errors.New("disk full")

func (w *limitWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		k := w.n
		w.buf.Write(p[:k])
		w.n = 0
		return k, errDiskFull
	}
	w.n -= len(p)
	return w.buf.Write(p)
}

// shortWriter reports fewer bytes written than requested without an error.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}
