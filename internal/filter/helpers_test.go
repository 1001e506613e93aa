package filter

import (
	"testing"

	"github.com/gogpu/hbmp/internal/pixel"
)

// Test helper functions shared across filter tests.

// createTestBuffer creates a buffer filled with the given pixel.
func createTestBuffer(t testing.TB, w, h int, p pixel.Triple) *pixel.Buffer {
	t.Helper()
	b, err := pixel.NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d) error = %v", w, h, err)
	}
	b.Fill(p)
	return b
}

// createPatternBuffer fills a buffer with a deterministic non-uniform pattern.
func createPatternBuffer(t testing.TB, w, h int) *pixel.Buffer {
	t.Helper()
	b := createTestBuffer(t, w, h, pixel.Triple{})
	for y := range h {
		for x := range w {
			b.Set(y, x, pixel.Triple{
				B: uint8(x*37 + y*11),
				G: uint8(x*5 + y*53),
				R: uint8(x*y*7 + 13),
			})
		}
	}
	return b
}

// gray returns a pixel with all three channels set to v.
func gray(v uint8) pixel.Triple {
	return pixel.Triple{B: v, G: v, R: v}
}

// rgb builds a pixel from red, green, blue in that order.
func rgb(r, g, b uint8) pixel.Triple {
	return pixel.Triple{B: b, G: g, R: r}
}
