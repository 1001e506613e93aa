package filter

import (
	"sync"

	"github.com/gogpu/hbmp/internal/parallel"
	"github.com/gogpu/hbmp/internal/pixel"
)

const (
	// blurPasses is the number of box passes; three approximate a Gaussian.
	blurPasses = 3

	// neighborhoodSize is the pixel count of the 3x3 box.
	neighborhoodSize = 9
)

// blur applies blurPasses box passes to b. Every pass reads a snapshot of
// the previous pass taken before any of its rows are written.
func blur(b *pixel.Buffer, pool *parallel.WorkerPool) {
	paddedW := b.Width() + 2
	temp := getTempBuffer(paddedW * (b.Height() + 2))
	defer putTempBuffer(temp)

	for range blurPasses {
		fillPadded(b, temp)
		pool.Rows(b.Height(), func(y0, y1 int) {
			boxRows(b, temp, y0, y1)
		})
	}
}

// fillPadded copies b into temp with a one-pixel border on every side,
// replicating the nearest edge pixel (clamp-to-edge).
func fillPadded(b *pixel.Buffer, temp []pixel.Triple) {
	w, h := b.Width(), b.Height()
	paddedW := w + 2

	for y := range h {
		row := b.Row(y)
		dst := temp[(y+1)*paddedW : (y+2)*paddedW]
		copy(dst[1:], row)
		dst[0] = row[0]     // left edge
		dst[w+1] = row[w-1] // right edge
	}

	copy(temp[:paddedW], temp[paddedW:2*paddedW])             // top edge
	copy(temp[(h+1)*paddedW:], temp[h*paddedW:(h+1)*paddedW]) // bottom edge
}

// boxRows writes the rounded 3x3 average of the padded snapshot into rows
// [y0, y1) of b.
func boxRows(b *pixel.Buffer, temp []pixel.Triple, y0, y1 int) {
	paddedW := b.Width() + 2

	for y := y0; y < y1; y++ {
		row := b.Row(y)
		// Rows y, y+1, y+2 of temp surround row y of b.
		above := temp[y*paddedW : (y+1)*paddedW]
		center := temp[(y+1)*paddedW : (y+2)*paddedW]
		below := temp[(y+2)*paddedW : (y+3)*paddedW]

		for x := range row {
			var sr, sg, sb uint32
			for k := x; k < x+3; k++ {
				for _, p := range [3]pixel.Triple{above[k], center[k], below[k]} {
					sr += uint32(p.R)
					sg += uint32(p.G)
					sb += uint32(p.B)
				}
			}

			row[x] = pixel.Triple{
				B: uint8((sb + neighborhoodSize/2) / neighborhoodSize),
				G: uint8((sg + neighborhoodSize/2) / neighborhoodSize),
				R: uint8((sr + neighborhoodSize/2) / neighborhoodSize),
			}
		}
	}
}

// tripleBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type tripleBuffer struct {
	data []pixel.Triple
}

// Padded snapshot pool for blur passes.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &tripleBuffer{}
	},
}

// getTempBuffer retrieves a buffer of exactly size elements from the pool.
// Contents are unspecified; fillPadded overwrites every element.
func getTempBuffer(size int) []pixel.Triple {
	wrapper := tempBufferPool.Get().(*tripleBuffer)
	if cap(wrapper.data) < size {
		return make([]pixel.Triple, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a buffer to the pool.
func putTempBuffer(buf []pixel.Triple) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&tripleBuffer{data: buf[:cap(buf)]})
	}
}
