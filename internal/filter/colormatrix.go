package filter

import "github.com/gogpu/hbmp/internal/pixel"

// fixedScale is the fixed-point scale of colorMatrix coefficients.
const fixedScale = 8192

// colorMatrix is a 3x3 RGB transform with coefficients in fixed point
// (value * fixedScale, rounded).
//
//	[R']   [m0 m1 m2]   [R]
//	[G'] = [m3 m4 m5] * [G]
//	[B']   [m6 m7 m8]   [B]
type colorMatrix [9]uint32

// newColorMatrix converts row-major float coefficients to fixed point.
func newColorMatrix(m [9]float64) colorMatrix {
	var fm colorMatrix
	for i, v := range m {
		fm[i] = uint32(v*fixedScale + 0.5)
	}
	return fm
}

var sepiaMatrix = newColorMatrix([9]float64{
	0.393, 0.769, 0.189, // R
	0.349, 0.686, 0.168, // G
	0.272, 0.534, 0.131, // B
})

// transform applies m to p, rounding half up and saturating at 255.
func (m *colorMatrix) transform(p pixel.Triple) pixel.Triple {
	r, g, b := uint32(p.R), uint32(p.G), uint32(p.B)

	nr := (m[0]*r + m[1]*g + m[2]*b + fixedScale/2) / fixedScale
	ng := (m[3]*r + m[4]*g + m[5]*b + fixedScale/2) / fixedScale
	nb := (m[6]*r + m[7]*g + m[8]*b + fixedScale/2) / fixedScale

	return pixel.Triple{
		B: uint8(min(nb, 255)),
		G: uint8(min(ng, 255)),
		R: uint8(min(nr, 255)),
	}
}

func sepiaRows(b *pixel.Buffer, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := b.Row(y)
		for x := range row {
			row[x] = sepiaMatrix.transform(row[x])
		}
	}
}

// grayAverage returns the channel average of p with the rounding rule
// (sum + sum%2 + 1) / 3.
func grayAverage(p pixel.Triple) uint8 {
	sum := uint32(p.R) + uint32(p.G) + uint32(p.B)
	return uint8((sum + sum&1 + 1) / 3)
}

func grayscaleRows(b *pixel.Buffer, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := b.Row(y)
		for x := range row {
			avg := grayAverage(row[x])
			row[x] = pixel.Triple{B: avg, G: avg, R: avg}
		}
	}
}
