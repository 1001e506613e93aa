package pixel

import (
	"image"
	"image/color"
)

// ToNRGBA converts the buffer to an opaque *image.NRGBA. Row 0 of the buffer
// becomes y=0 of the image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		row := b.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x, p := range row {
			off := x * 4
			dst[off] = p.R
			dst[off+1] = p.G
			dst[off+2] = p.B
			dst[off+3] = 255
		}
	}
	return img
}

// FromImage creates a buffer from a standard library image. Alpha is
// discarded; colors are taken as non-premultiplied 8-bit values.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range buf.height {
			src := nrgba.Pix[y*nrgba.Stride:]
			row := buf.Row(y)
			for x := range row {
				off := x * 4
				row[x] = Triple{B: src[off+2], G: src[off+1], R: src[off]}
			}
		}
		return buf, nil
	}

	for y := range buf.height {
		row := buf.Row(y)
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x] = Triple{B: c.B, G: c.G, R: c.R}
		}
	}
	return buf, nil
}
