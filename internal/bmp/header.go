// Package bmp reads and writes uncompressed 24-bit BMP images.
//
// Only one profile is supported: a 14-byte BITMAPFILEHEADER followed by a
// 40-byte BITMAPINFOHEADER, 24 bits per pixel, no compression and pixel data
// at offset 54. Headers are round-tripped verbatim; the codec never
// re-derives size or offset fields on encode.
package bmp

import (
	"fmt"
	"math"
)

// Supported header field values.
const (
	SupportedType        = 0x4d42 // "BM" read as a little-endian uint16
	SupportedOffBits     = 54
	SupportedInfoSize    = 40
	SupportedBitCount    = 24
	SupportedCompression = 0
)

// Wire sizes of the two headers.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
)

// FileHeader is the BITMAPFILEHEADER record.
type FileHeader struct {
	Type      uint16 // file type signature; "BM"
	Size      uint32 // size of the file in bytes
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // offset from the start of the file to the pixel data
}

// InfoHeader is the BITMAPINFOHEADER record.
type InfoHeader struct {
	Size          uint32 // size of this header in bytes
	Width         int32
	Height        int32 // positive: bottom-up, negative: top-down
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// Header is the header pair that precedes the pixel data.
type Header struct {
	File FileHeader
	Info InfoHeader
}

// IsSupported reports whether h describes the single supported profile.
func IsSupported(h *Header) bool {
	return h.File.Type == SupportedType &&
		h.File.OffBits == SupportedOffBits &&
		h.Info.Size == SupportedInfoSize &&
		h.Info.BitCount == SupportedBitCount &&
		h.Info.Compression == SupportedCompression
}

// Padding returns the number of zero bytes appended to each scanline of an
// image with the given width so its length is a multiple of 4.
func Padding(width int) int {
	return (4 - (width*3)%4) % 4
}

// Stride returns the on-wire length of one scanline including padding.
func Stride(width int) int {
	return width*3 + Padding(width)
}

// NewHeader returns a supported bottom-up header for a width x height image
// with consistent size fields and a resolution of 2835 pixels per meter
// (72 DPI). Dimensions the 32-bit header fields cannot hold are rejected.
func NewHeader(width, height int) (*Header, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrCorruptDimensions
	}
	if width > math.MaxInt32 {
		return nil, fmt.Errorf("%w %d", ErrWidthOverflow, width)
	}
	if height > math.MaxInt32 {
		return nil, fmt.Errorf("%w: height %d", ErrDimensionOverflow, height)
	}
	imageSize := uint64(Stride(width)) * uint64(height)
	if imageSize > math.MaxUint32-FileHeaderSize-InfoHeaderSize {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes", ErrDimensionOverflow, width, height, imageSize)
	}

	return &Header{
		File: FileHeader{
			Type:    SupportedType,
			Size:    FileHeaderSize + InfoHeaderSize + uint32(imageSize),
			OffBits: SupportedOffBits,
		},
		Info: InfoHeader{
			Size:          SupportedInfoSize,
			Width:         int32(width),
			Height:        int32(height),
			Planes:        1,
			BitCount:      SupportedBitCount,
			Compression:   SupportedCompression,
			SizeImage:     uint32(imageSize),
			XPelsPerMeter: 2835,
			YPelsPerMeter: 2835,
		},
	}, nil
}
