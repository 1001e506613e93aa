// Package hbmp reads, filters, and writes 24-bit uncompressed BMP images.
//
// # Overview
//
// hbmp accepts exactly one BMP flavor: a 14-byte file header with type "BM"
// and pixel data at offset 54, followed by a 40-byte BITMAPINFOHEADER with
// 24 bits per pixel and no compression. Anything else is rejected with
// [ErrUnsupportedFormat]. Scanlines are kept in file order; no vertical
// flip is applied.
//
// # Quick Start
//
//	import "github.com/gogpu/hbmp"
//
//	in, _ := os.Open("in.bmp")
//	out, _ := os.Create("out.bmp")
//	err := hbmp.Process(in, out, []hbmp.Kind{hbmp.Sepia, hbmp.Blur})
//
// Or step by step:
//
//	h, buf, err := hbmp.Decode(r)
//	if err != nil {
//	    return err
//	}
//	if err := hbmp.ApplyFilter("grayscale", buf); err != nil {
//	    return err
//	}
//	return hbmp.Encode(w, h, buf)
//
// # Filters
//
// Four in-place filters are provided: grayscale, sepia, reflect (horizontal
// mirror) and blur (three 3x3 box passes with clamp-to-edge borders). All
// arithmetic is integer, so output is identical on every platform and for
// any worker count (see [WithWorkers]).
//
// # Errors
//
// Every failure is reported with a sentinel error that can be tested with
// [errors.Is]. Filters never fail.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive debug records.
package hbmp
