// Package carrotpng decodes 8-bit RGB/RGBA, non-interlaced PNG images from
// memory: container framing and CRC validation, zlib/DEFLATE inflation
// (stored and fixed-Huffman blocks; dynamic Huffman is recognized but
// rejected), and scanline defiltering, all hand-rolled rather than leaning
// on compress/zlib or image/png.
package carrotpng

import (
	"github.com/pkg/errors"

	"github.com/adpollak/carrotpng/internal/chunk"
	"github.com/adpollak/carrotpng/internal/deflate"
	"github.com/adpollak/carrotpng/internal/filter"
)

// ReadHeader parses only as far as IHDR: signature check plus the IHDR
// chunk's own CRC, without requiring IDAT chunks or an IEND to be present.
func ReadHeader(data []byte) (Header, error) {
	res, err := chunk.Parse(data, true)
	if err != nil {
		return Header{}, errors.Wrap(err, "read png header")
	}
	return Header{
		Width:             res.Header.Width,
		Height:            res.Header.Height,
		BitDepth:          res.Header.BitDepth,
		ColorType:         res.Header.ColorType,
		CompressionMethod: res.Header.CompressionMethod,
		FilterMethod:      res.Header.FilterMethod,
		InterlaceMethod:   res.Header.InterlaceMethod,
	}, nil
}

// Decode parses and fully decodes a PNG image from memory using default
// Options.
func Decode(data []byte) (*Image, error) {
	return DecodeWithOptions(data, Options{})
}

// DecodeWithOptions is Decode with explicit control over the
// implementation-defined DEFLATE-trailer tolerance.
func DecodeWithOptions(data []byte, opts Options) (*Image, error) {
	res, err := chunk.Parse(data, false)
	if err != nil {
		return nil, errors.Wrap(err, "parse chunk stream")
	}
	hdr := res.Header

	if hdr.BitDepth != 8 {
		return nil, ErrUnsupportedBitDepth
	}
	if hdr.ColorType != 2 && hdr.ColorType != 6 {
		return nil, ErrUnsupportedColorType
	}
	if hdr.CompressionMethod != 0 || hdr.FilterMethod != 0 || hdr.InterlaceMethod != 0 {
		return nil, ErrUnsupportedCompressionFilter
	}

	bpp := 3
	hasAlpha := false
	if hdr.ColorType == 6 {
		bpp = 4
		hasAlpha = true
	}

	idat := concatIDAT(res.IDAT)
	rowBytes := 1 + int(hdr.Width)*bpp
	expectedRawSize := int(hdr.Height) * rowBytes

	filtered, err := deflate.Inflate(idat, expectedRawSize, deflate.Options{StrictTrailer: opts.StrictTrailer})
	if err != nil {
		return nil, errors.Wrap(err, "inflate IDAT stream")
	}

	pixels, err := filter.Reverse(filtered, int(hdr.Width), int(hdr.Height), bpp)
	if err != nil {
		return nil, errors.Wrap(err, "reverse scanline filters")
	}

	return &Image{
		Width:       int(hdr.Width),
		Height:      int(hdr.Height),
		Pixels:      pixels,
		StrideBytes: int(hdr.Width) * bpp,
		HasAlpha:    hasAlpha,
		IsSRGB:      true,
	}, nil
}

// concatIDAT joins the (non-owning) IDAT spans chunk.Parse collected into a
// single owned buffer; the façade is the layer that actually materializes
// this copy, keeping the spans themselves views into the input.
func concatIDAT(spans [][]byte) []byte {
	total := 0
	for _, s := range spans {
		total += len(s)
	}
	out := make([]byte, 0, total)
	for _, s := range spans {
		out = append(out, s...)
	}
	return out
}
