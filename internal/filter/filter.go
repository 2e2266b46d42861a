// Package filter reverses PNG's per-scanline prediction filters, turning
// the raw inflated byte stream (one filter-type byte plus bpp*width pixel
// bytes per row) into a tightly packed pixel raster.
package filter

import "github.com/adpollak/carrotpng/internal/decodeerr"

// Reverse undoes scanline filtering over filtered (height rows of
// 1+width*bpp bytes each: a leading filter-type byte then the row's
// pixel bytes) and returns a packed width*height*bpp buffer with the
// filter bytes stripped out.
func Reverse(filtered []byte, width, height, bpp int) ([]byte, error) {
	rowBytes := 1 + width*bpp
	if len(filtered) != height*rowBytes {
		return nil, decodeerr.ErrInvalidIDATStream
	}

	out := make([]byte, height*width*bpp)
	prior := make([]byte, width*bpp)

	for y := 0; y < height; y++ {
		row := filtered[y*rowBytes : (y+1)*rowBytes]
		src := row[1:]
		dst := out[y*width*bpp : (y+1)*width*bpp]

		switch row[0] {
		case 0: // None
			copy(dst, src)
		case 1: // Sub
			for x := 0; x < len(src); x++ {
				var left byte
				if x >= bpp {
					left = dst[x-bpp]
				}
				dst[x] = src[x] + left
			}
		case 2: // Up
			for x := 0; x < len(src); x++ {
				dst[x] = src[x] + prior[x]
			}
		case 3: // Average
			for x := 0; x < len(src); x++ {
				var left byte
				if x >= bpp {
					left = dst[x-bpp]
				}
				dst[x] = src[x] + byte((int(left)+int(prior[x]))/2)
			}
		case 4: // Paeth
			for x := 0; x < len(src); x++ {
				var left, upperLeft byte
				if x >= bpp {
					left = dst[x-bpp]
					upperLeft = prior[x-bpp]
				}
				dst[x] = src[x] + paeth(left, prior[x], upperLeft)
			}
		default:
			return nil, decodeerr.ErrUnsupportedFilter
		}

		copy(prior, dst)
	}

	return out, nil
}

// paeth is the PNG Paeth predictor: pick whichever of the left, above, or
// upper-left neighbor lies closest to a simple linear estimate, with ties
// broken in favor of left, then above, then upper-left.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
