// Package deflate inflates a zlib-wrapped DEFLATE stream (the concatenated
// payload of a PNG's IDAT chunks) into raw filtered scanline bytes.
package deflate

import (
	"hash/adler32"

	"github.com/adpollak/carrotpng/internal/bitreader"
	"github.com/adpollak/carrotpng/internal/decodeerr"
	"github.com/adpollak/carrotpng/internal/huffman"
)

// Options controls tolerance for implementation-defined corners of the
// format this decoder otherwise treats strictly.
type Options struct {
	// StrictTrailer rejects any slack bytes between the final DEFLATE
	// block and the trailing Adler-32 checksum. The default, false, skips
	// straight to the last 4 bytes of the stream for the checksum and
	// ignores anything in between.
	StrictTrailer bool
}

// RFC 1951 §3.2.6: fixed Huffman code lengths for the literal/length and
// distance alphabets used by BTYPE=1 blocks.
var (
	fixedLiteralLengths  = buildFixedLiteralLengths()
	fixedDistanceLengths = buildFixedDistanceLengths()

	fixedLiteralTable  = huffman.Build(fixedLiteralLengths)
	fixedDistanceTable = huffman.Build(fixedDistanceLengths)
)

func buildFixedLiteralLengths() []int {
	lens := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

func buildFixedDistanceLengths() []int {
	lens := make([]int, 30)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

// RFC 1951 §3.2.5: length and distance base values plus extra-bit counts.
var (
	lengthBase  = [29]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
	lengthExtra = [29]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}
	distBase    = [30]int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
	distExtra   = [30]int{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}
)

// Inflate decompresses a zlib stream (2-byte header, DEFLATE blocks,
// trailing 4-byte big-endian Adler-32) and returns exactly expectedSize
// bytes of decompressed data.
func Inflate(zlibData []byte, expectedSize int, opts Options) ([]byte, error) {
	if len(zlibData) < 6 {
		return nil, decodeerr.ErrInvalidIDATStream
	}

	cmf, flg := zlibData[0], zlibData[1]
	if cmf&0x0F != 8 {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	if flg&0x20 != 0 {
		// FDICT: a preset dictionary id follows the header. PNG never sets
		// this; treat it as a malformed stream rather than skip past it.
		return nil, decodeerr.ErrInvalidIDATStream
	}

	body := zlibData[2 : len(zlibData)-4]
	r := bitreader.New(body)
	out := make([]byte, 0, expectedSize)

	for {
		bfinal, ok := r.GetBits(1)
		if !ok {
			return nil, decodeerr.ErrInvalidIDATStream
		}
		btype, ok := r.GetBits(2)
		if !ok {
			return nil, decodeerr.ErrInvalidIDATStream
		}

		var err error
		switch btype {
		case 0:
			out, err = inflateStored(r, out)
		case 1:
			out, err = inflateHuffmanBlock(r, out, fixedLiteralTable, fixedDistanceTable)
		case 2:
			return nil, decodeerr.ErrUnsupportedCompressionFilter
		default:
			// BTYPE=3 is reserved by RFC 1951.
			return nil, decodeerr.ErrUnsupportedCompressionFilter
		}
		if err != nil {
			return nil, err
		}

		if bfinal != 0 {
			break
		}
	}

	if opts.StrictTrailer {
		// BytePos counts bytes physically pulled into the accumulator, which
		// runs ahead of the bitstream's actual logical position whenever
		// Peek9 has prefetched (up to 3 bytes) beyond what was consumed, so
		// the byte boundary has to be recovered from the bit accounting
		// rather than read off BytePos directly.
		consumedBits := r.BytePos()*8 - int(r.BitsBuffered())
		consumedBytes := (consumedBits + 7) / 8
		if consumedBytes != len(body) {
			return nil, decodeerr.ErrInvalidIDATStream
		}
	}

	// Adler-32 covers everything the stream decompressed to, so verify it
	// before trimming any excess down to the size the scanlines need.
	tail := zlibData[len(zlibData)-4:]
	wantAdler := uint32(tail[0])<<24 | uint32(tail[1])<<16 | uint32(tail[2])<<8 | uint32(tail[3])
	if adler32.Checksum(out) != wantAdler {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	if len(out) < expectedSize {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	return out[:expectedSize], nil
}

func inflateStored(r *bitreader.Reader, out []byte) ([]byte, error) {
	r.AlignToByte()
	lenField, ok := r.GetBits(16)
	if !ok {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	nlenField, ok := r.GetBits(16)
	if !ok {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	length, nlen := uint16(lenField), uint16(nlenField)
	if length != ^nlen {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	data, ok := r.ReadBytes(int(length))
	if !ok {
		return nil, decodeerr.ErrInvalidIDATStream
	}
	return append(out, data...), nil
}

func inflateHuffmanBlock(r *bitreader.Reader, out []byte, lit, dist *huffman.Table) ([]byte, error) {
	for {
		sym, ok := huffman.Decode(r, lit)
		if !ok {
			return nil, decodeerr.ErrInvalidIDATStream
		}

		switch {
		case sym == 256:
			return out, nil
		case sym < 256:
			out = append(out, byte(sym))
		default:
			idx := sym - 257
			if idx < 0 || idx >= len(lengthBase) {
				return nil, decodeerr.ErrInvalidIDATStream
			}
			length := lengthBase[idx]
			if n := lengthExtra[idx]; n > 0 {
				extra, ok := r.GetBits(uint(n))
				if !ok {
					return nil, decodeerr.ErrInvalidIDATStream
				}
				length += int(extra)
			}

			distSym, ok := huffman.Decode(r, dist)
			if !ok || distSym < 0 || distSym >= len(distBase) {
				return nil, decodeerr.ErrInvalidIDATStream
			}
			distance := distBase[distSym]
			if n := distExtra[distSym]; n > 0 {
				extra, ok := r.GetBits(uint(n))
				if !ok {
					return nil, decodeerr.ErrInvalidIDATStream
				}
				distance += int(extra)
			}
			if distance <= 0 || distance > len(out) {
				return nil, decodeerr.ErrInvalidIDATStream
			}

			// Byte-at-a-time, since a back-reference may overlap its own
			// source when distance < length (the classic RLE-via-LZ77
			// case) and each copied byte must see prior copies in this
			// same reference.
			src := len(out) - distance
			for i := 0; i < length; i++ {
				out = append(out, out[src+i])
			}
		}
	}
}
