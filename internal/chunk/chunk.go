// Package chunk parses a PNG byte buffer into its signature, IHDR fields,
// and the ordered list of IDAT payload spans, enforcing chunk framing and
// ordering rules and validating every chunk's CRC-32.
package chunk

import (
	"bytes"
	"encoding/binary"

	"github.com/snksoft/crc"

	"github.com/adpollak/carrotpng/internal/decodeerr"
)

// Signature is the 8-byte sequence every PNG file must begin with.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Type identifies a chunk's 4-byte ASCII type code.
type Type struct{ slug string }

func (t Type) String() string { return t.slug }

var (
	TypeIHDR = Type{"IHDR"}
	TypeIDAT = Type{"IDAT"}
	TypeIEND = Type{"IEND"}
)

// knownAncillary is the registry of chunk types this decoder recognizes but
// does not interpret. A recognized chunk's payload is surfaced on
// Result.Ancillary, so a future interpretation (gAMA, sRGB) starts from the
// walk's bookkeeping instead of restructuring it; an unknown type is
// validated and then dropped entirely.
var knownAncillary = map[string]Type{}

func registerAncillary(slugs ...string) {
	for _, s := range slugs {
		knownAncillary[s] = Type{s}
	}
}

func init() {
	registerAncillary(
		"PLTE", "cHRM", "gAMA", "iCCP", "sBIT", "sRGB", "bKGD",
		"hIST", "tRNS", "pHYs", "sPLT", "tIME", "iTXt", "tEXt", "zTXt",
	)
}

// Header is the parsed IHDR record.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
	Populated         bool
}

// Ancillary is a recognized-but-uninterpreted chunk encountered during the
// walk: its type and a non-owning view of its payload.
type Ancillary struct {
	Type Type
	Data []byte
}

// Result is the outcome of a successful Parse.
type Result struct {
	Header Header
	// IDAT holds, in file order, non-owning slices of data pointing
	// directly into the buffer Parse was given.
	IDAT [][]byte
	// Ancillary holds, in file order, the recognized ancillary chunks that
	// were CRC-validated and skipped. Unknown chunk types are not recorded.
	Ancillary []Ancillary
}

// Parse walks a PNG's chunk stream starting at byte 0. When headerOnly is
// true, it returns as soon as IHDR is parsed, without requiring IDAT
// chunks or an IEND to be present (the contract ReadHeader needs); when
// false, it walks the full stream and requires a well-formed IEND plus at
// least one IDAT chunk.
func Parse(data []byte, headerOnly bool) (Result, error) {
	var res Result

	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return res, decodeerr.ErrInvalidSignature
	}

	pos := len(Signature)
	seenIHDR := false

	for pos < len(data) {
		if pos+8 > len(data) {
			return res, decodeerr.ErrFileTooShort
		}
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		typeBytes := data[pos+4 : pos+8]

		end := uint64(pos) + 8 + uint64(length) + 4
		if end > uint64(len(data)) {
			return res, decodeerr.ErrInvalidChunkLength
		}

		payload := data[pos+8 : pos+8+int(length)]
		storedCRC := binary.BigEndian.Uint32(data[pos+8+int(length) : int(end)])

		// The CRC covers type plus payload, which are contiguous in the
		// input, so no scratch copy is needed.
		if uint32(crc.CalculateCRC(crc.CRC32, data[pos+4:pos+8+int(length)])) != storedCRC {
			return res, decodeerr.ErrCRCMismatch
		}

		switch string(typeBytes) {
		case TypeIHDR.slug:
			if seenIHDR {
				return res, decodeerr.ErrDuplicateIHDR
			}
			if length != 13 {
				return res, decodeerr.ErrInvalidChunkLength
			}
			res.Header = Header{
				Width:             binary.BigEndian.Uint32(payload[0:4]),
				Height:            binary.BigEndian.Uint32(payload[4:8]),
				BitDepth:          payload[8],
				ColorType:         payload[9],
				CompressionMethod: payload[10],
				FilterMethod:      payload[11],
				InterlaceMethod:   payload[12],
				Populated:         true,
			}
			if res.Header.Width == 0 || res.Header.Height == 0 {
				return res, decodeerr.ErrInvalidDimensions
			}
			seenIHDR = true
			if headerOnly {
				return res, nil
			}

		case TypeIDAT.slug:
			if !seenIHDR {
				return res, decodeerr.ErrUnexpectedChunkOrder
			}
			res.IDAT = append(res.IDAT, payload)

		case TypeIEND.slug:
			if length != 0 {
				return res, decodeerr.ErrInvalidChunkLength
			}
			if !seenIHDR {
				return res, decodeerr.ErrMissingIHDR
			}
			if len(res.IDAT) == 0 {
				return res, decodeerr.ErrNoIDATChunks
			}
			return res, nil

		default:
			if t, ok := knownAncillary[string(typeBytes)]; ok {
				res.Ancillary = append(res.Ancillary, Ancillary{Type: t, Data: payload})
			}
		}

		pos = int(end)
	}

	if !seenIHDR {
		return res, decodeerr.ErrMissingIHDR
	}
	return res, decodeerr.ErrNoIEND
}
