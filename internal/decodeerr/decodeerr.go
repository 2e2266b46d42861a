// Package decodeerr holds the sentinel errors shared by every decode stage.
// Keeping them in a leaf package (no imports of its own) lets both
// internal/* packages and the root façade compare against the exact same
// values with errors.Is, without an import cycle back through the façade.
package decodeerr

// DecodeError is the error type every decode-stage failure in this module
// returns: one fixed value per failure condition, each carrying its own
// human-readable message.
type DecodeError struct {
	msg string
}

func (e *DecodeError) Error() string { return e.msg }

var (
	ErrInvalidSignature             = &DecodeError{msg: "not a PNG file: bad signature"}
	ErrFileTooShort                 = &DecodeError{msg: "file truncated mid-chunk"}
	ErrInvalidChunkLength           = &DecodeError{msg: "chunk length field inconsistent with file size"}
	ErrCRCMismatch                  = &DecodeError{msg: "chunk failed CRC-32 check"}
	ErrMissingIHDR                  = &DecodeError{msg: "no IHDR chunk present"}
	ErrDuplicateIHDR                = &DecodeError{msg: "more than one IHDR chunk"}
	ErrUnexpectedChunkOrder         = &DecodeError{msg: "chunk appeared out of the order PNG requires"}
	ErrNoIEND                       = &DecodeError{msg: "stream ended without an IEND chunk"}
	ErrNoIDATChunks                 = &DecodeError{msg: "no IDAT chunks present"}
	ErrInvalidIDATStream            = &DecodeError{msg: "IDAT payload is not a valid zlib/DEFLATE stream"}
	ErrInvalidDimensions            = &DecodeError{msg: "image width or height is zero"}
	ErrUnsupportedColorType         = &DecodeError{msg: "only truecolor and truecolor-with-alpha are supported"}
	ErrUnsupportedBitDepth          = &DecodeError{msg: "only 8-bit samples are supported"}
	ErrUnsupportedCompressionFilter = &DecodeError{msg: "uses a compression or filtering feature outside the supported profile"}
	ErrUnsupportedFilter            = &DecodeError{msg: "unrecognized scanline filter type byte"}
)
