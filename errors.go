package carrotpng

import (
	"errors"

	"github.com/adpollak/carrotpng/internal/decodeerr"
)

// DecodeError is the error type every Decode/ReadHeader/DecodeFile failure
// returns: one fixed value per failure condition, each carrying its own
// human-readable message.
type DecodeError = decodeerr.DecodeError

// Sentinel errors, one per failure condition. Compare with
// errors.Is (including against an error this package returned wrapped in
// github.com/pkg/errors context) since these are the exact values every
// layer below the façade returns, never copies of them.
var (
	ErrInvalidSignature             = decodeerr.ErrInvalidSignature
	ErrFileTooShort                 = decodeerr.ErrFileTooShort
	ErrInvalidChunkLength           = decodeerr.ErrInvalidChunkLength
	ErrCRCMismatch                  = decodeerr.ErrCRCMismatch
	ErrMissingIHDR                  = decodeerr.ErrMissingIHDR
	ErrDuplicateIHDR                = decodeerr.ErrDuplicateIHDR
	ErrUnexpectedChunkOrder         = decodeerr.ErrUnexpectedChunkOrder
	ErrNoIEND                       = decodeerr.ErrNoIEND
	ErrNoIDATChunks                 = decodeerr.ErrNoIDATChunks
	ErrInvalidIDATStream            = decodeerr.ErrInvalidIDATStream
	ErrInvalidDimensions            = decodeerr.ErrInvalidDimensions
	ErrUnsupportedColorType         = decodeerr.ErrUnsupportedColorType
	ErrUnsupportedBitDepth          = decodeerr.ErrUnsupportedBitDepth
	ErrUnsupportedCompressionFilter = decodeerr.ErrUnsupportedCompressionFilter
	ErrUnsupportedFilter            = decodeerr.ErrUnsupportedFilter
)

// DescribeError returns a *DecodeError's own human-readable message (found
// via errors.As, so an error this package wrapped in pkg/errors context
// still resolves), or err.Error() for anything else.
func DescribeError(err error) string {
	if err == nil {
		return "ok"
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
