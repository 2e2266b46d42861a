package carrotpng

// Header is the subset of IHDR fields exposed independent of a full pixel
// decode, for callers that only need the image's dimensions and format.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// Image is a decoded raster: 8-bit-per-channel RGB (3 bytes/pixel) or RGBA
// (4 bytes/pixel), row-major, no padding beyond StrideBytes.
type Image struct {
	Width       int
	Height      int
	Pixels      []byte
	StrideBytes int
	// HasAlpha reports whether Pixels is RGBA (true) or RGB (false).
	HasAlpha bool
	// IsSRGB is always true: this decoder treats every image it produces as
	// sRGB-encoded, regardless of whatever (unparsed) gAMA/sRGB/iCCP chunks
	// the source file carried.
	IsSRGB bool
}

// Options configures Decode's handling of one underspecified corner of the
// zlib framing: how strictly to treat the boundary between the final
// DEFLATE block and the trailing Adler-32 checksum.
type Options struct {
	// StrictTrailer rejects IDAT streams with slack bytes between the end
	// of the last DEFLATE block and the Adler-32 trailer. Default false:
	// such streams are tolerated, and the checksum is read from the last
	// 4 bytes of the zlib stream regardless.
	StrictTrailer bool
}
