package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adpollak/carrotpng/internal/bitreader"
)

// Four symbols of equal length, the smallest complete canonical code
// (Kraft sum exactly 1); variable-length shapes are covered below.
func TestBuildAndDecodeEqualLength(t *testing.T) {
	lengths := []int{2, 2, 2, 2}
	table := Build(lengths)

	// Canonical codes for four length-2 symbols: 00,01,10,11 assigned to
	// symbols 0,1,2,3 in order.
	for wantSym, code := range []uint32{0b00, 0b01, 0b10, 0b11} {
		reversed := bitreader.BitReverse(code, 2)
		r := bitreader.New([]byte{byte(reversed)})
		got, ok := Decode(r, table)
		require.True(t, ok)
		require.Equal(t, wantSym, got)
	}
}

func TestBuildAndDecodeVariableLength(t *testing.T) {
	// Classic canonical example (RFC 1951-style): symbol lengths 3,3,3,3,3,2,4,4
	// for symbols A..H. Kraft sum = 5/8 + 1/4 + 2/16 = 1, exact.
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	table := Build(lengths)

	codes := canonicalCodesForTest(lengths)
	for sym, length := range lengths {
		reversed := bitreader.BitReverse(uint32(codes[sym]), length)
		// Pack the reversed code into a byte stream, LSB first, with
		// trailing zero padding.
		data := packBits(reversed, length)
		r := bitreader.New(data)
		got, ok := Decode(r, table)
		require.True(t, ok, "symbol %d", sym)
		require.Equal(t, sym, got, "symbol %d", sym)
	}
}

func TestDecodeSlowPathForCodesLongerThanFastBits(t *testing.T) {
	// Symbols 3 and 4 get 10-bit codes, well past FastBits (9), so they can
	// only ever be reached through the bit-by-bit slow path.
	lengths := []int{1, 2, 3, 10, 10}
	table := Build(lengths)
	codes := canonicalCodesForTest(lengths)

	for _, sym := range []int{0, 1, 2, 3, 4} {
		reversed := bitreader.BitReverse(uint32(codes[sym]), lengths[sym])
		data := packBits(reversed, lengths[sym])
		r := bitreader.New(data)
		got, ok := Decode(r, table)
		require.True(t, ok, "symbol %d", sym)
		require.Equal(t, sym, got, "symbol %d", sym)
	}
}

func TestDecodeUnderflow(t *testing.T) {
	lengths := []int{2, 2, 2, 2}
	table := Build(lengths)
	r := bitreader.New(nil)
	_, ok := Decode(r, table)
	require.False(t, ok)
}

func TestFixedLiteralTableCoversAllSymbols(t *testing.T) {
	lengths := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lengths[i] = 8
	}
	table := Build(lengths)
	codes := canonicalCodesForTest(lengths)

	for _, sym := range []int{0, 143, 144, 255, 256, 279, 280, 287} {
		reversed := bitreader.BitReverse(uint32(codes[sym]), lengths[sym])
		data := packBits(reversed, lengths[sym])
		r := bitreader.New(data)
		got, ok := Decode(r, table)
		require.True(t, ok)
		require.Equal(t, sym, got)
	}
}

func TestFixedDistanceTableAllLengthFiveCodes(t *testing.T) {
	lengths := make([]int, 30)
	for i := range lengths {
		lengths[i] = 5
	}
	table := Build(lengths)
	codes := canonicalCodesForTest(lengths)

	for sym := 0; sym < 30; sym++ {
		reversed := bitreader.BitReverse(uint32(codes[sym]), 5)
		data := packBits(reversed, 5)
		r := bitreader.New(data)
		got, ok := Decode(r, table)
		require.True(t, ok, "distance symbol %d", sym)
		require.Equal(t, sym, got, "distance symbol %d", sym)
	}
}

// canonicalCodesForTest independently assigns RFC 1951 §3.2.2 canonical
// codes, used only to build known bit patterns for the tests above.
func canonicalCodesForTest(lengths []int) []int {
	const maxBits = 15
	var blCount [maxBits + 1]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	var nextCode [maxBits + 1]int
	code := 0
	for bits := 1; bits <= maxBits; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	codes := make([]int, len(lengths))
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		codes[i] = nextCode[l]
		nextCode[l]++
	}
	return codes
}

func packBits(value uint32, nbits int) []byte {
	out := []byte{0, 0, 0}
	for i := 0; i < nbits; i++ {
		if value&(1<<uint(i)) != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
