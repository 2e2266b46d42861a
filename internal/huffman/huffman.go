// Package huffman builds canonical Huffman decoding tables and decodes
// symbols from a bitreader.Reader, the machinery DEFLATE's fixed and
// (eventually) dynamic block types both decode through.
package huffman

import "github.com/adpollak/carrotpng/internal/bitreader"

// FastBits is the width of the direct-mapped fast-decode table: any code of
// this length or shorter decodes in one table lookup instead of a bit-by-bit
// walk.
const FastBits = 9

const maxBits = 15

// Table is a canonical Huffman decoding table built from a list of per-symbol
// code lengths (0 meaning "symbol unused").
type Table struct {
	// Fast maps the next FastBits bits of input (LSB first) directly to a
	// packed (length<<9 | symbol) entry, for every symbol whose code is no
	// longer than FastBits. A zero entry means "no fast-path match, fall
	// back to the bit-by-bit walk".
	Fast [1 << FastBits]uint16

	// Count[l] is the number of symbols with code length l.
	Count [maxBits + 1]int

	// Symbol lists symbols grouped by code length (ascending), and within
	// each length group in ascending symbol order, matching the order
	// canonical codes are assigned in.
	Symbol []int
}

// Build constructs a canonical Huffman table from per-symbol code lengths.
// lengths[i] is the bit length of symbol i's code, or 0 if symbol i is
// unused.
func Build(lengths []int) *Table {
	t := &Table{Symbol: make([]int, 0, len(lengths))}

	for _, l := range lengths {
		if l > 0 {
			t.Count[l]++
		}
	}

	// Canonical code assignment, RFC 1951 §3.2.2: codes of a given length
	// are consecutive, and the first code of each length is derived from
	// the count of shorter codes.
	nextCode := make([]int, maxBits+1)
	code := 0
	for l := 1; l <= maxBits; l++ {
		code = (code + t.Count[l-1]) << 1
		nextCode[l] = code
	}

	// Symbols grouped by length, ascending within each group; offsets into
	// this grouping double as the "index" the slow decode path walks.
	offset := make([]int, maxBits+2)
	for l := 1; l <= maxBits; l++ {
		offset[l+1] = offset[l] + t.Count[l]
	}
	t.Symbol = make([]int, len(lengths))
	cursor := append([]int(nil), offset...)
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		t.Symbol[cursor[l]] = sym
		cursor[l]++
	}

	// Fast table: every symbol whose code fits within FastBits gets every
	// entry whose low bits match its (bit-reversed) code populated, across
	// the full 512-entry range, regardless of the code's actual length —
	// unlike a scheme that only fills entries up to a per-table bit-width
	// ceiling, which leaves most of a short, low-length-spread table (e.g.
	// all-length-5 codes) unpopulated and routes nearly every decode
	// through the slow path by accident.
	assigned := append([]int(nil), nextCode...)
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c := assigned[l]
		assigned[l]++
		if l <= FastBits {
			rev := int(bitreader.BitReverse(uint32(c), l))
			incr := 1 << uint(l)
			entry := uint16(l<<9 | sym)
			for j := rev; j < (1 << FastBits); j += incr {
				t.Fast[j] = entry
			}
		}
	}

	return t
}

// Decode reads one symbol from r using t, trying the fast direct-mapped
// table first and falling back to a bit-by-bit canonical walk. Returns
// ok=false on stream underflow or a corrupt prefix that matches no code.
func Decode(r *bitreader.Reader, t *Table) (int, bool) {
	peek, avail := r.Peek9()
	if avail >= FastBits {
		if entry := t.Fast[peek]; entry != 0 {
			length := entry >> 9
			r.Drop(uint(length))
			return int(entry & 0x1FF), true
		}
	}

	code, first, index := 0, 0, 0
	for length := 1; length <= maxBits; length++ {
		bit, ok := r.GetBits(1)
		if !ok {
			return -1, false
		}
		code |= int(bit)
		count := t.Count[length]
		if code-count < first {
			return t.Symbol[index+code-first], true
		}
		index += count
		first += count
		first <<= 1
		code <<= 1
	}
	return -1, false
}
