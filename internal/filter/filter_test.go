package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adpollak/carrotpng/internal/decodeerr"
)

func TestReverseNoneFilter(t *testing.T) {
	// 2x1 RGB image, filter type 0 (None) on its one row.
	filtered := []byte{0, 10, 20, 30, 40, 50, 60}
	out, err := Reverse(filtered, 2, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 40, 50, 60}, out)
}

func TestReverseSubFilter(t *testing.T) {
	// 2x1 RGB: raw pixel 0 = (10,20,30); pixel1 stored as delta from pixel0.
	filtered := []byte{1, 10, 20, 30, 5, 5, 5}
	out, err := Reverse(filtered, 2, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 15, 25, 35}, out)
}

func TestReverseUpFilter(t *testing.T) {
	// Row 0 is None with known pixels; row 1 is Up, storing delta from row 0.
	filtered := []byte{
		0, 10, 20, 30,
		2, 5, 5, 5,
	}
	out, err := Reverse(filtered, 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 15, 25, 35}, out)
}

func TestReverseAverageFilter(t *testing.T) {
	filtered := []byte{
		0, 10, 20, 30,
		3, 0, 0, 0,
	}
	out, err := Reverse(filtered, 1, 2, 3)
	require.NoError(t, err)
	// left=0 (no left neighbor, x<bpp), up=10/20/30, avg = floor((0+up)/2)
	require.Equal(t, []byte{10, 20, 30, 5, 10, 15}, out)
}

func TestReversePaethFilter(t *testing.T) {
	filtered := []byte{
		0, 10, 20, 30, 40, 50, 60, // row0: two RGB pixels
		4, 0, 0, 0, 0, 0, 0, // row1: Paeth, predictor should reconstruct from above
	}
	out, err := Reverse(filtered, 2, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 40, 50, 60}, out[0:6])
	// Row1 pixel0: a=0 (no left), b=10 (above), c=0 (no upper-left) -> predictor picks b=10.
	// Row1 pixel1: a=10 (left, already reconstructed), b=40 (above), c=10 (upper-left).
	require.Equal(t, byte(10), out[6])
	require.Equal(t, byte(20), out[7])
	require.Equal(t, byte(30), out[8])
}

func TestPaethTieBreakPrecedence(t *testing.T) {
	// a==b==c: predictor must return a (left), per the a<=b<=c precedence.
	require.Equal(t, byte(5), paeth(5, 5, 5))
}

func TestPaethPrefersAboveOverUpperLeft(t *testing.T) {
	// Constructed so pb < pa and pb <= pc.
	require.Equal(t, byte(10), paeth(0, 10, 0))
}

func TestReverseRejectsUnsupportedFilterType(t *testing.T) {
	filtered := []byte{7, 1, 2, 3}
	_, err := Reverse(filtered, 1, 1, 3)
	require.ErrorIs(t, err, decodeerr.ErrUnsupportedFilter)
}

func TestReverseRejectsWrongSize(t *testing.T) {
	_, err := Reverse([]byte{0, 1, 2}, 2, 1, 3)
	require.ErrorIs(t, err, decodeerr.ErrInvalidIDATStream)
}
