package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want HexCoord
	}{
		{"a1", HexCoord{-3, 0}},
		{"d4", HexCoord{0, 0}},
		{"D4", HexCoord{0, 0}},
		{" g7 ", HexCoord{3, 0}},
		{"a4", HexCoord{0, -3}},
		{"g1", HexCoord{-3, 6}},
		{"c5", HexCoord{1, -2}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCell(tc.in, 3)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCellErrors(t *testing.T) {
	for _, in := range []string{"", "a", "4d", "ax", "a-1", "a+1", "1", "é3"} {
		_, err := ParseCell(in, 3)
		assert.ErrorIs(t, err, ErrBadNotation, "%q", in)
	}
}

func TestFormatCellRoundTrip(t *testing.T) {
	for radius := 1; radius <= 12; radius++ {
		seen := map[string]bool{}
		for _, c := range layoutFor(radius).coords {
			s := FormatCell(c, radius)
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true

			back, err := ParseCell(s, radius)
			require.NoError(t, err)
			assert.Equal(t, c, back, "radius %d %s", radius, s)
		}
	}
	assert.Equal(t, "a11", FormatCell(HexCoord{0, -10}, 10))
}

func TestMoveAtNotation(t *testing.T) {
	b := MustNewBoard(3)
	_, err := b.MoveAtNotation("d4")
	require.NoError(t, err)
	assert.Equal(t, Black, b.Owner(HexCoord{0, 0}))

	_, err = b.MoveAtNotation("d4")
	assert.ErrorIs(t, err, ErrCellOccupied)

	// well-formed but off the board
	_, err = b.MoveAtNotation("a7")
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = b.MoveAtNotation("zz")
	assert.ErrorIs(t, err, ErrBadNotation)
	assert.Equal(t, 1, b.Turn())
}
