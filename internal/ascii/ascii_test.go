package ascii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"havannah_go/internal/game"
)

func TestRenderEmptyRadiusOne(t *testing.T) {
	b := game.MustNewBoard(1)
	want := "" +
		"     1 2\n" +
		"a   . . 3\n" +
		"b  . . .\n" +
		"c   . .\n"
	assert.Equal(t, want, Render(b, NewPlainStyles()))
}

func TestRenderStones(t *testing.T) {
	b := game.MustNewBoard(3)
	for _, s := range []string{"d4", "a1", "g7", "d5"} {
		_, err := b.MoveAtNotation(s)
		require.NoError(t, err)
	}
	out := Render(b, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2*3+2)

	assert.Equal(t, 2, strings.Count(out, "X"))
	assert.Equal(t, 2, strings.Count(out, "O"))
	assert.Equal(t, b.Size()-4, strings.Count(out, "."))

	// a1 is White, g7 is Black
	assert.True(t, strings.HasPrefix(lines[1], "a     O"), lines[1])
	assert.True(t, strings.HasSuffix(lines[7], "X"), lines[7])
	assert.Contains(t, lines[4], "X O")
}

func TestStatus(t *testing.T) {
	b := game.MustNewBoard(2)
	assert.Equal(t, "move 1, Black to play", Status(b, nil))

	for _, c := range []game.HexCoord{{Q: -2, R: 2}, {Q: 1, R: 0}, {Q: -2, R: 1}, {Q: 1, R: -1}, {Q: -2, R: 0}} {
		_, err := b.MoveAt(c)
		require.NoError(t, err)
	}
	assert.Equal(t, "Black wins by bridge after 5 moves", Status(b, NewPlainStyles()))
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "X", Glyph(game.Black))
	assert.Equal(t, "O", Glyph(game.White))
	assert.Equal(t, ".", Glyph(game.NoPlayer))
}
