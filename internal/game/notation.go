package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell notation is a rank letter followed by a file number, e.g. "d4".
// Rank 'a' is the row z = +R and advances as z decreases;
// file 1 is the column x = -R and advances with x.

// ParseCell converts notation such as "c4" into a coordinate on a board of
// the given radius. Well-formed text naming a cell off the board is returned
// as is; MoveAt rejects it with ErrOutOfBounds.
func ParseCell(s string, radius int) (HexCoord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return HexCoord{}, fmt.Errorf("parse %q: %w", s, ErrBadNotation)
	}
	file, err := strconv.Atoi(s[1:])
	if err != nil || file < 0 || s[1] == '+' || s[1] == '-' {
		return HexCoord{}, fmt.Errorf("parse %q: %w", s, ErrBadNotation)
	}
	x := file - 1 - radius
	z := radius - int(s[0]-'a')
	return HexCoord{Q: x, R: -x - z}, nil
}

// FormatCell is the inverse of ParseCell.
func FormatCell(c HexCoord, radius int) string {
	rank := 'a' + rune(radius-c.S())
	if rank < 'a' || rank > 'z' {
		return c.String()
	}
	return fmt.Sprintf("%c%d", rank, c.Q+radius+1)
}

// MoveAtNotation is MoveAt for a cell given in rank/file notation.
func (b *Board) MoveAtNotation(s string) (GameState, error) {
	c, err := ParseCell(s, b.Radius())
	if err != nil {
		return b.state, err
	}
	return b.MoveAt(c)
}
