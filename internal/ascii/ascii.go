// Package ascii draws a board as text: one line per rank, stones offset by
// half a cell per line, file numbers along the top right edge.
package ascii

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"havannah_go/internal/game"
)

// Styles contains styling for board display
type Styles struct {
	Black  lipgloss.Style
	White  lipgloss.Style
	Empty  lipgloss.Style
	Last   lipgloss.Style // 叠加在最后一手上
	Label  lipgloss.Style
	Status lipgloss.Style
	Winner lipgloss.Style
}

// NewStyles creates the coloured style set used on terminals.
func NewStyles() *Styles {
	return &Styles{
		Black: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		White: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5F5F5")).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Last: lipgloss.NewStyle().
			Underline(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B48EAD")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
	}
}

// NewPlainStyles creates a style set that adds no escape codes.
func NewPlainStyles() *Styles {
	s := lipgloss.NewStyle()
	return &Styles{Black: s, White: s, Empty: s, Last: s, Label: s, Status: s, Winner: s}
}

const (
	blackGlyph = "X"
	whiteGlyph = "O"
	emptyGlyph = "."
)

type item struct {
	col   int
	width int
	text  string
}

// column maps a cell to its horizontal position; cells of a line are 2 apart.
func column(x, z, radius int) int { return 2*x + z + 2*radius }

// Render draws b. Line 0 holds file numbers, then one line per rank 'a'...
func Render(b *game.Board, st *Styles) string {
	if st == nil {
		st = NewPlainStyles()
	}
	radius := b.Radius()
	last, moved := b.LastMove()

	// rows[k] is z = radius+1-k
	rows := make([][]item, 2*radius+2)
	rowOf := func(z int) int { return radius + 1 - z }

	for c, p := range b.Cells() {
		x, _, z := c.Cube()
		glyph, style := emptyGlyph, st.Empty
		switch p {
		case game.Black:
			glyph, style = blackGlyph, st.Black
		case game.White:
			glyph, style = whiteGlyph, st.White
		}
		text := style.Render(glyph)
		if moved && c == last {
			text = st.Last.Inherit(style).Render(glyph)
		}
		k := rowOf(z)
		rows[k] = append(rows[k], item{col: column(x, z, radius), width: 1, text: text})
	}

	for file := 1; file <= 2*radius+1; file++ {
		x := file - 1 - radius
		z := min(radius, radius-x) + 1
		label := fmt.Sprint(file)
		k := rowOf(z)
		rows[k] = append(rows[k], item{col: column(x, z, radius), width: len(label), text: st.Label.Render(label)})
	}

	var sb strings.Builder
	for k, row := range rows {
		if k == 0 {
			sb.WriteString("   ")
		} else {
			sb.WriteString(st.Label.Render(string(rune('a' + k - 1))))
			sb.WriteString("  ")
		}
		sort.Slice(row, func(i, j int) bool { return row[i].col < row[j].col })
		pos := 0
		for _, it := range row {
			if it.col > pos {
				sb.WriteString(strings.Repeat(" ", it.col-pos))
				pos = it.col
			}
			sb.WriteString(it.text)
			pos += it.width
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Status describes whose turn it is or how the game ended.
func Status(b *game.Board, st *Styles) string {
	if st == nil {
		st = NewPlainStyles()
	}
	s := b.State()
	switch s.Kind {
	case game.Won:
		return st.Winner.Render(fmt.Sprintf("%v wins by %v after %d moves", s.Winner, s.Reason, b.Turn()+1))
	case game.Drawn:
		return st.Winner.Render("draw: the board is full")
	}
	return st.Status.Render(fmt.Sprintf("move %d, %v to play", b.Turn()+1, b.ToMove()))
}

// Glyph returns the character used for p.
func Glyph(p game.Player) string {
	switch p {
	case game.Black:
		return blackGlyph
	case game.White:
		return whiteGlyph
	}
	return emptyGlyph
}
