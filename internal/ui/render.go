// File /ui/render.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"havannah_go/internal/game"
)

var (
	interiorFill = color.RGBA{0xd8, 0xb4, 0x7a, 0xff}
	edgeFill     = color.RGBA{0xc4, 0x9a, 0x5c, 0xff}
	cornerFill   = color.RGBA{0xa8, 0x7c, 0x40, 0xff}
	hoverFill    = color.RGBA{0xf0, 0xd8, 0xa8, 0xff}
	gridLine     = color.RGBA{0x3a, 0x2a, 0x18, 0xff}
)

const maxBatchVertices = 60000

func zoneFill(z game.Zone) color.RGBA {
	switch z.Kind {
	case game.Corner:
		return cornerFill
	case game.Edge:
		return edgeFill
	}
	return interiorFill
}

func vertex(x, y float64, clr color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0,
		SrcY:   0,
		ColorR: float32(clr.R) / 0xff,
		ColorG: float32(clr.G) / 0xff,
		ColorB: float32(clr.B) / 0xff,
		ColorA: float32(clr.A) / 0xff,
	}
}

// appendHex 把一个六边形拆成“中心扇形”的 6 个三角形
func appendHex(vs []ebiten.Vertex, is []uint16, pts [6][2]float64, cx, cy float64, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	vs = append(vs, vertex(cx, cy, clr))
	for _, p := range pts {
		vs = append(vs, vertex(p[0], p[1], clr))
	}
	for i := uint16(0); i < 6; i++ {
		is = append(is, base, base+1+i, base+1+(i+1)%6)
	}
	return vs, is
}

// drawBoard 用 1x1 白图 + 顶点色一次性画出所有格子：先画深色底当描边，再画内层
func (gs *GameScreen) drawBoard(dst *ebiten.Image) {
	n := min(gs.board.Size(), maxBatchVertices/14+1)
	vs := make([]ebiten.Vertex, 0, 14*n)
	is := make([]uint16, 0, 36*n)
	radius := gs.board.Radius()

	for c := range gs.board.Cells() {
		cx, cy := gs.layout.ToPixel(c)
		vs, is = appendHex(vs, is, gs.layout.Corners(c, 1), cx, cy, gridLine)

		fill := zoneFill(game.Classify(c, radius))
		if gs.hover != nil && *gs.hover == c && gs.board.Owner(c) == game.NoPlayer {
			fill = hoverFill
		}
		vs, is = appendHex(vs, is, gs.layout.Corners(c, 0.92), cx, cy, fill)

		// 顶点索引是 uint16，大棋盘分批提交
		if len(vs) > maxBatchVertices {
			dst.DrawTriangles(vs, is, gs.white, nil)
			vs, is = vs[:0], is[:0]
		}
	}
	if len(vs) > 0 {
		dst.DrawTriangles(vs, is, gs.white, nil)
	}
}

func (gs *GameScreen) drawCentered(dst, img *ebiten.Image, c game.HexCoord) {
	cx, cy := gs.layout.ToPixel(c)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(cx-float64(w)/2, cy-float64(h)/2)
	dst.DrawImage(img, op)
}

func (gs *GameScreen) drawStones(dst *ebiten.Image) {
	for c, p := range gs.board.Cells() {
		if img, ok := gs.stoneImages[p]; ok {
			gs.drawCentered(dst, img, c)
		}
	}
	if last, ok := gs.board.LastMove(); ok {
		gs.drawCentered(dst, gs.lastMarker, last)
	}
}

func (gs *GameScreen) statusLine() string {
	st := gs.board.State()
	switch st.Kind {
	case game.Won:
		return fmt.Sprintf("%v wins by %v!  [R] new game", st.Winner, st.Reason)
	case game.Drawn:
		return "Draw, the board is full.  [R] new game"
	}
	line := fmt.Sprintf("Move %d  %v to play", gs.board.Turn()+1, gs.board.ToMove())
	if _, ok := gs.aiPlayer[gs.board.ToMove()]; ok {
		line += "  (thinking...)"
	}
	if gs.hover != nil {
		line += "  " + game.FormatCell(*gs.hover, gs.board.Radius())
	}
	if gs.message != "" {
		line += "  " + gs.message
	}
	return line
}

func (gs *GameScreen) drawStatus(dst *ebiten.Image) {
	clr := color.Color(color.White)
	if gs.board.State().IsTerminal() {
		clr = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	}
	drawTextCentered(dst, gs.statusLine(), gs, WindowWidth/2, statusBarH/2, clr)
}

// drawTextCentered 以 (cx, cy) 为中心画一行字
func drawTextCentered(dst *ebiten.Image, s string, gs *GameScreen, cx, cy int, clr color.Color) {
	b := text.BoundString(gs.fontFace, s)
	x := cx - b.Dx()/2 - b.Min.X
	y := cy - b.Dy()/2 - b.Min.Y
	text.Draw(dst, s, gs.fontFace, x, y, clr)
}
