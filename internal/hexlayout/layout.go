// Package hexlayout converts between board coordinates and screen pixels
// for a flat-topped hexagon grid. It has no graphics dependency.
package hexlayout

import (
	"math"

	"havannah_go/internal/game"
)

var sqrt3 = math.Sqrt(3)

// Layout places cell (0,0) at (OriginX, OriginY); Size is the distance from a
// cell centre to any of its corners.
type Layout struct {
	Radius           int
	Size             float64
	OriginX, OriginY float64
}

// Fit returns the largest layout of a board of the given radius that fits in
// a w×h area with margin pixels kept free on every side, centred.
func Fit(radius int, w, h, margin float64) Layout {
	boardW := float64(3*radius + 2)
	boardH := sqrt3 * float64(2*radius+1)
	size := math.Min((w-2*margin)/boardW, (h-2*margin)/boardH)
	if size < 1 {
		size = 1
	}
	return Layout{Radius: radius, Size: size, OriginX: w / 2, OriginY: h / 2}
}

// ToPixel returns the centre of cell c.
func (l Layout) ToPixel(c game.HexCoord) (float64, float64) {
	x := l.Size * 1.5 * float64(c.Q)
	y := l.Size * sqrt3 * (float64(c.R) + float64(c.Q)/2)
	return l.OriginX + x, l.OriginY + y
}

// FromPixel returns the cell whose hexagon contains (px, py). The cell may
// lie off the board.
func (l Layout) FromPixel(px, py float64) game.HexCoord {
	x := (px - l.OriginX) / l.Size
	y := (py - l.OriginY) / l.Size

	// 浮点轴向
	qf := x * 2 / 3
	rf := y/sqrt3 - qf/2

	// 立方整体取整
	rx, ry, _ := CubeRound(qf, rf, -qf-rf)
	return game.HexCoord{Q: rx, R: ry}
}

// Pick is FromPixel restricted to the board.
func (l Layout) Pick(px, py float64) (game.HexCoord, bool) {
	c := l.FromPixel(px, py)
	return c, game.InBounds(c, l.Radius)
}

// Corners returns the six vertices of cell c, scaled by f (1 for the full hexagon).
func (l Layout) Corners(c game.HexCoord, f float64) [6][2]float64 {
	cx, cy := l.ToPixel(c)
	var pts [6][2]float64
	for i := range pts {
		a := math.Pi / 3 * float64(i)
		pts[i] = [2]float64{cx + l.Size*f*math.Cos(a), cy + l.Size*f*math.Sin(a)}
	}
	return pts
}

// CubeRound rounds fractional cube coordinates to the nearest cell,
// fixing up the component with the largest rounding error.
func CubeRound(xf, yf, zf float64) (int, int, int) {
	rx := math.Round(xf)
	ry := math.Round(yf)
	rz := math.Round(zf)

	dx := math.Abs(rx - xf)
	dy := math.Abs(ry - yf)
	dz := math.Abs(rz - zf)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return int(rx), int(ry), int(rz)
}
