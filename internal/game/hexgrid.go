// File game/hexgrid.go
package game

import "fmt"

// HexCoord represents an axial hex coordinate (q, r).
// The implied cube coordinate is (x, y, z) = (q, r, -q-r).
type HexCoord struct {
	Q, R int
}

// S returns the third cube component, so that Q+R+S == 0.
func (c HexCoord) S() int { return -c.Q - c.R }

// Cube returns the cube form (x, y, z) of c.
func (c HexCoord) Cube() (x, y, z int) { return c.Q, c.R, c.S() }

func (c HexCoord) Add(d HexCoord) HexCoord {
	return HexCoord{c.Q + d.Q, c.R + d.R}
}

func (c HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Directions defines the 6 neighbor offsets in axial coordinates,
// in rotational order: Directions[(i+1)%6] is Directions[i] turned one step clockwise.
var Directions = [6]HexCoord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Neighbors returns the 6 adjacent coordinates of c, in Directions order.
// The result is not filtered by any board.
func Neighbors(c HexCoord) [6]HexCoord {
	var out [6]HexCoord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// InBounds reports whether c lies within the hexagon of the given radius.
func InBounds(c HexCoord, radius int) bool {
	return abs(c.Q) <= radius && abs(c.R) <= radius && abs(c.S()) <= radius
}

// Distance returns the hex (cube) distance between a and b.
func Distance(a, b HexCoord) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

// CellCount returns 1 + 3R(R+1), the number of cells on a board of radius R.
func CellCount(radius int) int {
	return 1 + 3*radius*(radius+1)
}

// ZoneKind tells whether a cell is interior, on an edge, or a corner.
type ZoneKind uint8

const (
	Interior ZoneKind = iota
	Edge
	Corner
)

func (k ZoneKind) String() string {
	switch k {
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return "interior"
	}
}

// Zone is the geometric class of a cell. Index is 0..5 for edges and corners,
// numbered clockwise; corner i sits between edge i and edge (i+1)%6.
type Zone struct {
	Kind  ZoneKind
	Index int
}

// Classify returns the zone of an in-bounds coordinate. radius must be >= 1.
//
// Each cube component is divided by the radius (truncating toward zero):
// all zero is interior, exactly one nonzero is an edge, two nonzero is a corner.
func Classify(c HexCoord, radius int) Zone {
	x, y, z := c.Cube()
	x, y, z = x/radius, y/radius, z/radius

	nonzero := 0
	for _, v := range [3]int{x, y, z} {
		if v != 0 {
			nonzero++
		}
	}

	switch nonzero {
	case 0:
		return Zone{Kind: Interior}
	case 1:
		switch {
		case y > 0:
			return Zone{Edge, 0}
		case x < 0:
			return Zone{Edge, 1}
		case z > 0:
			return Zone{Edge, 2}
		case y < 0:
			return Zone{Edge, 3}
		case x > 0:
			return Zone{Edge, 4}
		default:
			return Zone{Edge, 5}
		}
	case 2:
		switch {
		case x < 0 && z == 0:
			return Zone{Corner, 0}
		case x < 0 && y == 0:
			return Zone{Corner, 1}
		case x == 0 && y < 0:
			return Zone{Corner, 2}
		case z == 0:
			return Zone{Corner, 3}
		case y == 0:
			return Zone{Corner, 4}
		default:
			return Zone{Corner, 5}
		}
	}
	panic(fmt.Sprintf("Classify: %v out of bounds for radius %d", c, radius))
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
