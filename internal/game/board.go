// File game/board.go
package game

import (
	"fmt"
	"iter"
	"sync"
)

// stone is one cell of the board: empty when owner is NoPlayer.
type stone struct {
	owner Player
	group GroupID
}

// Board is a Havannah position on a hexagon of a given radius.
// Cells satisfying max(|q|, |r|, |q+r|) <= radius are on the board.
type Board struct {
	lay    *layout
	cells  []stone // 定长：CellCount(radius)
	groups *Groups
	toMove Player
	turn   int
	state  GameState
	last   HexCoord
	moved  bool
	hash   uint64
}

var boardPool = sync.Pool{
	New: func() any {
		return &Board{}
	},
}

// NewBoard creates an empty board with Black to move.
func NewBoard(radius int) (*Board, error) {
	if radius < 1 {
		return nil, fmt.Errorf("new board with radius %d: %w", radius, ErrBadRadius)
	}
	lay := layoutFor(radius)
	b := &Board{
		lay:    lay,
		cells:  make([]stone, len(lay.coords)),
		groups: NewGroups(),
		toMove: Black,
	}
	for i := range b.cells {
		b.cells[i] = stone{owner: NoPlayer, group: NoGroup}
	}
	return b, nil
}

// MustNewBoard is NewBoard for radii known to be valid.
func MustNewBoard(radius int) *Board {
	b, err := NewBoard(radius)
	if err != nil {
		panic(err)
	}
	return b
}

// MoveAt places a stone for the player to move at c and returns the new state.
//
// Rejected moves leave the board untouched. A winning move stays on the board
// but does not advance the turn or the player to move.
func (b *Board) MoveAt(c HexCoord) (GameState, error) {
	if b.state.IsTerminal() {
		return b.state, fmt.Errorf("move at %v: %w", c, ErrGameOver)
	}
	i, ok := b.lay.indexOf[c]
	if !ok {
		return b.state, fmt.Errorf("move at %v: %w", c, ErrOutOfBounds)
	}
	if b.cells[i].owner != NoPlayer {
		return b.state, fmt.Errorf("move at %v: %w", c, ErrCellOccupied)
	}

	me := b.toMove
	h := b.joinFriendlyGroups(i, me)
	b.place(i, me, h)

	switch {
	case b.groups.CheckRing(h, c):
		b.state = Win(me, Ring)
	case b.groups.CheckBridge(h):
		b.state = Win(me, Bridge)
	case b.groups.CheckFork(h):
		b.state = Win(me, Fork)
	}
	if b.state.IsTerminal() {
		return b.state, nil
	}

	b.turn++
	if b.turn == len(b.cells) {
		b.state = Draw
		return b.state, nil
	}
	b.toMove = me.Flip()
	return b.state, nil
}

// joinFriendlyGroups returns the group a stone of p at index i belongs to,
// merging every distinct friendly neighbor group into the first one found.
func (b *Board) joinFriendlyGroups(i int, p Player) GroupID {
	survivor := NoGroup
	for _, j := range b.lay.neighI[i] {
		if j < 0 || b.cells[j].owner != p {
			continue
		}
		h := b.groups.Find(b.cells[j].group)
		if survivor == NoGroup {
			survivor = h
			continue
		}
		// Merge 对同一组是空操作，无需另外去重
		b.groups.Merge(survivor, h)
	}
	if survivor == NoGroup {
		survivor = b.groups.NewGroup()
	}
	return survivor
}

// place writes the stone and keeps the hash and group bookkeeping in step.
func (b *Board) place(i int, p Player, h GroupID) {
	c := b.lay.coords[i]
	b.cells[i] = stone{owner: p, group: h}
	b.hash ^= b.lay.zobKey(i, p)
	b.groups.AddStone(h, c, b.lay.radius)
	b.last = c
	b.moved = true
}

// Radius returns the board radius.
func (b *Board) Radius() int { return b.lay.radius }

// Size returns the number of cells on the board.
func (b *Board) Size() int { return len(b.cells) }

// ToMove returns the player whose turn it is (the winner, once won).
func (b *Board) ToMove() Player { return b.toMove }

// Turn returns the number of completed, non-winning moves.
func (b *Board) Turn() int { return b.turn }

// State returns the current game state.
func (b *Board) State() GameState { return b.state }

// LastMove returns the most recent stone, if any.
func (b *Board) LastMove() (HexCoord, bool) { return b.last, b.moved }

// Hash 返回当前局面的 Zobrist 哈希：相同的落子集合得到相同的值。
func (b *Board) Hash() uint64 { return b.hash }

// InBounds reports whether c is a cell of this board.
func (b *Board) InBounds(c HexCoord) bool {
	_, ok := b.lay.indexOf[c]
	return ok
}

// Owner returns the player holding c, or NoPlayer for an empty or off-board cell.
func (b *Board) Owner(c HexCoord) Player {
	i, ok := b.lay.indexOf[c]
	if !ok {
		return NoPlayer
	}
	return b.cells[i].owner
}

// Cells iterates over every cell of the board with its owner, in a fixed order.
func (b *Board) Cells() iter.Seq2[HexCoord, Player] {
	return func(yield func(HexCoord, Player) bool) {
		for i, s := range b.cells {
			if !yield(b.lay.coords[i], s.owner) {
				return
			}
		}
	}
}

// EmptyCells returns every empty coordinate, in the same order as Cells.
func (b *Board) EmptyCells() []HexCoord {
	out := make([]HexCoord, 0, len(b.cells)-b.turn)
	for i, s := range b.cells {
		if s.owner == NoPlayer {
			out = append(out, b.lay.coords[i])
		}
	}
	return out
}

// CountStones returns the number of stones p has on the board.
func (b *Board) CountStones(p Player) int {
	n := 0
	for _, s := range b.cells {
		if s.owner == p {
			n++
		}
	}
	return n
}

// GroupInfo summarises the group holding a stone.
type GroupInfo struct {
	Owner   Player
	Stones  []HexCoord
	Edges   uint8
	Corners uint8
}

// GroupAt returns the group that the stone at c belongs to.
func (b *Board) GroupAt(c HexCoord) (GroupInfo, bool) {
	i, ok := b.lay.indexOf[c]
	if !ok || b.cells[i].owner == NoPlayer {
		return GroupInfo{}, false
	}
	h := b.cells[i].group
	return GroupInfo{
		Owner:   b.cells[i].owner,
		Stones:  append([]HexCoord(nil), b.groups.Stones(h)...),
		Edges:   b.groups.Edges(h),
		Corners: b.groups.Corners(h),
	}, true
}

// Clone returns an independent copy of the board.
// Boards obtained from Clone may be handed back with Release.
func (b *Board) Clone() *Board {
	nb := boardPool.Get().(*Board)
	if cap(nb.cells) < len(b.cells) {
		nb.cells = make([]stone, len(b.cells))
	}
	nb.cells = nb.cells[:len(b.cells)]
	copy(nb.cells, b.cells)
	nb.lay = b.lay
	nb.groups = b.groups.Clone()
	nb.toMove = b.toMove
	nb.turn = b.turn
	nb.state = b.state
	nb.last = b.last
	nb.moved = b.moved
	nb.hash = b.hash
	return nb
}

// Release returns a board that is no longer used to the clone pool.
func (b *Board) Release() {
	b.groups = nil
	boardPool.Put(b)
}

func (b *Board) String() string {
	return fmt.Sprintf("Board(r=%d, turn=%d, %v to move, %v)", b.lay.radius, b.turn, b.toMove, b.state)
}
