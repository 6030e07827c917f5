// File game/group.go
package game

import (
	"fmt"
	"math/bits"
)

// GroupID is a handle into a Groups arena. A handle stays valid after its
// group is merged away: it then forwards to the surviving group.
type GroupID int32

// NoGroup marks an empty cell.
const NoGroup GroupID = -1

// group is a maximal connected set of same-colour stones.
type group struct {
	edges   uint8 // bit i: touches edge i
	corners uint8 // bit i: owns corner i
	stones  []HexCoord
	members map[HexCoord]struct{}
}

func (g *group) has(c HexCoord) bool {
	_, ok := g.members[c]
	return ok
}

// Groups is a union-find forest of stone groups.
// parent[h] == h for a live group; otherwise slots[h] is nil and parent
// points toward the group h was merged into.
type Groups struct {
	parent []GroupID
	slots  []*group
}

func NewGroups() *Groups {
	return &Groups{}
}

// NewGroup allocates an empty group and returns its handle.
func (gs *Groups) NewGroup() GroupID {
	h := GroupID(len(gs.parent))
	gs.parent = append(gs.parent, h)
	gs.slots = append(gs.slots, &group{members: make(map[HexCoord]struct{})})
	return h
}

// Find resolves h to the live group it currently belongs to, compressing
// the forwarding chain on the way. Unknown handles panic.
func (gs *Groups) Find(h GroupID) GroupID {
	if h < 0 || int(h) >= len(gs.parent) {
		panic(fmt.Sprintf("groups: unknown handle %d", h))
	}
	root := h
	for gs.parent[root] != root {
		root = gs.parent[root]
	}
	if gs.slots[root] == nil {
		panic(fmt.Sprintf("groups: handle %d resolves to an empty slot", h))
	}
	// 路径压缩
	for h != root {
		next := gs.parent[h]
		gs.parent[h] = root
		h = next
	}
	return root
}

func (gs *Groups) get(h GroupID) *group {
	return gs.slots[gs.Find(h)]
}

// Merge folds group from into group into and returns the survivor.
// Masks are OR-ed and stones appended; from becomes a forwarding record.
// Merging a group into itself does nothing.
func (gs *Groups) Merge(into, from GroupID) GroupID {
	into, from = gs.Find(into), gs.Find(from)
	if into == from {
		return into
	}
	dst, src := gs.slots[into], gs.slots[from]
	dst.edges |= src.edges
	dst.corners |= src.corners
	dst.stones = append(dst.stones, src.stones...)
	for c := range src.members {
		dst.members[c] = struct{}{}
	}
	gs.slots[from] = nil
	gs.parent[from] = into
	return into
}

// AddStone appends c to group h and records the edge or corner it lies on.
func (gs *Groups) AddStone(h GroupID, c HexCoord, radius int) {
	g := gs.get(h)
	g.stones = append(g.stones, c)
	g.members[c] = struct{}{}
	switch z := Classify(c, radius); z.Kind {
	case Edge:
		g.edges |= 1 << z.Index
	case Corner:
		g.corners |= 1 << z.Index
	}
}

// CheckBridge reports whether the group connects two or more corners.
func (gs *Groups) CheckBridge(h GroupID) bool {
	return bits.OnesCount8(gs.get(h).corners) >= 2
}

// CheckFork reports whether the group connects three or more edges.
func (gs *Groups) CheckFork(h GroupID) bool {
	return bits.OnesCount8(gs.get(h).edges) >= 3
}

// ringTurns are the direction changes tried at every step of the ring walk:
// clockwise, straight on, counter-clockwise.
var ringTurns = [3]int{1, 0, -1}

// CheckRing reports whether last, the stone just added to group h, closes a ring.
//
// The walk starts at last, leaves along one of the first four directions and
// at every step turns at most 60 degrees, moving only over stones of the group.
// A walk that gets back to last encloses at least one cell.
// Walk length is capped at the group size.
func (gs *Groups) CheckRing(h GroupID, last HexCoord) bool {
	g := gs.get(h)
	if len(g.stones) < 6 {
		return false
	}
	adj := 0
	for _, n := range Neighbors(last) {
		if g.has(n) {
			adj++
		}
	}
	if adj < 2 {
		return false
	}
	limit := len(g.stones)
	for dir := 0; dir < 4; dir++ {
		if g.walk(last, last, dir, 0, limit) {
			return true
		}
	}
	return false
}

func (g *group) walk(cur, target HexCoord, dir, steps, limit int) bool {
	cur = cur.Add(Directions[dir])
	steps++
	if cur == target {
		return true
	}
	if steps >= limit || !g.has(cur) {
		return false
	}
	for _, t := range ringTurns {
		if g.walk(cur, target, (dir+t+6)%6, steps, limit) {
			return true
		}
	}
	return false
}

// Stones returns the stones of the group that h resolves to, in insertion order.
// The slice must not be modified.
func (gs *Groups) Stones(h GroupID) []HexCoord { return gs.get(h).stones }

// Size returns the number of stones in the group.
func (gs *Groups) Size(h GroupID) int { return len(gs.get(h).stones) }

// Edges returns the edge bitmask of the group.
func (gs *Groups) Edges(h GroupID) uint8 { return gs.get(h).edges }

// Corners returns the corner bitmask of the group.
func (gs *Groups) Corners(h GroupID) uint8 { return gs.get(h).corners }

// Contains reports whether c is a stone of the group.
func (gs *Groups) Contains(h GroupID, c HexCoord) bool { return gs.get(h).has(c) }

// Live returns the number of groups that have not been merged away.
func (gs *Groups) Live() int {
	n := 0
	for _, g := range gs.slots {
		if g != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no state with gs.
func (gs *Groups) Clone() *Groups {
	ng := &Groups{
		parent: append([]GroupID(nil), gs.parent...),
		slots:  make([]*group, len(gs.slots)),
	}
	for i, g := range gs.slots {
		if g == nil {
			continue
		}
		members := make(map[HexCoord]struct{}, len(g.members))
		for c := range g.members {
			members[c] = struct{}{}
		}
		ng.slots[i] = &group{
			edges:   g.edges,
			corners: g.corners,
			stones:  append([]HexCoord(nil), g.stones...),
			members: members,
		}
	}
	return ng
}
