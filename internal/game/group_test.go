package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsNewAndFind(t *testing.T) {
	gs := NewGroups()
	a, b := gs.NewGroup(), gs.NewGroup()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, gs.Find(a))
	assert.Zero(t, gs.Size(a))
	assert.Zero(t, gs.Edges(a))
	assert.Zero(t, gs.Corners(a))

	assert.Panics(t, func() { gs.Find(GroupID(42)) })
	assert.Panics(t, func() { gs.Find(NoGroup) })
}

func TestGroupsMerge(t *testing.T) {
	const radius = 3
	gs := NewGroups()
	a, b := gs.NewGroup(), gs.NewGroup()
	gs.AddStone(a, HexCoord{-3, 3}, radius) // corner 0
	gs.AddStone(a, HexCoord{-1, 3}, radius) // edge 0
	gs.AddStone(b, HexCoord{3, -1}, radius) // edge 4
	gs.AddStone(b, HexCoord{0, 0}, radius)

	survivor := gs.Merge(a, b)
	assert.Equal(t, a, survivor)
	assert.Equal(t, a, gs.Find(b))
	assert.Equal(t, 4, gs.Size(b))
	assert.Equal(t, uint8(1<<0|1<<4), gs.Edges(a))
	assert.Equal(t, uint8(1<<0), gs.Corners(a))
	assert.Equal(t, []HexCoord{{-3, 3}, {-1, 3}, {3, -1}, {0, 0}}, gs.Stones(a))
	assert.True(t, gs.Contains(a, HexCoord{3, -1}))
	assert.Equal(t, 1, gs.Live())

	t.Run("into itself", func(t *testing.T) {
		assert.Equal(t, a, gs.Merge(a, a))
		assert.Equal(t, a, gs.Merge(b, a))
		assert.Equal(t, 4, gs.Size(a))
	})

	t.Run("stale into handle", func(t *testing.T) {
		c := gs.NewGroup()
		gs.AddStone(c, HexCoord{1, 1}, radius)
		assert.Equal(t, a, gs.Merge(b, c))
		assert.Equal(t, a, gs.Find(c))
		assert.Equal(t, 5, gs.Size(c))
	})
}

func TestGroupsFindLongChain(t *testing.T) {
	gs := NewGroups()
	ids := make([]GroupID, 10000)
	for i := range ids {
		ids[i] = gs.NewGroup()
	}
	// 每次把旧根并入新组，形成最长转发链
	for i := 1; i < len(ids); i++ {
		gs.Merge(ids[i], ids[i-1])
	}
	last := ids[len(ids)-1]
	assert.Equal(t, last, gs.Find(ids[0]))
	assert.Equal(t, last, gs.parent[ids[0]], "path compressed")
}

func TestGroupsMergeOrderIndependent(t *testing.T) {
	type pair struct{ into, from int }
	orders := [][]pair{
		{{0, 1}, {1, 2}, {3, 4}, {4, 2}, {5, 6}},
		{{5, 6}, {4, 3}, {2, 0}, {1, 4}, {2, 1}},
		{{6, 5}, {2, 1}, {3, 2}, {0, 4}, {0, 3}},
	}
	for _, order := range orders {
		gs := NewGroups()
		ids := make([]GroupID, 8)
		for i := range ids {
			ids[i] = gs.NewGroup()
		}
		for _, p := range order {
			gs.Merge(ids[p.into], ids[p.from])
		}
		for i := 1; i <= 4; i++ {
			assert.Equal(t, gs.Find(ids[0]), gs.Find(ids[i]))
		}
		assert.Equal(t, gs.Find(ids[5]), gs.Find(ids[6]))
		assert.NotEqual(t, gs.Find(ids[0]), gs.Find(ids[5]))
		assert.NotEqual(t, gs.Find(ids[0]), gs.Find(ids[7]))
		assert.Equal(t, 3, gs.Live())
	}
}

func TestCheckBridgeAndFork(t *testing.T) {
	const radius = 3
	build := func(cells ...HexCoord) (*Groups, GroupID) {
		gs := NewGroups()
		h := gs.NewGroup()
		for _, c := range cells {
			gs.AddStone(h, c, radius)
		}
		return gs, h
	}

	t.Run("bridge corners 0 and 2", func(t *testing.T) {
		gs, h := build(HexCoord{-3, 3}, HexCoord{0, -3})
		assert.Equal(t, uint8(0b101), gs.Corners(h))
		assert.True(t, gs.CheckBridge(h))
	})
	t.Run("single corner", func(t *testing.T) {
		gs, h := build(HexCoord{-3, 3}, HexCoord{-2, 3})
		assert.False(t, gs.CheckBridge(h))
	})
	t.Run("fork edges 0 1 2", func(t *testing.T) {
		gs, h := build(HexCoord{-1, 3}, HexCoord{-3, 1}, HexCoord{-1, -2})
		assert.Equal(t, uint8(0b111), gs.Edges(h))
		assert.True(t, gs.CheckFork(h))
		assert.False(t, gs.CheckBridge(h))
	})
	t.Run("two edges", func(t *testing.T) {
		gs, h := build(HexCoord{-1, 3}, HexCoord{-3, 1}, HexCoord{-3, 2})
		assert.False(t, gs.CheckFork(h))
	})
	t.Run("corners do not count as edges", func(t *testing.T) {
		gs, h := build(HexCoord{-3, 3}, HexCoord{-3, 0}, HexCoord{0, -3})
		assert.Zero(t, gs.Edges(h))
		assert.False(t, gs.CheckFork(h))
	})
}

// ringAround returns the 6 cells around center, with cells[last] moved to the end.
func ringAround(center HexCoord, last int) []HexCoord {
	var out []HexCoord
	for i, n := range Neighbors(center) {
		if i != last {
			out = append(out, n)
		}
	}
	return append(out, center.Add(Directions[last]))
}

func TestCheckRingMinimal(t *testing.T) {
	// every 6-cell ring on the board, closed by each of its cells
	for _, radius := range []int{3, 4} {
		for _, center := range layoutFor(radius).coords {
			for last := 0; last < 6; last++ {
				cells := ringAround(center, last)
				onBoard := true
				for _, c := range cells {
					onBoard = onBoard && InBounds(c, radius)
				}
				if !onBoard {
					continue
				}
				gs := NewGroups()
				h := gs.NewGroup()
				for _, c := range cells {
					gs.AddStone(h, c, radius)
				}
				assert.True(t, gs.CheckRing(h, cells[5]), "radius %d center %v last %v", radius, center, cells[5])
			}
		}
	}
}

func TestCheckRingNegative(t *testing.T) {
	const radius = 4
	build := func(cells ...HexCoord) (*Groups, GroupID) {
		gs := NewGroups()
		h := gs.NewGroup()
		for _, c := range cells {
			gs.AddStone(h, c, radius)
		}
		return gs, h
	}

	t.Run("five stones", func(t *testing.T) {
		cells := ringAround(HexCoord{}, 0)[:5]
		gs, h := build(cells...)
		assert.False(t, gs.CheckRing(h, cells[4]))
	})

	t.Run("open ring", func(t *testing.T) {
		// 缺一个口的环加一条尾巴
		cells := ringAround(HexCoord{}, 0)[:5]
		cells = append(cells, HexCoord{0, 2})
		gs, h := build(cells...)
		require.Equal(t, 6, gs.Size(h))
		assert.False(t, gs.CheckRing(h, HexCoord{0, 2}))
	})

	t.Run("straight line", func(t *testing.T) {
		gs, h := build(HexCoord{-3, 0}, HexCoord{-2, 0}, HexCoord{-1, 0}, HexCoord{0, 0}, HexCoord{1, 0}, HexCoord{2, 0})
		assert.False(t, gs.CheckRing(h, HexCoord{2, 0}))
	})

	t.Run("filled triangle blob", func(t *testing.T) {
		// 实心的一团没有围住任何空格
		gs, h := build(HexCoord{0, 0}, HexCoord{1, 0}, HexCoord{0, 1}, HexCoord{1, -1}, HexCoord{2, -1}, HexCoord{-1, 1}, HexCoord{-1, 2})
		assert.False(t, gs.CheckRing(h, HexCoord{-1, 2}))
		assert.False(t, gs.CheckRing(h, HexCoord{0, 0}))
	})

	t.Run("last stone hanging off a ring", func(t *testing.T) {
		cells := append(ringAround(HexCoord{}, 0), HexCoord{2, 0})
		gs, h := build(cells...)
		assert.False(t, gs.CheckRing(h, HexCoord{2, 0}))
	})
}

func TestCheckRingLarger(t *testing.T) {
	// ring of 8 stones around two cells (0,0) and (1,0)
	cells := []HexCoord{
		{0, -1}, {1, -1}, {2, -1}, {2, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
	}
	for i := range cells {
		gs := NewGroups()
		h := gs.NewGroup()
		for j, c := range cells {
			if j != i {
				gs.AddStone(h, c, 4)
			}
		}
		gs.AddStone(h, cells[i], 4)
		assert.True(t, gs.CheckRing(h, cells[i]), "closing at %v", cells[i])
	}
}

func TestGroupsClone(t *testing.T) {
	gs := NewGroups()
	a, b := gs.NewGroup(), gs.NewGroup()
	gs.AddStone(a, HexCoord{0, 0}, 3)
	gs.AddStone(b, HexCoord{-3, 3}, 3)

	cp := gs.Clone()
	cp.Merge(a, b)
	cp.AddStone(a, HexCoord{1, 0}, 3)

	assert.Equal(t, 1, gs.Size(a))
	assert.Equal(t, b, gs.Find(b))
	assert.False(t, gs.Contains(a, HexCoord{1, 0}))
	assert.Zero(t, gs.Corners(a))
	assert.Equal(t, 3, cp.Size(a))
	assert.Equal(t, uint8(1), cp.Corners(a))
}
