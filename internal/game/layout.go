// File game/layout.go
package game

import (
	"sync"

	"golang.org/x/exp/rand"
)

// layout holds the per-radius tables shared by every board of that radius:
// coordinate <-> index, in-bounds neighbor indices, zones and zobrist keys.
// 预先按 (q, r) 字典序编号，和棋盘一起复用。
type layout struct {
	radius  int
	coords  []HexCoord       // index -> 坐标
	indexOf map[HexCoord]int // 坐标 -> index
	neighI  [][6]int         // 每个格子的 6 邻居下标，越界为 -1
	zones   []Zone
	zob     [][2]uint64 // [index][Black-1 / White-1]
}

var (
	layoutMu    sync.Mutex
	layoutCache = map[int]*layout{} // 支持多半径
)

// zobristSeed keeps hashes stable across processes, so a recorded hash can
// be checked by replaying the moves anywhere.
const zobristSeed = 0x9E3779B97F4A7C15

func layoutFor(radius int) *layout {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	if l, ok := layoutCache[radius]; ok {
		return l
	}
	l := newLayout(radius)
	layoutCache[radius] = l
	return l
}

func newLayout(radius int) *layout {
	n := CellCount(radius)
	l := &layout{
		radius:  radius,
		coords:  make([]HexCoord, 0, n),
		indexOf: make(map[HexCoord]int, n),
		neighI:  make([][6]int, n),
		zones:   make([]Zone, n),
		zob:     make([][2]uint64, n),
	}
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := HexCoord{q, r}
			if InBounds(c, radius) {
				l.indexOf[c] = len(l.coords)
				l.coords = append(l.coords, c)
			}
		}
	}
	if len(l.coords) != n {
		panic("layout: coordinate enumeration size mismatch")
	}

	rng := rand.New(rand.NewSource(zobristSeed ^ uint64(radius)))
	for i, c := range l.coords {
		for d, nc := range Neighbors(c) {
			if j, ok := l.indexOf[nc]; ok {
				l.neighI[i][d] = j
			} else {
				l.neighI[i][d] = -1
			}
		}
		l.zones[i] = Classify(c, radius)
		l.zob[i] = [2]uint64{rng.Uint64(), rng.Uint64()}
	}
	return l
}

func (l *layout) zobKey(i int, p Player) uint64 {
	return l.zob[i][p-1]
}
