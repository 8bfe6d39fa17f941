package spawn

import (
	"github.com/zyedidia/generic/mapset"

	"deepforge/internal/grid"
)

// Terrain is the read-only oracle the resolver consumes.
type Terrain interface {
	Width() int
	Height() int
	IsWalkable(x, y int) bool
	CanSpawn(x, y int) bool
	DoorCells() []grid.Position
}

// Occupancy is the subset of grid occupancy the pool needs to seed itself.
type Occupancy interface {
	IsOccupied(x, y int) bool
}

// pool is the shared candidate cell set: walkable, spawn-flagged and
// unoccupied cells. The ordered slice gives uniform random choice under a
// fixed seed; the set gives O(1) membership for footprint checks.
type pool struct {
	cells []grid.Position
	set   mapset.Set[grid.Position]
}

// newPool scans the terrain once, row-major, so pool order (and therefore
// seeded placement) is deterministic.
func newPool(t Terrain, occ Occupancy) *pool {
	p := &pool{set: mapset.New[grid.Position]()}
	for y := 0; y < t.Height(); y++ {
		for x := 0; x < t.Width(); x++ {
			if !t.IsWalkable(x, y) || !t.CanSpawn(x, y) || occ.IsOccupied(x, y) {
				continue
			}
			c := grid.Position{X: x, Y: y}
			p.cells = append(p.cells, c)
			p.set.Put(c)
		}
	}
	return p
}

func (p *pool) size() int {
	return len(p.cells)
}

// anchors returns every pool cell that can anchor a footprint of the given
// size with all covered cells still in the pool, preserving row-major order.
func (p *pool) anchors(size grid.Size) []grid.Position {
	if size == grid.Single() {
		out := make([]grid.Position, len(p.cells))
		copy(out, p.cells)
		return out
	}
	var out []grid.Position
	for _, c := range p.cells {
		ok := true
		for _, covered := range c.Cells(size) {
			if !p.set.Has(covered) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// remove drops every cell covered by the footprint from the pool.
func (p *pool) remove(pos grid.Position, size grid.Size) {
	for _, covered := range pos.Cells(size) {
		if !p.set.Has(covered) {
			continue
		}
		p.set.Remove(covered)
		for i, c := range p.cells {
			if c == covered {
				p.cells = append(p.cells[:i], p.cells[i+1:]...)
				break
			}
		}
	}
}
