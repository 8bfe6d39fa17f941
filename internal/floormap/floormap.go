// Package floormap holds the terrain layer of one dungeon floor: a bounded
// tile grid with walkability and spawn-eligibility per cell. It is the
// read-only terrain oracle consumed by movement validation and spawn
// resolution; occupancy lives separately in the grid package.
package floormap

import "deepforge/internal/grid"

// Map is the tile grid for one dungeon floor.
type Map struct {
	width, height int
	tiles         [][]Tile
	entrance      grid.Position
}

// New creates a Map filled with walls.
func New(width, height int) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &Map{width: width, height: height, tiles: tiles}
}

// NewFloorFilled creates a Map whose every tile is open floor. Mostly
// useful in tests and the simulation harness.
func NewFloorFilled(width, height int) *Map {
	m := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.tiles[y][x] = MakeFloor()
		}
	}
	return m
}

// Width returns the map width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the map height in cells.
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the tile at (x, y). Out-of-bounds reads return a wall.
func (m *Map) At(x, y int) Tile {
	if !m.InBounds(x, y) {
		return MakeWall()
	}
	return m.tiles[y][x]
}

// Set replaces the tile at (x, y). Out-of-bounds writes are ignored.
func (m *Map) Set(x, y int, t Tile) {
	if !m.InBounds(x, y) {
		return
	}
	m.tiles[y][x] = t
	if t.Kind == TileEntrance {
		m.entrance = grid.Position{X: x, Y: y}
	}
}

// Entrance returns the position of the entrance tile, or the zero position
// if none was set.
func (m *Map) Entrance() grid.Position {
	return m.entrance
}

// IsWalkable reports whether (x, y) is in bounds and passable terrain.
func (m *Map) IsWalkable(x, y int) bool {
	return m.At(x, y).Walkable
}

// CanSpawn reports whether (x, y) is flagged eligible for entity placement.
func (m *Map) CanSpawn(x, y int) bool {
	return m.At(x, y).Spawn
}

// DoorCells returns every door tile position in row-major order. The spawn
// resolver derives door entities from this, not from the free-cell pool.
func (m *Map) DoorCells() []grid.Position {
	var doors []grid.Position
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tiles[y][x].Kind == TileDoor {
				doors = append(doors, grid.Position{X: x, Y: y})
			}
		}
	}
	return doors
}
