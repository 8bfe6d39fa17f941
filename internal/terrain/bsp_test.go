package terrain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepforge/internal/floormap"
)

func testConfig(seed int64) Config {
	return DefaultConfig(40, 24, rand.New(rand.NewSource(seed)))
}

// Every walkable tile must be reachable from the entrance via cardinal
// steps, checked by flood fill across a range of seeds.
func TestGenerateFullyConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		m, err := Generate(testConfig(seed))
		require.NoError(t, err, "seed=%d", seed)

		start := m.Entrance()
		require.True(t, m.IsWalkable(start.X, start.Y), "seed=%d: entrance not walkable", seed)

		visited := make(map[[2]int]bool)
		queue := [][2]int{{start.X, start.Y}}
		visited[[2]int{start.X, start.Y}] = true
		dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				nx, ny := cur[0]+d[0], cur[1]+d[1]
				key := [2]int{nx, ny}
				if visited[key] || !m.IsWalkable(nx, ny) {
					continue
				}
				visited[key] = true
				queue = append(queue, key)
			}
		}

		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				if m.IsWalkable(x, y) && !visited[[2]int{x, y}] {
					t.Errorf("seed=%d: unreachable walkable tile at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

func TestGenerateBorderStaysWalled(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		m, err := Generate(testConfig(seed))
		require.NoError(t, err)

		for x := 0; x < m.Width(); x++ {
			assert.False(t, m.IsWalkable(x, 0), "seed=%d: open border cell (%d,0)", seed, x)
			assert.False(t, m.IsWalkable(x, m.Height()-1), "seed=%d: open border cell (%d,%d)", seed, x, m.Height()-1)
		}
		for y := 0; y < m.Height(); y++ {
			assert.False(t, m.IsWalkable(0, y), "seed=%d: open border cell (0,%d)", seed, y)
			assert.False(t, m.IsWalkable(m.Width()-1, y), "seed=%d: open border cell (%d,%d)", seed, m.Width()-1, y)
		}
	}
}

func TestGenerateEntranceAndExit(t *testing.T) {
	m, err := Generate(testConfig(3))
	require.NoError(t, err)

	start := m.Entrance()
	assert.Equal(t, floormap.TileEntrance, m.At(start.X, start.Y).Kind)

	foundExit := false
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y).Kind == floormap.TileExit {
				foundExit = true
			}
		}
	}
	assert.True(t, foundExit, "layout should contain an exit")
}

// Doors sit in room walls: walkable, not spawn-eligible, and never sealed
// off on both axes.
func TestGenerateDoorCells(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		m, err := Generate(testConfig(seed))
		require.NoError(t, err)

		for _, d := range m.DoorCells() {
			tile := m.At(d.X, d.Y)
			assert.True(t, tile.Walkable, "seed=%d: door (%d,%d) not walkable", seed, d.X, d.Y)
			assert.False(t, tile.Spawn, "seed=%d: door (%d,%d) spawn-eligible", seed, d.X, d.Y)

			horiz := m.IsWalkable(d.X-1, d.Y) && m.IsWalkable(d.X+1, d.Y)
			vert := m.IsWalkable(d.X, d.Y-1) && m.IsWalkable(d.X, d.Y+1)
			assert.True(t, horiz || vert, "seed=%d: door (%d,%d) passable on no axis", seed, d.X, d.Y)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testConfig(42))
	require.NoError(t, err)
	b, err := Generate(testConfig(42))
	require.NoError(t, err)

	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			require.Equal(t, a.At(x, y), b.At(x, y), "tiles diverge at (%d,%d)", x, y)
		}
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Width = 4
	_, err := Generate(cfg)
	assert.Error(t, err, "map smaller than a leaf")

	cfg = testConfig(1)
	cfg.Rand = nil
	_, err = Generate(cfg)
	assert.Error(t, err, "missing random source")
}
