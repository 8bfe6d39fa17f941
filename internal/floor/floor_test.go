package floor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepforge/internal/entity"
	"deepforge/internal/floormap"
	"deepforge/internal/grid"
	"deepforge/internal/spawn"
)

func newTestFloor(t *testing.T, w, h int, seed int64) *Floor {
	t.Helper()
	return New(1, floormap.NewFloorFilled(w, h), seed, nil)
}

func TestPlaceAndMove(t *testing.T) {
	f := newTestFloor(t, 6, 6, 1)

	id, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 2, Y: 2}, grid.Single())
	require.NoError(t, err)
	require.NotEqual(t, entity.Nil, id)

	require.NoError(t, f.Move(id, grid.Position{X: 3, Y: 2}))

	_, pos, _, ok := f.Entity(id)
	require.True(t, ok)
	assert.Equal(t, grid.Position{X: 3, Y: 2}, pos)
	assert.False(t, f.Occ.IsOccupied(2, 2), "old cell should be vacated")
	assert.Equal(t, id, f.Occ.At(3, 2))
}

func TestMoveBlockedByWall(t *testing.T) {
	m := floormap.NewFloorFilled(4, 4)
	m.Set(1, 0, floormap.MakeWall())
	f := New(1, m, 1, nil)

	id, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 0, Y: 0}, grid.Single())
	require.NoError(t, err)

	err = f.Move(id, grid.Position{X: 1, Y: 0})
	assert.ErrorIs(t, err, ErrBlocked)

	err = f.Move(id, grid.Position{X: -1, Y: 0})
	assert.ErrorIs(t, err, ErrBlocked)

	_, pos, _, _ := f.Entity(id)
	assert.Equal(t, grid.Position{X: 0, Y: 0}, pos, "failed move should not relocate")
}

func TestMoveBlockedByEntity(t *testing.T) {
	f := newTestFloor(t, 4, 4, 1)

	player, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 0, Y: 0}, grid.Single())
	require.NoError(t, err)
	_, err = f.Place(entity.Entity{Kind: entity.KindChest}, grid.Position{X: 1, Y: 0}, grid.Single())
	require.NoError(t, err)

	assert.ErrorIs(t, f.Move(player, grid.Position{X: 1, Y: 0}), ErrBlocked)
}

func TestMoveUnknownEntity(t *testing.T) {
	f := newTestFloor(t, 4, 4, 1)
	assert.ErrorIs(t, f.Move(entity.ID(42), grid.Position{X: 1, Y: 1}), ErrUnknownEntity)
}

func TestMoveOverlappingSelf(t *testing.T) {
	// A 2x2 entity shifting one cell overlaps its own old footprint; its
	// own cells must not count as blocked.
	f := newTestFloor(t, 6, 6, 1)

	id, err := f.Place(entity.Entity{Kind: entity.KindMob, MobID: "dwarf_king"}, grid.Position{X: 1, Y: 1}, grid.Size{W: 2, H: 2})
	require.NoError(t, err)

	require.NoError(t, f.Move(id, grid.Position{X: 2, Y: 1}))
	assert.Equal(t, id, f.Occ.At(3, 2))
	assert.False(t, f.Occ.IsOccupied(1, 1))
	assert.False(t, f.Occ.IsOccupied(1, 2))
}

func TestCanOccupy(t *testing.T) {
	m := floormap.NewFloorFilled(4, 4)
	m.Set(3, 3, floormap.MakeWall())
	f := New(1, m, 1, nil)

	id, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 0, Y: 0}, grid.Single())
	require.NoError(t, err)

	assert.True(t, f.CanOccupy(grid.Position{X: 1, Y: 1}, grid.Single(), id))
	assert.True(t, f.CanOccupy(grid.Position{X: 0, Y: 0}, grid.Single(), id), "own cell counts as free for the mover")
	assert.False(t, f.CanOccupy(grid.Position{X: 0, Y: 0}, grid.Single(), entity.Nil), "occupied for anyone else")
	assert.False(t, f.CanOccupy(grid.Position{X: 3, Y: 3}, grid.Single(), id), "wall tile")
	assert.False(t, f.CanOccupy(grid.Position{X: 2, Y: 2}, grid.Size{W: 2, H: 2}, id), "footprint reaching a wall")
	assert.False(t, f.CanOccupy(grid.Position{X: 1, Y: 1}, grid.Size{W: 0, H: 1}, id), "degenerate size")
}

func TestRemove(t *testing.T) {
	f := newTestFloor(t, 4, 4, 1)

	id, err := f.Place(entity.Entity{Kind: entity.KindChest}, grid.Position{X: 1, Y: 1}, grid.Single())
	require.NoError(t, err)

	f.Remove(id)
	assert.False(t, f.Occ.IsOccupied(1, 1))
	_, _, _, ok := f.Entity(id)
	assert.False(t, ok)
	assert.Zero(t, f.EntityCount())

	f.Remove(id) // second removal is a no-op
	f.Remove(entity.ID(99))
}

func TestMine(t *testing.T) {
	f := newTestFloor(t, 4, 4, 7)

	rock, err := f.Place(entity.Entity{Kind: entity.KindRock, Rock: entity.RockCoal}, grid.Position{X: 2, Y: 2}, grid.Single())
	require.NoError(t, err)
	chest, err := f.Place(entity.Entity{Kind: entity.KindChest}, grid.Position{X: 0, Y: 0}, grid.Single())
	require.NoError(t, err)

	drops, err := f.Mine(rock, 0)
	require.NoError(t, err)
	require.NotEmpty(t, drops, "coal rocks always yield ore")
	assert.False(t, f.Occ.IsOccupied(2, 2), "mined rock leaves the floor")

	_, err = f.Mine(chest, 0)
	assert.Error(t, err, "only rocks can be mined")
	_, err = f.Mine(entity.ID(99), 0)
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestEntityAt(t *testing.T) {
	f := newTestFloor(t, 4, 4, 1)

	id, err := f.Place(entity.Entity{Kind: entity.KindStairs}, grid.Position{X: 2, Y: 1}, grid.Single())
	require.NoError(t, err)

	got, ok := f.EntityAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, entity.KindStairs, got.Kind)

	_, ok = f.EntityAt(0, 0)
	assert.False(t, ok)
	_, ok = f.EntityAt(-1, 0)
	assert.False(t, ok)
}

func TestAdjacentTo(t *testing.T) {
	f := newTestFloor(t, 5, 5, 1)

	player, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 2, Y: 2}, grid.Single())
	require.NoError(t, err)
	_, err = f.Place(entity.Entity{Kind: entity.KindChest}, grid.Position{X: 1, Y: 2}, grid.Single())
	require.NoError(t, err)
	_, err = f.Place(entity.Entity{Kind: entity.KindMob, MobID: "slime"}, grid.Position{X: 2, Y: 3}, grid.Single())
	require.NoError(t, err)
	_, err = f.Place(entity.Entity{Kind: entity.KindRock, Rock: entity.RockIron}, grid.Position{X: 3, Y: 3}, grid.Single())
	require.NoError(t, err)

	adj := f.AdjacentTo(player)
	kinds := make(map[entity.Kind]int)
	for _, e := range adj {
		kinds[e.Kind]++
	}
	assert.Len(t, adj, 2)
	assert.Equal(t, 1, kinds[entity.KindChest])
	assert.Equal(t, 1, kinds[entity.KindMob])
	assert.Zero(t, kinds[entity.KindRock], "diagonals are not adjacent")

	assert.Nil(t, f.AdjacentTo(entity.ID(99)))
}

func TestGenerateRecordsEntities(t *testing.T) {
	f := newTestFloor(t, 8, 8, 99)

	table := spawn.Table{
		Chests: spawn.Exactly(2),
		Stairs: spawn.Exactly(1),
		Guaranteed: []spawn.GuaranteedRule{
			{MobID: "goblin", Count: 2},
		},
	}
	placed, err := f.Generate(table)
	require.NoError(t, err)
	require.Len(t, placed, 5)
	assert.Equal(t, 5, f.EntityCount())

	for _, p := range placed {
		got, pos, _, ok := f.Entity(p.Ent.ID)
		require.True(t, ok)
		assert.Equal(t, p.Ent, got)
		assert.Equal(t, p.Pos, pos)
		assert.Equal(t, p.Ent.ID, f.Occ.At(pos.X, pos.Y))
	}
}

func TestGenerateRejectsBadTable(t *testing.T) {
	f := newTestFloor(t, 8, 8, 1)

	_, err := f.Generate(spawn.Table{Chests: spawn.CountRange{Min: 3, Max: 1}})
	assert.Error(t, err)
	assert.Zero(t, f.EntityCount())
}
