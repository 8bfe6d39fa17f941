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

func generatedFloor(t *testing.T, seed int64) *Floor {
	t.Helper()
	f := New(3, floormap.NewFloorFilled(10, 10), seed, nil)
	_, err := f.Generate(spawn.Table{
		Chests: spawn.Exactly(2),
		Stairs: spawn.Exactly(1),
		Rocks:  spawn.CountRange{Min: 1, Max: 3},
		Guaranteed: []spawn.GuaranteedRule{
			{MobID: "dwarf_king", Count: 1, Size: grid.Size{W: 2, H: 2}},
		},
		Mobs: []spawn.WeightedEntry{
			{MobID: "slime", Weight: 3},
			{MobID: "goblin", Weight: 1},
		},
		MobCount: spawn.Exactly(4),
	})
	require.NoError(t, err)
	return f
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := generatedFloor(t, 4242)

	data, err := f.Snapshot().Encode()
	require.NoError(t, err)

	s, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, f.Depth, s.Depth)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 10, s.Height)
	assert.Equal(t, int64(4242), s.Seed)

	restored, err := Restore(s, floormap.NewFloorFilled(10, 10), nil)
	require.NoError(t, err)
	require.Equal(t, f.EntityCount(), restored.EntityCount())

	for id, r := range f.ents {
		got, pos, size, ok := restored.Entity(id)
		require.True(t, ok, "entity %d missing after restore", id)
		assert.Equal(t, r.ent, got)
		assert.Equal(t, r.pos, pos)
		assert.Equal(t, r.size, size)
	}
	assert.Equal(t, f.Occ.Free(), restored.Occ.Free())
}

func TestSnapshotDeterministicEncoding(t *testing.T) {
	f := generatedFloor(t, 7)

	a, err := f.Snapshot().Encode()
	require.NoError(t, err)
	b, err := f.Snapshot().Encode()
	require.NoError(t, err)
	assert.Equal(t, a, b, "same floor must encode to identical bytes")
}

func TestRestoreResumesRNG(t *testing.T) {
	f := generatedFloor(t, 555)
	// Consume some extra randomness after generation, as play would.
	for i := 0; i < 17; i++ {
		f.Rng().Intn(100)
	}

	s := f.Snapshot()
	restored, err := Restore(s, floormap.NewFloorFilled(10, 10), nil)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		want := f.Rng().Intn(1000)
		got := restored.Rng().Intn(1000)
		require.Equal(t, want, got, "roll %d diverged after restore", i)
	}
}

func TestRestoreResumesMinter(t *testing.T) {
	f := generatedFloor(t, 9)
	s := f.Snapshot()

	restored, err := Restore(s, floormap.NewFloorFilled(10, 10), nil)
	require.NoError(t, err)

	id, err := restored.Place(entity.Entity{Kind: entity.KindPlayer}, grid.Position{X: 0, Y: 9}, grid.Single())
	require.NoError(t, err)
	for existing := range f.ents {
		assert.Greater(t, id, existing, "restored minter must not reuse IDs")
	}
}

func TestRestoreDimensionMismatch(t *testing.T) {
	f := generatedFloor(t, 9)
	s := f.Snapshot()

	_, err := Restore(s, floormap.NewFloorFilled(8, 10), nil)
	assert.Error(t, err)
}

func TestRestoreRejectsOverlappingEntities(t *testing.T) {
	s := &Snapshot{
		Depth: 1, Width: 4, Height: 4, Seed: 1, NextID: 3,
		Entities: []entityRecord{
			{ID: 1, Kind: uint8(entity.KindChest), X: 1, Y: 1, W: 1, H: 1},
			{ID: 2, Kind: uint8(entity.KindRock), X: 1, Y: 1, W: 1, H: 1},
		},
	}
	_, err := Restore(s, floormap.NewFloorFilled(4, 4), nil)
	assert.Error(t, err)
}

func TestDecodeSnapshotGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not a snapshot"))
	assert.Error(t, err)
}
