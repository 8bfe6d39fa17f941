// Package floor ties one dungeon level together: terrain, occupancy, the
// entity roster and a seeded RNG, with a single owner for the floor's
// lifetime. It validates movement, resolves spawning through the spawn
// package, and exports snapshots for deterministic reconstruction.
package floor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"deepforge/internal/defs"
	"deepforge/internal/entity"
	"deepforge/internal/floormap"
	"deepforge/internal/grid"
	"deepforge/internal/loot"
	"deepforge/internal/spawn"
)

// ErrBlocked is returned when a move's destination is not fully walkable
// and free of other entities.
var ErrBlocked = errors.New("destination blocked")

// ErrUnknownEntity is returned for operations on an ID the floor does not
// track.
var ErrUnknownEntity = errors.New("unknown entity")

type record struct {
	ent  entity.Entity
	pos  grid.Position
	size grid.Size
}

// Floor is the shared state of one dungeon level. Created on floor entry,
// mutated only by its owner, discarded on exit.
type Floor struct {
	Depth int
	Map   *floormap.Map
	Occ   *grid.Occupancy

	seed int64
	src  *countingSource
	rng  *rand.Rand
	mint *entity.Minter
	ents map[entity.ID]*record
	log  *slog.Logger
}

// New creates an empty floor over the given terrain, seeded for fully
// reproducible spawning and combat.
func New(depth int, m *floormap.Map, seed int64, log *slog.Logger) *Floor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	src := newCountingSource(seed)
	return &Floor{
		Depth: depth,
		Map:   m,
		Occ:   grid.NewOccupancy(m.Width(), m.Height()),
		seed:  seed,
		src:   src,
		rng:   rand.New(src),
		mint:  entity.NewMinter(),
		ents:  make(map[entity.ID]*record),
		log:   log,
	}
}

// Rng returns the floor's seeded generator. All floor randomness must flow
// through it for snapshots to stay deterministic.
func (f *Floor) Rng() *rand.Rand {
	return f.rng
}

// Generate runs spawn resolution for the given table and records every
// placed entity.
func (f *Floor) Generate(table spawn.Table) ([]spawn.Placement, error) {
	res := spawn.NewResolver(f.Map, f.Occ, f.mint, f.rng, f.log)
	placed, err := res.Resolve(table)
	if err != nil {
		return nil, err
	}
	for _, p := range placed {
		f.ents[p.Ent.ID] = &record{ent: p.Ent, pos: p.Pos, size: p.Size}
	}
	f.log.Debug("floor generated", "depth", f.Depth, "entities", len(placed), "free", f.Occ.Free())
	return placed, nil
}

// Place puts an externally created entity (typically the player) onto the
// floor, minting its ID.
func (f *Floor) Place(ent entity.Entity, pos grid.Position, size grid.Size) (entity.ID, error) {
	ent.ID = f.mint.Mint()
	if err := f.Occ.Occupy(pos, size, ent.ID); err != nil {
		return entity.Nil, err
	}
	f.ents[ent.ID] = &record{ent: ent, pos: pos, size: size}
	return ent.ID, nil
}

// Entity returns the entity and footprint for an ID.
func (f *Floor) Entity(id entity.ID) (entity.Entity, grid.Position, grid.Size, bool) {
	r, ok := f.ents[id]
	if !ok {
		return entity.Entity{}, grid.Position{}, grid.Size{}, false
	}
	return r.ent, r.pos, r.size, true
}

// EntityAt returns the entity covering (x, y), if any.
func (f *Floor) EntityAt(x, y int) (entity.Entity, bool) {
	id := f.Occ.At(x, y)
	if id == entity.Nil {
		return entity.Entity{}, false
	}
	r, ok := f.ents[id]
	if !ok {
		return entity.Entity{}, false
	}
	return r.ent, true
}

// AdjacentTo returns the entities cardinally adjacent to id's footprint,
// for interaction checks.
func (f *Floor) AdjacentTo(id entity.ID) []entity.Entity {
	r, ok := f.ents[id]
	if !ok {
		return nil
	}
	var out []entity.Entity
	for _, nid := range f.Occ.Adjacent(r.pos, r.size) {
		if nr, ok := f.ents[nid]; ok {
			out = append(out, nr.ent)
		}
	}
	return out
}

// CanOccupy reports whether a footprint may sit at pos: every covered cell
// walkable and unoccupied except by the mover itself.
func (f *Floor) CanOccupy(pos grid.Position, size grid.Size, mover entity.ID) bool {
	if !size.Valid() {
		return false
	}
	for _, c := range pos.Cells(size) {
		if !f.Map.IsWalkable(c.X, c.Y) {
			return false
		}
		if id := f.Occ.At(c.X, c.Y); id != entity.Nil && id != mover {
			return false
		}
	}
	return true
}

// Move relocates an entity, vacating its old footprint and occupying the
// new one as one step.
func (f *Floor) Move(id entity.ID, to grid.Position) error {
	r, ok := f.ents[id]
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrUnknownEntity)
	}
	if !f.CanOccupy(to, r.size, id) {
		return fmt.Errorf("move %d to (%d,%d): %w", id, to.X, to.Y, ErrBlocked)
	}
	f.Occ.Vacate(r.pos, r.size)
	if err := f.Occ.Occupy(to, r.size, id); err != nil {
		// CanOccupy guaranteed the cells; reclaim the old footprint so a
		// caller bug cannot strand the entity off-grid.
		_ = f.Occ.Occupy(r.pos, r.size, id)
		return err
	}
	r.pos = to
	return nil
}

// Remove vacates and forgets an entity (defeated mob, mined-out rock).
// Removing an unknown ID is a no-op.
func (f *Floor) Remove(id entity.ID) {
	r, ok := f.ents[id]
	if !ok {
		return
	}
	f.Occ.Vacate(r.pos, r.size)
	delete(f.ents, id)
}

// Mine rolls the drop table of a rock entity and removes it from the
// floor. Only rocks can be mined.
func (f *Floor) Mine(id entity.ID, magicFind int) ([]loot.Drop, error) {
	r, ok := f.ents[id]
	if !ok {
		return nil, fmt.Errorf("mine %d: %w", id, ErrUnknownEntity)
	}
	if r.ent.Kind != entity.KindRock {
		return nil, fmt.Errorf("mine %d: entity is a %s, not a rock", id, r.ent.Kind)
	}
	drops := defs.RockLoot(r.ent.Rock).Roll(f.rng, magicFind)
	f.Remove(id)
	return drops, nil
}

// EntityCount returns the number of tracked entities.
func (f *Floor) EntityCount() int {
	return len(f.ents)
}
