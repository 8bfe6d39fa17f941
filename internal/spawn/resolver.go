package spawn

import (
	"io"
	"log/slog"
	"math/rand"

	"deepforge/internal/entity"
	"deepforge/internal/grid"
)

// Placement is one committed placement, emitted as plain data for whatever
// layer instantiates and draws the entity.
type Placement struct {
	Ent  entity.Entity
	Pos  grid.Position
	Size grid.Size
}

// Resolver consumes a Table and the current floor state to produce a
// concrete placement plan, registering occupancy as it goes.
type Resolver struct {
	terrain Terrain
	occ     *grid.Occupancy
	mint    *entity.Minter
	rng     *rand.Rand
	log     *slog.Logger
}

// NewResolver wires a resolver to one floor's terrain, occupancy, ID minter
// and seeded RNG. A nil logger discards debug output.
func NewResolver(terrain Terrain, occ *grid.Occupancy, mint *entity.Minter, rng *rand.Rand, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{terrain: terrain, occ: occ, mint: mint, rng: rng, log: log}
}

// Resolve applies the table's categories in fixed order and returns every
// placement made. Pool exhaustion yields a partial fill, never an error;
// the only error is a malformed table.
func (r *Resolver) Resolve(table Table) ([]Placement, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	var placed []Placement
	pl := newPool(r.terrain, r.occ)

	// Doors come straight from terrain metadata, not from the pool.
	for _, pos := range r.terrain.DoorCells() {
		r.commit(&placed, pl, pos, grid.Single(), entity.Entity{Kind: entity.KindDoor})
	}

	r.placeCount(&placed, pl, table.Chests, "chest", func() (entity.Entity, grid.Size) {
		return entity.Entity{Kind: entity.KindChest, ChestVariant: r.rng.Intn(4)}, grid.Single()
	})
	r.placeCount(&placed, pl, table.Stairs, "stairs", func() (entity.Entity, grid.Size) {
		return entity.Entity{Kind: entity.KindStairs}, grid.Single()
	})
	r.placeCount(&placed, pl, table.Rocks, "rock", func() (entity.Entity, grid.Size) {
		return entity.Entity{Kind: entity.KindRock, Rock: entity.RockType(r.rng.Intn(4))}, grid.Single()
	})

	r.placeCount(&placed, pl, table.Forges, "forge", func() (entity.Entity, grid.Size) {
		return entity.Entity{Kind: entity.KindCraftingStation, Station: entity.StationForge}, grid.Single()
	})
	if table.ForgeChance > 0 && r.rng.Float64() < table.ForgeChance {
		r.place(&placed, pl, "forge", entity.Entity{Kind: entity.KindCraftingStation, Station: entity.StationForge}, grid.Single())
	}
	r.placeCount(&placed, pl, table.Anvils, "anvil", func() (entity.Entity, grid.Size) {
		return entity.Entity{Kind: entity.KindCraftingStation, Station: entity.StationAnvil}, grid.Single()
	})
	if table.AnvilChance > 0 && r.rng.Float64() < table.AnvilChance {
		r.place(&placed, pl, "anvil", entity.Entity{Kind: entity.KindCraftingStation, Station: entity.StationAnvil}, grid.Single())
	}

	for _, rule := range table.NPCs {
		r.placeCount(&placed, pl, rule.Count, "npc", func() (entity.Entity, grid.Size) {
			return entity.Entity{Kind: entity.KindNPC, MobID: rule.MobID}, sizeOrSingle(rule.Size)
		})
	}
	for _, rule := range table.NPCChances {
		if rule.Chance > 0 && r.rng.Float64() < rule.Chance {
			r.place(&placed, pl, "npc", entity.Entity{Kind: entity.KindNPC, MobID: rule.MobID}, sizeOrSingle(rule.Size))
		}
	}

	for _, rule := range table.Guaranteed {
		r.placeCount(&placed, pl, Exactly(rule.Count), "mob", func() (entity.Entity, grid.Size) {
			return entity.Entity{Kind: entity.KindMob, MobID: rule.MobID}, sizeOrSingle(rule.Size)
		})
	}

	r.placeWeighted(&placed, pl, table)

	return placed, nil
}

// placeCount samples a count and attempts exactly that many placements.
func (r *Resolver) placeCount(placed *[]Placement, pl *pool, count CountRange, what string, next func() (entity.Entity, grid.Size)) {
	n := count.Sample(r.rng)
	for i := 0; i < n; i++ {
		ent, size := next()
		if !r.place(placed, pl, what, ent, size) {
			r.log.Debug("spawn pool exhausted",
				"category", what, "wanted", n, "placed", i)
			return
		}
	}
}

// placeWeighted fills the sampled mob count, each slot independently
// selected by weight.
func (r *Resolver) placeWeighted(placed *[]Placement, pl *pool, table Table) {
	if len(table.Mobs) == 0 || table.MobCount.Max == 0 {
		return
	}
	total := 0
	for _, e := range table.Mobs {
		total += e.Weight
	}

	n := table.MobCount.Sample(r.rng)
	for i := 0; i < n; i++ {
		entry := weightedSelect(r.rng, table.Mobs, total)
		ent := entity.Entity{Kind: entity.KindMob, MobID: entry.MobID}
		if !r.place(placed, pl, "mob", ent, sizeOrSingle(entry.Size)) {
			r.log.Debug("spawn pool exhausted",
				"category", "weighted mob", "wanted", n, "placed", i)
			return
		}
	}
}

// place picks a uniformly random valid anchor and commits the placement.
// Returns false when no anchor can hold the footprint.
func (r *Resolver) place(placed *[]Placement, pl *pool, what string, ent entity.Entity, size grid.Size) bool {
	anchors := pl.anchors(size)
	if len(anchors) == 0 {
		return false
	}
	pos := anchors[r.rng.Intn(len(anchors))]
	return r.commit(placed, pl, pos, size, ent)
}

// commit registers occupancy and removes the covered cells from the pool as
// one step; there is no state where an entity is placed but not occupying.
func (r *Resolver) commit(placed *[]Placement, pl *pool, pos grid.Position, size grid.Size, ent entity.Entity) bool {
	ent.ID = r.mint.Mint()
	if err := r.occ.Occupy(pos, size, ent.ID); err != nil {
		// The pool only offers free cells, so this is a caller bug
		// (e.g. door metadata overlapping an existing occupant). Skip
		// the placement rather than aborting the whole floor.
		r.log.Warn("placement rejected", "kind", ent.Kind.String(), "err", err)
		return false
	}
	pl.remove(pos, size)
	*placed = append(*placed, Placement{Ent: ent, Pos: pos, Size: size})
	return true
}

func weightedSelect(rng *rand.Rand, entries []WeightedEntry, total int) WeightedEntry {
	roll := rng.Intn(total)
	cum := 0
	for _, e := range entries {
		cum += e.Weight
		if roll < cum {
			return e
		}
	}
	return entries[0]
}

func sizeOrSingle(s grid.Size) grid.Size {
	if !s.Valid() {
		return grid.Single()
	}
	return s
}
