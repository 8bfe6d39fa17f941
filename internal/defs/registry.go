package defs

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"deepforge/internal/combat"
	"deepforge/internal/grid"
	"deepforge/internal/loot"
	"deepforge/internal/spawn"
)

// MobRegistry is an immutable id -> spec map, built once at startup.
type MobRegistry struct {
	defs map[string]MobDef
	// loot tables are validated and built alongside the defs so Spawn
	// stays cheap and cannot fail on content errors.
	tables map[string]*loot.Table
}

// NewMobRegistry validates the definitions and builds the registry.
func NewMobRegistry(defs []MobDef) (*MobRegistry, error) {
	r := &MobRegistry{
		defs:   make(map[string]MobDef, len(defs)),
		tables: make(map[string]*loot.Table, len(defs)),
	}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("mob %q: duplicate definition", d.ID)
		}
		entries := make([]loot.Entry, 0, len(d.Loot))
		for _, l := range d.Loot {
			entries = append(entries, loot.Entry{
				Item:        l.Item,
				Numerator:   l.Numerator,
				Denominator: l.Denominator,
				QtyMin:      l.Quantity.Min,
				QtyMax:      l.Quantity.Max,
			})
		}
		table, err := loot.NewTable(entries...)
		if err != nil {
			return nil, fmt.Errorf("mob %q: %w", d.ID, err)
		}
		r.defs[d.ID] = d
		r.tables[d.ID] = table
	}
	return r, nil
}

// LoadMobRegistry reads mob definitions from a YAML file.
func LoadMobRegistry(path string) (*MobRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mob defs: %w", err)
	}
	var defs []MobDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse mob defs: %w", err)
	}
	return NewMobRegistry(defs)
}

// Get returns the definition for an id.
func (r *MobRegistry) Get(id string) (MobDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns all known mob ids, sorted.
func (r *MobRegistry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered mobs.
func (r *MobRegistry) Len() int {
	return len(r.defs)
}

// Size returns the grid footprint for a mob id, defaulting to 1x1.
func (r *MobRegistry) Size(id string) grid.Size {
	d, ok := r.defs[id]
	if !ok || (d.Size == SizeDef{}) {
		return grid.Single()
	}
	return grid.Size{W: d.Size.W, H: d.Size.H}
}

// Spawn instantiates a combat mob from its definition, rolling the ranged
// stats with the floor's RNG.
func (r *MobRegistry) Spawn(id string, rng *rand.Rand) (combat.Mob, error) {
	d, ok := r.defs[id]
	if !ok {
		return combat.Mob{}, fmt.Errorf("spawn mob: unknown id %q", id)
	}
	health := d.Health.Roll(rng)
	return combat.Mob{
		ID:   d.ID,
		Name: d.Name,
		Stats: combat.Stats{
			Health:    health,
			MaxHealth: health,
			AttackMin: d.Attack.Min,
			AttackMax: d.Attack.Max,
			Defense:   d.Defense.Roll(rng),
		},
		BaseGold: d.Gold.Roll(rng),
		BaseXP:   d.XP.Roll(rng),
		Loot:     r.tables[d.ID],
	}, nil
}

// SpawnTable converts a floor definition into the resolver's runtime table,
// filling in footprints from the registry.
func (r *MobRegistry) SpawnTable(f FloorDef) (spawn.Table, error) {
	t := spawn.Table{
		Chests:      spawn.CountRange(f.Chests),
		Stairs:      spawn.CountRange(f.Stairs),
		Rocks:       spawn.CountRange(f.Rocks),
		Forges:      spawn.CountRange(f.Forges),
		Anvils:      spawn.CountRange(f.Anvils),
		ForgeChance: f.ForgeChance,
		AnvilChance: f.AnvilChance,
		MobCount:    spawn.CountRange(f.MobCount),
	}
	for _, n := range f.NPCs {
		if _, ok := r.defs[n.Mob]; !ok {
			return spawn.Table{}, fmt.Errorf("floor %d: npc references unknown mob %q", f.Depth, n.Mob)
		}
		if n.Chance > 0 {
			t.NPCChances = append(t.NPCChances, spawn.NPCChanceRule{
				MobID: n.Mob, Chance: n.Chance, Size: r.Size(n.Mob),
			})
		} else {
			t.NPCs = append(t.NPCs, spawn.NPCRule{
				MobID: n.Mob, Count: spawn.CountRange(n.Count), Size: r.Size(n.Mob),
			})
		}
	}
	for _, g := range f.Guaranteed {
		if _, ok := r.defs[g.Mob]; !ok {
			return spawn.Table{}, fmt.Errorf("floor %d: guaranteed rule references unknown mob %q", f.Depth, g.Mob)
		}
		t.Guaranteed = append(t.Guaranteed, spawn.GuaranteedRule{
			MobID: g.Mob, Count: g.Count, Size: r.Size(g.Mob),
		})
	}
	for _, m := range f.Mobs {
		if _, ok := r.defs[m.Mob]; !ok {
			return spawn.Table{}, fmt.Errorf("floor %d: weighted pool references unknown mob %q", f.Depth, m.Mob)
		}
		t.Mobs = append(t.Mobs, spawn.WeightedEntry{
			MobID: m.Mob, Weight: m.Weight, Size: r.Size(m.Mob),
		})
	}
	if err := t.Validate(); err != nil {
		return spawn.Table{}, fmt.Errorf("floor %d: %w", f.Depth, err)
	}
	return t, nil
}

// LoadFloorDefs reads floor spawn definitions from a YAML file, keyed by
// depth.
func LoadFloorDefs(path string) (map[int]FloorDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read floor defs: %w", err)
	}
	var defs []FloorDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse floor defs: %w", err)
	}
	out := make(map[int]FloorDef, len(defs))
	for _, d := range defs {
		if _, dup := out[d.Depth]; dup {
			return nil, fmt.Errorf("floor %d: duplicate definition", d.Depth)
		}
		out[d.Depth] = d
	}
	return out, nil
}
