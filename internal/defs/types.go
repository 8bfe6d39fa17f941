// Package defs holds the static content definitions: mob specs and
// per-floor spawn tables. Definitions are plain data loaded once at
// startup — from YAML files or the compiled-in defaults — validated, and
// then served from immutable registries. Instantiation is a pure function
// of a definition plus an injected RNG.
package defs

import (
	"fmt"
	"math/rand"
)

// Range is an inclusive integer range used for rolled stats and counts.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Fixed returns a range that always rolls n.
func Fixed(n int) Range {
	return Range{Min: n, Max: n}
}

// Roll draws uniformly from the range, inclusive on both ends.
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r Range) validate(what string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s: range %d..%d is invalid", what, r.Min, r.Max)
	}
	return nil
}

// LootDef is one drop table entry as it appears in content files.
type LootDef struct {
	Item        string `yaml:"item"`
	Numerator   int    `yaml:"numerator"`
	Denominator int    `yaml:"denominator"`
	Quantity    Range  `yaml:"quantity"`
}

// SizeDef is a grid footprint in content files; zero means 1x1.
type SizeDef struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// MobDef describes one mob type. Stats given as ranges are rolled once per
// spawned instance; attack stays a range and is rolled per swing.
type MobDef struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Boss    bool      `yaml:"boss"`
	NPC     bool      `yaml:"npc"`
	Health  Range     `yaml:"health"`
	Attack  Range     `yaml:"attack"`
	Defense Range     `yaml:"defense"`
	Gold    Range     `yaml:"gold"`
	XP      Range     `yaml:"xp"`
	Size    SizeDef   `yaml:"size"`
	Loot    []LootDef `yaml:"loot"`
}

func (d MobDef) validate() error {
	if d.ID == "" {
		return fmt.Errorf("mob def: empty id")
	}
	if d.Name == "" {
		return fmt.Errorf("mob %q: empty name", d.ID)
	}
	if d.Health.Min < 1 && !d.NPC {
		return fmt.Errorf("mob %q: health range must start at 1 or higher", d.ID)
	}
	for _, c := range []struct {
		name string
		r    Range
	}{
		{"health", d.Health},
		{"attack", d.Attack},
		{"defense", d.Defense},
		{"gold", d.Gold},
		{"xp", d.XP},
	} {
		if err := c.r.validate(fmt.Sprintf("mob %q: %s", d.ID, c.name)); err != nil {
			return err
		}
	}
	if (d.Size != SizeDef{}) && (d.Size.W < 1 || d.Size.H < 1) {
		return fmt.Errorf("mob %q: size %dx%d is invalid", d.ID, d.Size.W, d.Size.H)
	}
	return nil
}

// NPCSpawnDef and the fields below mirror the spawn table categories.
type NPCSpawnDef struct {
	Mob    string  `yaml:"mob"`
	Count  Range   `yaml:"count"`
	Chance float64 `yaml:"chance"`
}

// GuaranteedDef places an exact count of one mob.
type GuaranteedDef struct {
	Mob   string `yaml:"mob"`
	Count int    `yaml:"count"`
}

// WeightedDef is one entry of the weighted mob pool.
type WeightedDef struct {
	Mob    string `yaml:"mob"`
	Weight int    `yaml:"weight"`
}

// FloorDef is the declarative spawn configuration for one floor depth.
type FloorDef struct {
	Depth       int             `yaml:"depth"`
	Chests      Range           `yaml:"chests"`
	Stairs      Range           `yaml:"stairs"`
	Rocks       Range           `yaml:"rocks"`
	Forges      Range           `yaml:"forges"`
	Anvils      Range           `yaml:"anvils"`
	ForgeChance float64         `yaml:"forge_chance"`
	AnvilChance float64         `yaml:"anvil_chance"`
	NPCs        []NPCSpawnDef   `yaml:"npcs"`
	Guaranteed  []GuaranteedDef `yaml:"guaranteed"`
	Mobs        []WeightedDef   `yaml:"mobs"`
	MobCount    Range           `yaml:"mob_count"`
}
