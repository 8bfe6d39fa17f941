// Package spawn turns a declarative spawn table into concrete entity
// placements on a floor grid. Categories are processed in a fixed order,
// each consuming cells from a shared candidate pool, so later categories
// can never steal cells claimed by earlier ones.
package spawn

import (
	"fmt"
	"math/rand"

	"deepforge/internal/grid"
)

// CountRange is an inclusive count range sampled once per category.
type CountRange struct {
	Min, Max int
}

// Exactly returns a range that always samples to n.
func Exactly(n int) CountRange {
	return CountRange{Min: n, Max: n}
}

// Sample draws a count uniformly from the range.
func (c CountRange) Sample(rng *rand.Rand) int {
	if c.Max <= c.Min {
		return c.Min
	}
	return c.Min + rng.Intn(c.Max-c.Min+1)
}

func (c CountRange) validate(what string) error {
	if c.Min < 0 || c.Max < c.Min {
		return fmt.Errorf("spawn table: %s count range %d..%d is invalid", what, c.Min, c.Max)
	}
	return nil
}

// WeightedEntry is one candidate in the weighted mob pool. Selection
// probability is proportional to Weight.
type WeightedEntry struct {
	MobID  string
	Weight int
	Size   grid.Size
}

// GuaranteedRule places an exact count of one mob type.
type GuaranteedRule struct {
	MobID string
	Count int
	Size  grid.Size
}

// NPCRule places a count-ranged batch of one NPC type.
type NPCRule struct {
	MobID string
	Count CountRange
	Size  grid.Size
}

// NPCChanceRule places a single NPC gated on one Bernoulli trial.
type NPCChanceRule struct {
	MobID  string
	Chance float64
	Size   grid.Size
}

// Table is the declarative spawn configuration for one floor. The resolver
// applies categories in this order: doors (from terrain metadata), chests,
// stairs, rocks, crafting stations, NPCs, guaranteed mobs, weighted mobs.
type Table struct {
	Chests CountRange
	Stairs CountRange
	Rocks  CountRange

	Forges CountRange
	Anvils CountRange
	// ForgeChance/AnvilChance gate one extra station on a Bernoulli trial.
	// Zero disables the trial.
	ForgeChance float64
	AnvilChance float64

	NPCs       []NPCRule
	NPCChances []NPCChanceRule

	Guaranteed []GuaranteedRule
	Mobs       []WeightedEntry
	MobCount   CountRange
}

// Validate rejects malformed configuration. A bad table is a content bug,
// caught at construction time rather than during resolution.
func (t *Table) Validate() error {
	ranges := []struct {
		name string
		r    CountRange
	}{
		{"chest", t.Chests},
		{"stairs", t.Stairs},
		{"rock", t.Rocks},
		{"forge", t.Forges},
		{"anvil", t.Anvils},
		{"mob", t.MobCount},
	}
	for _, c := range ranges {
		if err := c.r.validate(c.name); err != nil {
			return err
		}
	}
	for _, p := range []struct {
		name string
		v    float64
	}{{"forge", t.ForgeChance}, {"anvil", t.AnvilChance}} {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("spawn table: %s chance %v outside [0, 1]", p.name, p.v)
		}
	}
	for _, n := range t.NPCs {
		if n.MobID == "" {
			return fmt.Errorf("spawn table: npc rule with empty mob id")
		}
		if err := n.Count.validate("npc " + n.MobID); err != nil {
			return err
		}
	}
	for _, n := range t.NPCChances {
		if n.MobID == "" {
			return fmt.Errorf("spawn table: npc chance rule with empty mob id")
		}
		if n.Chance < 0 || n.Chance > 1 {
			return fmt.Errorf("spawn table: npc %s chance %v outside [0, 1]", n.MobID, n.Chance)
		}
	}
	for _, g := range t.Guaranteed {
		if g.MobID == "" {
			return fmt.Errorf("spawn table: guaranteed rule with empty mob id")
		}
		if g.Count < 0 {
			return fmt.Errorf("spawn table: guaranteed %s count %d is negative", g.MobID, g.Count)
		}
	}
	for _, m := range t.Mobs {
		if m.MobID == "" {
			return fmt.Errorf("spawn table: weighted entry with empty mob id")
		}
		if m.Weight <= 0 {
			return fmt.Errorf("spawn table: weighted entry %s weight %d must be positive", m.MobID, m.Weight)
		}
	}
	return nil
}
