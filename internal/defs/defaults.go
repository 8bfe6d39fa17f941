package defs

import (
	"deepforge/internal/entity"
	"deepforge/internal/loot"
)

// DefaultMobs returns the compiled-in mob roster, so the library works with
// no content files on disk. A YAML file with the same shape overrides it.
func DefaultMobs() []MobDef {
	return []MobDef{
		{
			ID: "slime", Name: "Slime",
			Health: Range{Min: 15, Max: 25},
			Attack: Range{Min: 2, Max: 5},
			Gold:   Range{Min: 3, Max: 8},
			XP:     Range{Min: 4, Max: 6},
			Loot: []LootDef{
				{Item: "slime_gel", Numerator: 1, Denominator: 2, Quantity: Fixed(1)},
			},
		},
		{
			ID: "goblin", Name: "Goblin",
			Health:  Range{Min: 25, Max: 40},
			Attack:  Range{Min: 4, Max: 9},
			Defense: Range{Min: 2, Max: 5},
			Gold:    Range{Min: 8, Max: 18},
			XP:      Range{Min: 8, Max: 12},
			Loot: []LootDef{
				{Item: "crude_dagger", Numerator: 1, Denominator: 6, Quantity: Fixed(1)},
				{Item: "torn_pouch", Numerator: 1, Denominator: 3, Quantity: Range{Min: 1, Max: 2}},
			},
		},
		{
			ID: "dwarf_miner", Name: "Dwarf Miner",
			Health:  Range{Min: 30, Max: 45},
			Attack:  Range{Min: 5, Max: 10},
			Defense: Range{Min: 4, Max: 8},
			Gold:    Range{Min: 10, Max: 22},
			XP:      Range{Min: 10, Max: 14},
			Loot: []LootDef{
				{Item: "copper_ore", Numerator: 1, Denominator: 2, Quantity: Range{Min: 1, Max: 3}},
				{Item: "rusty_pick", Numerator: 1, Denominator: 8, Quantity: Fixed(1)},
			},
		},
		{
			ID: "dwarf_warrior", Name: "Dwarf Warrior",
			Health:  Range{Min: 45, Max: 65},
			Attack:  Range{Min: 8, Max: 14},
			Defense: Range{Min: 8, Max: 14},
			Gold:    Range{Min: 18, Max: 35},
			XP:      Range{Min: 16, Max: 22},
			Loot: []LootDef{
				{Item: "iron_axe", Numerator: 1, Denominator: 10, Quantity: Fixed(1)},
			},
		},
		{
			ID: "dwarf_defender", Name: "Dwarf Defender",
			Health:  Range{Min: 55, Max: 75},
			Attack:  Range{Min: 6, Max: 11},
			Defense: Range{Min: 14, Max: 22},
			Gold:    Range{Min: 20, Max: 38},
			XP:      Range{Min: 18, Max: 24},
			Loot: []LootDef{
				{Item: "tower_shield", Numerator: 1, Denominator: 12, Quantity: Fixed(1)},
			},
		},
		{
			ID: "dwarf_king", Name: "Dwarf King", Boss: true,
			Health:  Range{Min: 160, Max: 200},
			Attack:  Range{Min: 14, Max: 24},
			Defense: Range{Min: 20, Max: 30},
			Gold:    Range{Min: 120, Max: 200},
			XP:      Range{Min: 80, Max: 110},
			Size:    SizeDef{W: 2, H: 2},
			Loot: []LootDef{
				{Item: "kings_crown", Numerator: 1, Denominator: 1, Quantity: Fixed(1)},
				{Item: "gold_ore", Numerator: 1, Denominator: 2, Quantity: Range{Min: 2, Max: 5}},
			},
		},
		{
			ID: "merchant", Name: "Merchant", NPC: true,
		},
	}
}

// DefaultFloors returns the compiled-in spawn tables for floors 1-3.
func DefaultFloors() map[int]FloorDef {
	return map[int]FloorDef{
		1: {
			Depth:       1,
			Chests:      Range{Min: 1, Max: 2},
			Stairs:      Fixed(1),
			Rocks:       Range{Min: 2, Max: 5},
			ForgeChance: 0.25,
			NPCs:        []NPCSpawnDef{{Mob: "merchant", Chance: 0.4}},
			Mobs: []WeightedDef{
				{Mob: "slime", Weight: 6},
				{Mob: "goblin", Weight: 3},
			},
			MobCount: Range{Min: 3, Max: 6},
		},
		2: {
			Depth:       2,
			Chests:      Range{Min: 1, Max: 3},
			Stairs:      Fixed(1),
			Rocks:       Range{Min: 3, Max: 7},
			Forges:      Fixed(1),
			AnvilChance: 0.5,
			NPCs:        []NPCSpawnDef{{Mob: "merchant", Chance: 0.25}},
			Guaranteed:  []GuaranteedDef{{Mob: "dwarf_miner", Count: 2}},
			Mobs: []WeightedDef{
				{Mob: "goblin", Weight: 4},
				{Mob: "dwarf_miner", Weight: 4},
				{Mob: "dwarf_warrior", Weight: 2},
			},
			MobCount: Range{Min: 4, Max: 8},
		},
		3: {
			Depth:      3,
			Chests:     Range{Min: 2, Max: 4},
			Rocks:      Range{Min: 4, Max: 8},
			Forges:     Fixed(1),
			Anvils:     Fixed(1),
			Guaranteed: []GuaranteedDef{{Mob: "dwarf_king", Count: 1}},
			Mobs: []WeightedDef{
				{Mob: "dwarf_miner", Weight: 3},
				{Mob: "dwarf_warrior", Weight: 4},
				{Mob: "dwarf_defender", Weight: 3},
			},
			MobCount: Range{Min: 5, Max: 9},
		},
	}
}

// rockLoot maps each rock type to its mining drop table.
var rockLoot = map[entity.RockType]*loot.Table{
	entity.RockCoal: loot.MustTable(
		loot.Entry{Item: "coal", Numerator: 1, Denominator: 1, QtyMin: 1, QtyMax: 3},
	),
	entity.RockCopper: loot.MustTable(
		loot.Entry{Item: "copper_ore", Numerator: 1, Denominator: 1, QtyMin: 1, QtyMax: 2},
		loot.Entry{Item: "coal", Numerator: 1, Denominator: 4, QtyMin: 1, QtyMax: 1},
	),
	entity.RockIron: loot.MustTable(
		loot.Entry{Item: "iron_ore", Numerator: 1, Denominator: 1, QtyMin: 1, QtyMax: 2},
	),
	entity.RockGold: loot.MustTable(
		loot.Entry{Item: "gold_ore", Numerator: 1, Denominator: 2, QtyMin: 1, QtyMax: 2},
		loot.Entry{Item: "coal", Numerator: 1, Denominator: 3, QtyMin: 1, QtyMax: 2},
	),
}

// RockLoot returns the drop table mined from a rock type.
func RockLoot(rock entity.RockType) *loot.Table {
	return rockLoot[rock]
}
