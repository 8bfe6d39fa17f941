// Package entity defines the identifier and tagged-union model for
// everything that can occupy a dungeon floor cell.
package entity

// ID uniquely identifies one placed entity within a floor.
type ID uint64

// Nil is the zero ID, never assigned to a real entity.
const Nil ID = 0

// Kind discriminates the payload carried by an Entity.
type Kind uint8

const (
	KindMob Kind = iota
	KindNPC
	KindChest
	KindStairs
	KindRock
	KindCraftingStation
	KindDoor
	KindPlayer
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMob:
		return "mob"
	case KindNPC:
		return "npc"
	case KindChest:
		return "chest"
	case KindStairs:
		return "stairs"
	case KindRock:
		return "rock"
	case KindCraftingStation:
		return "crafting_station"
	case KindDoor:
		return "door"
	case KindPlayer:
		return "player"
	}
	return "unknown"
}

// RockType identifies the ore a rock yields when mined.
type RockType uint8

const (
	RockCoal RockType = iota
	RockCopper
	RockIron
	RockGold
)

// StationType identifies a crafting station variant.
type StationType uint8

const (
	StationForge StationType = iota
	StationAnvil
)

// Entity is one placed floor occupant. Kind selects which payload fields
// are meaningful; the rest stay at their zero values.
type Entity struct {
	ID   ID
	Kind Kind

	// KindMob / KindNPC
	MobID string

	// KindChest
	ChestVariant int

	// KindRock
	Rock RockType

	// KindCraftingStation
	Station StationType
}

// Minter hands out unique entity IDs for one floor.
type Minter struct {
	next ID
}

// NewMinter creates a Minter whose first minted ID is 1.
func NewMinter() *Minter {
	return &Minter{next: 1}
}

// Mint returns the next unused ID.
func (m *Minter) Mint() ID {
	id := m.next
	m.next++
	return id
}

// Peek returns the ID the next Mint call will hand out.
func (m *Minter) Peek() ID {
	return m.next
}

// Resume moves the minter past IDs already in use, for snapshot restore.
func (m *Minter) Resume(highest ID) {
	if highest >= m.next {
		m.next = highest + 1
	}
}
