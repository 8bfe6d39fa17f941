package floormap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
	TileEntrance
	TileExit
)

// Tile holds the terrain properties of one map cell. Walkable controls
// movement; Spawn marks cells eligible for entity placement (entrances,
// exits and doors are walkable but never spawn-eligible).
type Tile struct {
	Kind     TileKind
	Walkable bool
	Spawn    bool
}

// MakeWall returns a blocking wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable, spawn-eligible floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Spawn: true}
}

// MakeDoor returns a door tile. Doors are walkable but reserved: the spawn
// resolver places door entities on them directly from this metadata.
func MakeDoor() Tile {
	return Tile{Kind: TileDoor, Walkable: true}
}

// MakeEntrance returns the tile the player arrives on.
func MakeEntrance() Tile {
	return Tile{Kind: TileEntrance, Walkable: true}
}

// MakeExit returns the tile leading to the next floor.
func MakeExit() Tile {
	return Tile{Kind: TileExit, Walkable: true}
}
