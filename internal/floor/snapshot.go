package floor

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"deepforge/internal/entity"
	"deepforge/internal/floormap"
	"deepforge/internal/grid"
)

// entityRecord is one serialized placement.
type entityRecord struct {
	ID      uint64 `msgpack:"id"`
	Kind    uint8  `msgpack:"kind"`
	MobID   string `msgpack:"mob,omitempty"`
	Variant int    `msgpack:"variant,omitempty"`
	Rock    uint8  `msgpack:"rock,omitempty"`
	Station uint8  `msgpack:"station,omitempty"`
	X       int    `msgpack:"x"`
	Y       int    `msgpack:"y"`
	W       int    `msgpack:"w"`
	H       int    `msgpack:"h"`
}

// Snapshot captures everything needed to reconstruct an equivalent floor
// over the same terrain: the occupancy roster, the ID minter position and
// the RNG state as (seed, draws). Terrain itself is the host's to persist.
type Snapshot struct {
	Depth    int            `msgpack:"depth"`
	Width    int            `msgpack:"width"`
	Height   int            `msgpack:"height"`
	Seed     int64          `msgpack:"seed"`
	Draws    uint64         `msgpack:"draws"`
	NextID   uint64         `msgpack:"next_id"`
	Entities []entityRecord `msgpack:"entities"`
}

// Snapshot exports the floor's current state. Entities are sorted by ID so
// equal floors produce byte-identical snapshots.
func (f *Floor) Snapshot() *Snapshot {
	s := &Snapshot{
		Depth:  f.Depth,
		Width:  f.Occ.Width(),
		Height: f.Occ.Height(),
		Seed:   f.seed,
		Draws:  f.src.draws,
		NextID: uint64(f.mint.Peek()),
	}
	for _, r := range f.ents {
		s.Entities = append(s.Entities, entityRecord{
			ID:      uint64(r.ent.ID),
			Kind:    uint8(r.ent.Kind),
			MobID:   r.ent.MobID,
			Variant: r.ent.ChestVariant,
			Rock:    uint8(r.ent.Rock),
			Station: uint8(r.ent.Station),
			X:       r.pos.X,
			Y:       r.pos.Y,
			W:       r.size.W,
			H:       r.size.H,
		})
	}
	sort.Slice(s.Entities, func(i, j int) bool { return s.Entities[i].ID < s.Entities[j].ID })
	return s
}

// Encode serializes the snapshot with msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot parses a msgpack snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode floor snapshot: %w", err)
	}
	return &s, nil
}

// Restore rebuilds a floor from a snapshot over the given terrain. The
// restored floor's RNG continues exactly where the snapshotted one left
// off, so resumed rule evaluation stays deterministic.
func Restore(s *Snapshot, m *floormap.Map, log *slog.Logger) (*Floor, error) {
	if m.Width() != s.Width || m.Height() != s.Height {
		return nil, fmt.Errorf("restore floor: terrain is %dx%d, snapshot is %dx%d",
			m.Width(), m.Height(), s.Width, s.Height)
	}
	f := New(s.Depth, m, s.Seed, log)
	f.src.advance(s.Draws)

	for _, rec := range s.Entities {
		ent := entity.Entity{
			ID:           entity.ID(rec.ID),
			Kind:         entity.Kind(rec.Kind),
			MobID:        rec.MobID,
			ChestVariant: rec.Variant,
			Rock:         entity.RockType(rec.Rock),
			Station:      entity.StationType(rec.Station),
		}
		pos := grid.Position{X: rec.X, Y: rec.Y}
		size := grid.Size{W: rec.W, H: rec.H}
		if err := f.Occ.Occupy(pos, size, ent.ID); err != nil {
			return nil, fmt.Errorf("restore floor: entity %d: %w", rec.ID, err)
		}
		f.ents[ent.ID] = &record{ent: ent, pos: pos, size: size}
	}
	f.mint.Resume(entity.ID(s.NextID) - 1)
	return f, nil
}
