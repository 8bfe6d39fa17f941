package grid

import (
	"errors"
	"fmt"

	"deepforge/internal/entity"
)

// ErrOccupancyConflict is returned by Occupy when any covered cell is
// already claimed. Callers are expected to have validated the target first,
// so hitting this usually means a caller bug.
var ErrOccupancyConflict = errors.New("cell already occupied")

// ErrInvalidFootprint is returned when a footprint is degenerate or extends
// outside the grid bounds.
var ErrInvalidFootprint = errors.New("footprint outside grid bounds")

// Occupancy maps occupied cells to entity IDs for one floor grid.
// It is owned by a single floor and never shared, so it carries no locking.
type Occupancy struct {
	width, height int
	cells         map[Position]entity.ID
}

// NewOccupancy creates an empty Occupancy for a width x height grid.
func NewOccupancy(width, height int) *Occupancy {
	return &Occupancy{
		width:  width,
		height: height,
		cells:  make(map[Position]entity.ID),
	}
}

// Width returns the grid width in cells.
func (o *Occupancy) Width() int { return o.width }

// Height returns the grid height in cells.
func (o *Occupancy) Height() int { return o.height }

// InBounds reports whether (x, y) lies within the grid.
func (o *Occupancy) InBounds(x, y int) bool {
	return x >= 0 && x < o.width && y >= 0 && y < o.height
}

// fits reports whether the whole footprint lies within the grid.
func (o *Occupancy) fits(pos Position, size Size) bool {
	return size.Valid() &&
		o.InBounds(pos.X, pos.Y) &&
		o.InBounds(pos.X+size.W-1, pos.Y+size.H-1)
}

// Occupy claims every cell covered by the footprint for id. The claim is
// all-or-nothing: if any covered cell is already occupied or the footprint
// does not fit the grid, no cell is modified.
func (o *Occupancy) Occupy(pos Position, size Size, id entity.ID) error {
	if !o.fits(pos, size) {
		return fmt.Errorf("occupy %dx%d at (%d,%d): %w", size.W, size.H, pos.X, pos.Y, ErrInvalidFootprint)
	}
	cells := pos.Cells(size)
	for _, c := range cells {
		if _, taken := o.cells[c]; taken {
			return fmt.Errorf("occupy %dx%d at (%d,%d): cell (%d,%d): %w",
				size.W, size.H, pos.X, pos.Y, c.X, c.Y, ErrOccupancyConflict)
		}
	}
	for _, c := range cells {
		o.cells[c] = id
	}
	return nil
}

// Vacate clears every cell covered by the footprint. Cells that are already
// empty are left alone, so vacating twice is harmless.
func (o *Occupancy) Vacate(pos Position, size Size) {
	for _, c := range pos.Cells(size) {
		delete(o.cells, c)
	}
}

// IsOccupied reports whether the cell at (x, y) is claimed.
func (o *Occupancy) IsOccupied(x, y int) bool {
	_, ok := o.cells[Position{X: x, Y: y}]
	return ok
}

// At returns the entity occupying (x, y), or entity.Nil.
func (o *Occupancy) At(x, y int) entity.ID {
	return o.cells[Position{X: x, Y: y}]
}

// Free returns the number of unclaimed in-bounds cells.
func (o *Occupancy) Free() int {
	return o.width*o.height - len(o.cells)
}

// Adjacent returns the distinct entities occupying the cardinal neighbor
// cells of the footprint: the rows directly above and below it and the
// columns directly left and right of it. Diagonal corners are excluded.
// Used for interaction checks ("is the player next to this chest").
func (o *Occupancy) Adjacent(pos Position, size Size) []entity.ID {
	var out []entity.ID
	seen := make(map[entity.ID]bool)
	add := func(x, y int) {
		id := o.At(x, y)
		if id == entity.Nil || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for dx := 0; dx < size.W; dx++ {
		add(pos.X+dx, pos.Y-1)      // above
		add(pos.X+dx, pos.Y+size.H) // below
	}
	for dy := 0; dy < size.H; dy++ {
		add(pos.X-1, pos.Y+dy)      // left
		add(pos.X+size.W, pos.Y+dy) // right
	}
	return out
}
