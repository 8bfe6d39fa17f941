// Package grid tracks which cells of a bounded floor grid are occupied by
// which entity. Footprints larger than 1x1 are fully supported: an entity
// of size WxH claims exactly W*H cells, all mapping back to the same ID.
package grid

// Position is an integer cell coordinate.
type Position struct {
	X, Y int
}

// Size is an integer footprint, at least 1x1.
type Size struct {
	W, H int
}

// Single returns the 1x1 footprint.
func Single() Size {
	return Size{W: 1, H: 1}
}

// Valid reports whether both dimensions are at least 1.
func (s Size) Valid() bool {
	return s.W >= 1 && s.H >= 1
}

// Area returns the number of cells the footprint covers.
func (s Size) Area() int {
	return s.W * s.H
}

// Cells returns every cell covered by a footprint anchored at p.
func (p Position) Cells(s Size) []Position {
	cells := make([]Position, 0, s.Area())
	for dy := 0; dy < s.H; dy++ {
		for dx := 0; dx < s.W; dx++ {
			cells = append(cells, Position{X: p.X + dx, Y: p.Y + dy})
		}
	}
	return cells
}

// Overlaps reports whether two footprints share any cell.
func Overlaps(p1 Position, s1 Size, p2 Position, s2 Size) bool {
	return p1.X < p2.X+s2.W && p1.X+s1.W > p2.X &&
		p1.Y < p2.Y+s2.H && p1.Y+s1.H > p2.Y
}
