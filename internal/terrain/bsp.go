// Package terrain carves dungeon layouts with binary space partitioning:
// the map is split into leaves, each terminal leaf gets a room, and sibling
// rooms are joined by corridors. The entrance lands in the first room, the
// exit in the last, and door tiles are marked where corridors pierce room
// walls so spawn resolution can place door entities on them.
package terrain

import (
	"fmt"
	"math/rand"

	"deepforge/internal/floormap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives layout generation for one floor.
type Config struct {
	Width, Height int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	Rand          *rand.Rand
}

// DefaultConfig returns a layout configuration tuned for the given map
// size.
func DefaultConfig(width, height int, rng *rand.Rand) Config {
	return Config{
		Width:       width,
		Height:      height,
		MinLeafSize: 6,
		MaxLeafSize: 12,
		MinRoomSize: 3,
		RoomPadding: 1,
		Rand:        rng,
	}
}

// rect is an inclusive rectangle of room cells.
type rect struct {
	x1, y1, x2, y2 int
}

func (r rect) center() (int, int) {
	return (r.x1 + r.x2) / 2, (r.y1 + r.y2) / 2
}

func (r rect) contains(x, y int) bool {
	return x >= r.x1 && x <= r.x2 && y >= r.y1 && y <= r.y2
}

// leaf is a node in the BSP tree.
type leaf struct {
	x, y, w, h  int
	left, right *leaf
	room        *rect
}

// split divides the leaf into two children, returning false when it is too
// small to divide.
func (l *leaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Split across the longer axis when the leaf is clearly elongated.
	splitH := cfg.Rand.Intn(2) == 0
	if l.w > l.h && float64(l.w)/float64(l.h) >= 1.25 {
		splitH = false
	} else if l.h > l.w && float64(l.h)/float64(l.w) >= 1.25 {
		splitH = true
	}

	maxSize := l.h
	if !splitH {
		maxSize = l.w
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &leaf{x: l.x, y: l.y, w: l.w, h: at}
		l.right = &leaf{x: l.x, y: l.y + at, w: l.w, h: l.h - at}
	} else {
		l.left = &leaf{x: l.x, y: l.y, w: at, h: l.h}
		l.right = &leaf{x: l.x + at, y: l.y, w: l.w - at, h: l.h}
	}
	return true
}

// carveRooms recursively places a room inside every terminal leaf.
func (l *leaf) carveRooms(b *builder, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.carveRooms(b, cfg)
		}
		if l.right != nil {
			l.right.carveRooms(b, cfg)
		}
		return
	}

	pad := cfg.RoomPadding
	availW := max(l.w-2*pad, cfg.MinRoomSize)
	availH := max(l.h-2*pad, cfg.MinRoomSize)

	rw := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1))
	rh := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1))
	rw = min(rw, l.w-2*pad)
	rh = min(rh, l.h-2*pad)
	rw = max(rw, 3)
	rh = max(rh, 3)

	rx := l.x + pad + cfg.Rand.Intn(max(1, l.w-rw-2*pad+1))
	ry := l.y + pad + cfg.Rand.Intn(max(1, l.h-rh-2*pad+1))

	// Keep a one-cell wall border around the map.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= cfg.Width {
		rw = cfg.Width - rx - 1
	}
	if ry+rh >= cfg.Height {
		rh = cfg.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := rect{x1: rx, y1: ry, x2: rx + rw - 1, y2: ry + rh - 1}
	l.room = &room
	for y := room.y1; y <= room.y2; y++ {
		for x := room.x1; x <= room.x2; x++ {
			b.carve(x, y)
		}
	}
	b.rooms = append(b.rooms, room)
}

// nearestRoom returns a room from this subtree.
func (l *leaf) nearestRoom() *rect {
	if l.room != nil {
		return l.room
	}
	var lr, rr *rect
	if l.left != nil {
		lr = l.left.nearestRoom()
	}
	if l.right != nil {
		rr = l.right.nearestRoom()
	}
	if lr == nil {
		return rr
	}
	return lr
}

// connect carves corridors between the rooms of each split's two subtrees.
func (l *leaf) connect(b *builder, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connect(b, cfg)
	l.right.connect(b, cfg)

	lr := l.left.nearestRoom()
	rr := l.right.nearestRoom()
	if lr == nil || rr == nil {
		return
	}
	lx, ly := lr.center()
	rx, ry := rr.center()
	carveCorridor(b, lx, ly, rx, ry, cfg)
}

// builder accumulates carved cells before they become tiles, so door
// detection can distinguish room interiors from corridor cuts.
type builder struct {
	width, height int
	open          []bool
	rooms         []rect
}

func (b *builder) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *builder) carve(x, y int) {
	if b.inBounds(x, y) {
		b.open[y*b.width+x] = true
	}
}

func (b *builder) isOpen(x, y int) bool {
	return b.inBounds(x, y) && b.open[y*b.width+x]
}

func (b *builder) inRoom(x, y int) bool {
	for _, r := range b.rooms {
		if r.contains(x, y) {
			return true
		}
	}
	return false
}

// isDoorway reports whether an open cell is a one-cell gap in a room wall:
// outside every room, passable along exactly one axis, and touching a room
// interior.
func (b *builder) isDoorway(x, y int) bool {
	if b.inRoom(x, y) {
		return false
	}
	horiz := b.isOpen(x-1, y) && b.isOpen(x+1, y)
	vert := b.isOpen(x, y-1) && b.isOpen(x, y+1)
	if horiz == vert {
		return false
	}
	return b.inRoom(x-1, y) || b.inRoom(x+1, y) || b.inRoom(x, y-1) || b.inRoom(x, y+1)
}

// Generate carves a floor layout and returns it as terrain. The same
// config and RNG state always yield the same layout.
func Generate(cfg Config) (*floormap.Map, error) {
	if cfg.Width < cfg.MinLeafSize || cfg.Height < cfg.MinLeafSize {
		return nil, fmt.Errorf("map %dx%d is smaller than the minimum leaf size %d",
			cfg.Width, cfg.Height, cfg.MinLeafSize)
	}
	if cfg.Rand == nil {
		return nil, fmt.Errorf("layout generation needs a random source")
	}

	b := &builder{
		width:  cfg.Width,
		height: cfg.Height,
		open:   make([]bool, cfg.Width*cfg.Height),
	}
	root := &leaf{x: 0, y: 0, w: cfg.Width, h: cfg.Height}

	leaves := []*leaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*leaf
		for _, lf := range leaves {
			if lf.left != nil || lf.right != nil {
				next = append(next, lf.left, lf.right)
				continue
			}
			if lf.w > cfg.MaxLeafSize || lf.h > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if lf.split(&cfg) {
					next = append(next, lf.left, lf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, lf)
		}
		leaves = next
	}

	root.carveRooms(b, &cfg)
	root.connect(b, &cfg)
	if len(b.rooms) == 0 {
		return nil, fmt.Errorf("layout generation produced no rooms on a %dx%d map",
			cfg.Width, cfg.Height)
	}

	m := floormap.New(cfg.Width, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if !b.isOpen(x, y) {
				continue
			}
			if b.isDoorway(x, y) {
				m.Set(x, y, floormap.MakeDoor())
			} else {
				m.Set(x, y, floormap.MakeFloor())
			}
		}
	}

	ex, ey := b.rooms[0].center()
	m.Set(ex, ey, floormap.MakeEntrance())
	if len(b.rooms) > 1 {
		sx, sy := b.rooms[len(b.rooms)-1].center()
		m.Set(sx, sy, floormap.MakeExit())
	}
	return m, nil
}
