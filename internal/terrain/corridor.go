package terrain

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in the
// configured style.
func carveCorridor(b *builder, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		midY := (y1 + y2) / 2
		carveV(b, y1, midY, x1)
		carveH(b, x1, x2, midY)
		carveV(b, midY, y2, x2)
	case CorridorStraight:
		carveH(b, x1, x2, y1)
		carveV(b, y1, y2, x2)
	default: // L-shaped, elbow direction chosen at random
		if cfg.Rand.Intn(2) == 0 {
			carveH(b, x1, x2, y1)
			carveV(b, y1, y2, x2)
		} else {
			carveV(b, y1, y2, x1)
			carveH(b, x1, x2, y2)
		}
	}
}

func carveH(b *builder, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		b.carve(x, y)
	}
}

func carveV(b *builder, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		b.carve(x, y)
	}
}
