package combat

import "math"

// Progression tracks the player's level and experience. XP carries over
// across level-ups and several levels can be gained from one award.
type Progression struct {
	Level   int
	XP      int
	TotalXP int
}

// NewProgression starts at level 1 with no experience.
func NewProgression() Progression {
	return Progression{Level: 1}
}

// XPToNextLevel returns the experience needed to advance from the given
// level: 50 at level 1, growing 10% per level, rounded.
func XPToNextLevel(level int) int {
	return int(math.Round(50 * math.Pow(1.1, float64(level-1))))
}

// AddXP awards experience and applies any level-ups, returning the number
// of levels gained.
func (p *Progression) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.XP += amount
	p.TotalXP += amount

	gained := 0
	for p.XP >= XPToNextLevel(p.Level) {
		p.XP -= XPToNextLevel(p.Level)
		p.Level++
		gained++
	}
	return gained
}
