// Package combat resolves attacks between two combatants: damage with
// diminishing-returns mitigation, health and death transitions, victory
// rewards and the turn-based encounter state machine. Everything here is
// plain data plus free functions; no component dispatch.
package combat

import "math/rand"

// Stats holds the combat-relevant numbers of one combatant. Attack is a
// range rolled per swing; everything else is a fixed value for the
// combatant's lifetime (health mutates, the rest only via equipment which
// is the caller's concern).
type Stats struct {
	Health    int
	MaxHealth int
	AttackMin int
	AttackMax int
	Defense   int
	GoldFind  int
	MagicFind int
}

// Alive reports whether the combatant still has health left.
func (s *Stats) Alive() bool {
	return s.Health > 0
}

// TakeDamage reduces health by dmg, flooring at zero.
func (s *Stats) TakeDamage(dmg int) {
	s.Health -= dmg
	if s.Health < 0 {
		s.Health = 0
	}
}

// RestoreFull sets health back to max.
func (s *Stats) RestoreFull() {
	s.Health = s.MaxHealth
}

// RollAttack draws a raw damage value uniformly from the attack range,
// inclusive on both ends.
func (s *Stats) RollAttack(rng *rand.Rand) int {
	if s.AttackMax <= s.AttackMin {
		return s.AttackMin
	}
	return s.AttackMin + rng.Intn(s.AttackMax-s.AttackMin+1)
}

// Player bundles the player-side state an encounter needs: stats, carried
// gold, and progression. One instance lives as long as the player does.
type Player struct {
	Name  string
	Stats Stats
	Gold  int
	Prog  Progression
}
