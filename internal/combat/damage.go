package combat

import "math"

// defenseConstant tunes the diminishing-returns mitigation curve.
// 50 defense halves incoming damage; 100 defense removes two thirds.
const defenseConstant = 50.0

// Mitigation returns the fractional damage reduction for a defense value.
// Always in [0, 1): strictly increasing in defense, approaching but never
// reaching 1. Negative defense counts as zero.
func Mitigation(defense int) float64 {
	d := float64(defense)
	if d < 0 {
		d = 0
	}
	return d / (d + defenseConstant)
}

// ApplyDefense reduces raw damage by the defender's mitigation and rounds
// to the nearest integer. There is deliberately no minimum-1 floor: a weak
// hit into heavy armor can round down to zero.
func ApplyDefense(rawDamage, defense int) int {
	return int(math.Round(float64(rawDamage) * (1 - Mitigation(defense))))
}

// ApplyGoldFind scales a base gold amount by the gold-find percentage:
// final = round(base * (1 + goldFind/100)).
func ApplyGoldFind(baseGold, goldFind int) int {
	return int(math.Round(float64(baseGold) * (1 + float64(goldFind)/100)))
}

// defeatGoldPenalty returns the gold lost on player defeat: 5% of carried
// gold, rounded down.
func defeatGoldPenalty(gold int) int {
	if gold <= 0 {
		return 0
	}
	return gold * 5 / 100
}
