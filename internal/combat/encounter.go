package combat

import (
	"errors"
	"fmt"
	"math/rand"

	"deepforge/internal/loot"
)

// Mob is one combat-capable floor occupant: rolled stats plus the rewards
// it yields when defeated.
type Mob struct {
	ID       string
	Name     string
	Stats    Stats
	BaseGold int
	BaseXP   int
	Loot     *loot.Table
}

// AttackOutcome reports one resolved swing as plain data for the caller's
// event/UI layer.
type AttackOutcome struct {
	Attacker     string
	Defender     string
	Damage       int
	HealthBefore int
	HealthAfter  int
	Died         bool
}

// VictoryRewards is emitted when a mob is defeated.
type VictoryRewards struct {
	Gold  int
	XP    int
	Drops []loot.Drop
}

// Attack resolves one swing from attacker against defender. Raw damage is
// rolled from the attack range, reduced by the defender's mitigation and
// applied to health. Attacking an already-dead defender is a no-op, not an
// error: out-of-order delivery at the UI boundary is possible.
func Attack(rng *rand.Rand, attackerName string, attacker *Stats, defenderName string, defender *Stats) AttackOutcome {
	out := AttackOutcome{
		Attacker:     attackerName,
		Defender:     defenderName,
		HealthBefore: defender.Health,
		HealthAfter:  defender.Health,
	}
	if !defender.Alive() {
		return out
	}

	raw := attacker.RollAttack(rng)
	dmg := ApplyDefense(raw, defender.Defense)
	defender.TakeDamage(dmg)

	out.Damage = dmg
	out.HealthAfter = defender.Health
	out.Died = !defender.Alive()
	return out
}

// RollVictoryRewards computes the reward payload for a defeated mob using
// the victor's find bonuses.
func RollVictoryRewards(rng *rand.Rand, mob *Mob, goldFind, magicFind int) VictoryRewards {
	return VictoryRewards{
		Gold:  ApplyGoldFind(mob.BaseGold, goldFind),
		XP:    mob.BaseXP,
		Drops: mob.Loot.Roll(rng, magicFind),
	}
}

// Phase is the encounter state machine position.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlayerTurn
	PhaseResolving
	PhaseVictory
	PhaseDefeat
	PhaseCancelled
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseResolving:
		return "resolving"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ErrBadPhase is returned when an encounter operation is attempted in a
// phase that does not permit it.
var ErrBadPhase = errors.New("operation not valid in current encounter phase")

// Round is the full outcome of one committed player action: the player's
// swing, the mob's counter-swing if it survived, and rewards if it did not.
type Round struct {
	PlayerHit  AttackOutcome
	CounterHit *AttackOutcome
	Rewards    *VictoryRewards

	// GoldLost is set when the round ended in the player's defeat.
	GoldLost int
}

// Encounter drives one fight between the player and a mob. All mutation of
// the player and mob happens inside Resolve; there is no observable state
// where an attack has landed but its death effects have not.
type Encounter struct {
	rng    *rand.Rand
	player *Player
	mob    Mob
	phase  Phase
}

// NewEncounter creates an Idle encounter. The mob is copied in: its health
// belongs to this fight.
func NewEncounter(rng *rand.Rand, player *Player, mob Mob) *Encounter {
	return &Encounter{rng: rng, player: player, mob: mob}
}

// Phase returns the current state machine position.
func (e *Encounter) Phase() Phase {
	return e.phase
}

// Mob returns the mob as it currently stands in this fight.
func (e *Encounter) Mob() *Mob {
	return &e.mob
}

// Begin moves Idle to PlayerTurnPending.
func (e *Encounter) Begin() error {
	if e.phase != PhaseIdle {
		return fmt.Errorf("begin from %s: %w", e.phase, ErrBadPhase)
	}
	e.phase = PhasePlayerTurn
	return nil
}

// Cancel disengages before an attack is committed. Only valid while the
// player's turn is pending; once resolution starts the fight cannot be
// abandoned mid-application.
func (e *Encounter) Cancel() error {
	if e.phase != PhasePlayerTurn {
		return fmt.Errorf("cancel from %s: %w", e.phase, ErrBadPhase)
	}
	e.phase = PhaseCancelled
	return nil
}

// Resolve commits the player's attack and runs the rest of the round as one
// indivisible unit: mob death grants rewards immediately; a surviving mob
// counter-attacks; a player death applies the defeat penalty and full heal.
// The phase afterwards is PlayerTurn (fight continues), Victory or Defeat.
func (e *Encounter) Resolve() (Round, error) {
	if e.phase != PhasePlayerTurn {
		return Round{}, fmt.Errorf("resolve from %s: %w", e.phase, ErrBadPhase)
	}
	e.phase = PhaseResolving

	var round Round
	round.PlayerHit = Attack(e.rng, e.player.Name, &e.player.Stats, e.mob.Name, &e.mob.Stats)

	if round.PlayerHit.Died {
		rewards := RollVictoryRewards(e.rng, &e.mob, e.player.Stats.GoldFind, e.player.Stats.MagicFind)
		e.player.Gold += rewards.Gold
		e.player.Prog.AddXP(rewards.XP)
		round.Rewards = &rewards
		e.phase = PhaseVictory
		return round, nil
	}

	counter := Attack(e.rng, e.mob.Name, &e.mob.Stats, e.player.Name, &e.player.Stats)
	round.CounterHit = &counter

	if counter.Died {
		round.GoldLost = defeatGoldPenalty(e.player.Gold)
		e.player.Gold -= round.GoldLost
		e.player.Stats.RestoreFull()
		e.phase = PhaseDefeat
		return round, nil
	}

	e.phase = PhasePlayerTurn
	return round, nil
}
