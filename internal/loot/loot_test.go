package loot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuaranteedEntryAlwaysDrops(t *testing.T) {
	table := MustTable(Entry{Item: "coal", Numerator: 4, Denominator: 4, QtyMin: 1, QtyMax: 3})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		drops := table.Roll(rng, 0)
		require.Len(t, drops, 1, "trial %d", i)
		assert.Equal(t, "coal", drops[0].Item)
		assert.GreaterOrEqual(t, drops[0].Quantity, 1)
		assert.LessOrEqual(t, drops[0].Quantity, 3)
	}
}

func TestZeroNumeratorNeverDrops(t *testing.T) {
	table := MustTable(Entry{Item: "relic", Numerator: 0, Denominator: 10, QtyMin: 1, QtyMax: 1})
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		assert.Empty(t, table.Roll(rng, 500))
	}
}

// Scenario: a single certain entry with quantity range 2..2 yields exactly
// one drop of quantity 2 on every roll.
func TestCertainFixedQuantity(t *testing.T) {
	table := MustTable(Entry{Item: "gold_ore", Numerator: 1, Denominator: 1, QtyMin: 2, QtyMax: 2})
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		drops := table.Roll(rng, 0)
		require.Len(t, drops, 1)
		assert.Equal(t, Drop{Item: "gold_ore", Quantity: 2}, drops[0])
	}
}

func TestEntriesRollIndependently(t *testing.T) {
	table := MustTable(
		Entry{Item: "always", Numerator: 1, Denominator: 1, QtyMin: 1, QtyMax: 1},
		Entry{Item: "never", Numerator: 0, Denominator: 6, QtyMin: 1, QtyMax: 1},
		Entry{Item: "also_always", Numerator: 6, Denominator: 6, QtyMin: 1, QtyMax: 1},
	)
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		drops := table.Roll(rng, 0)
		require.Len(t, drops, 2)
		assert.Equal(t, "always", drops[0].Item)
		assert.Equal(t, "also_always", drops[1].Item)
	}
}

func TestMagicFindAddsRerolls(t *testing.T) {
	// A 1-in-10 entry rolled with huge magic find should land far more often
	// than the base rate. 900 magic find = 10 rolls per entry:
	// p = 1 - 0.9^10 ≈ 0.65 vs base 0.10.
	table := MustTable(Entry{Item: "gem", Numerator: 1, Denominator: 10, QtyMin: 1, QtyMax: 1})
	rng := rand.New(rand.NewSource(5))

	const trials = 2000
	base, boosted := 0, 0
	for i := 0; i < trials; i++ {
		if len(table.Roll(rng, 0)) > 0 {
			base++
		}
		if len(table.Roll(rng, 900)) > 0 {
			boosted++
		}
	}
	assert.InDelta(t, 0.10, float64(base)/trials, 0.04)
	assert.InDelta(t, 0.65, float64(boosted)/trials, 0.06)
}

func TestMagicFindKeepsBestQuantity(t *testing.T) {
	// With a certain drop and many rerolls, the kept quantity should be the
	// maximum seen, so the mean over trials must sit well above the
	// single-roll mean of 2.
	table := MustTable(Entry{Item: "coal", Numerator: 1, Denominator: 1, QtyMin: 1, QtyMax: 3})
	rng := rand.New(rand.NewSource(6))

	total := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		drops := table.Roll(rng, 400) // 5 rolls, best-of kept
		require.Len(t, drops, 1)
		total += drops[0].Quantity
	}
	// E[max of 5 uniform{1,2,3}] ≈ 2.87.
	assert.Greater(t, float64(total)/trials, 2.6)
}

func TestNewTableRejectsMalformedEntries(t *testing.T) {
	cases := []Entry{
		{Item: "", Numerator: 1, Denominator: 2, QtyMin: 1, QtyMax: 1},
		{Item: "x", Numerator: 1, Denominator: 0, QtyMin: 1, QtyMax: 1},
		{Item: "x", Numerator: 3, Denominator: 2, QtyMin: 1, QtyMax: 1},
		{Item: "x", Numerator: -1, Denominator: 2, QtyMin: 1, QtyMax: 1},
		{Item: "x", Numerator: 1, Denominator: 2, QtyMin: 0, QtyMax: 1},
		{Item: "x", Numerator: 1, Denominator: 2, QtyMin: 3, QtyMax: 2},
	}
	for _, c := range cases {
		_, err := NewTable(c)
		assert.Error(t, err, "entry %+v", c)
	}
}

func TestNilTableRollsNothing(t *testing.T) {
	var table *Table
	rng := rand.New(rand.NewSource(7))
	assert.Empty(t, table.Roll(rng, 100))
	assert.Equal(t, 0, table.Len())
}
