// Package loot implements probabilistic drop tables. Each entry rolls
// independently: a drop chance of numerator/denominator and a uniform
// quantity from an inclusive range.
package loot

import (
	"fmt"
	"math/rand"
)

// Entry is one possible drop in a table.
type Entry struct {
	Item        string
	Numerator   int
	Denominator int
	QtyMin      int
	QtyMax      int
}

func (e Entry) validate() error {
	if e.Item == "" {
		return fmt.Errorf("loot entry: empty item id")
	}
	if e.Denominator < 1 {
		return fmt.Errorf("loot entry %q: denominator %d < 1", e.Item, e.Denominator)
	}
	if e.Numerator < 0 || e.Numerator > e.Denominator {
		return fmt.Errorf("loot entry %q: numerator %d outside [0, %d]", e.Item, e.Numerator, e.Denominator)
	}
	if e.QtyMin < 1 || e.QtyMax < e.QtyMin {
		return fmt.Errorf("loot entry %q: bad quantity range %d..%d", e.Item, e.QtyMin, e.QtyMax)
	}
	return nil
}

// Drop is one rolled result.
type Drop struct {
	Item     string
	Quantity int
}

// Table is an immutable list of drop entries.
type Table struct {
	entries []Entry
}

// NewTable validates the entries and builds a Table. A malformed entry is a
// content bug and fails construction.
func NewTable(entries ...Entry) (*Table, error) {
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t, nil
}

// MustTable is NewTable for compiled-in tables that are known valid.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the table's entries.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Roll resolves the table once. Every entry rolls independently of the
// others. Magic find grants extra rolls per entry rather than skewing a
// single roll: magicFind/100 guaranteed rerolls plus one more with
// probability (magicFind%100)/100, keeping the best (highest quantity)
// successful result per entry.
func (t *Table) Roll(rng *rand.Rand, magicFind int) []Drop {
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	rolls := 1 + bonusRolls(rng, magicFind)

	var drops []Drop
	for _, e := range t.entries {
		best := 0
		for i := 0; i < rolls; i++ {
			if rng.Intn(e.Denominator)+1 > e.Numerator {
				continue
			}
			qty := e.QtyMin + rng.Intn(e.QtyMax-e.QtyMin+1)
			if qty > best {
				best = qty
			}
		}
		if best > 0 {
			drops = append(drops, Drop{Item: e.Item, Quantity: best})
		}
	}
	return drops
}

// bonusRolls converts a magic-find percentage into a number of extra rolls.
func bonusRolls(rng *rand.Rand, magicFind int) int {
	if magicFind <= 0 {
		return 0
	}
	guaranteed := magicFind / 100
	remainder := magicFind % 100
	if remainder > 0 && rng.Intn(100)+1 <= remainder {
		return guaranteed + 1
	}
	return guaranteed
}
