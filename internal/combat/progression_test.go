package combat

import "testing"

func TestXPToNextLevel(t *testing.T) {
	cases := []struct{ level, want int }{
		{1, 50},
		{2, 55},
		{5, 73},
		{10, 118},
	}
	for _, c := range cases {
		if got := XPToNextLevel(c.level); got != c.want {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestAddXPNoLevelUp(t *testing.T) {
	p := NewProgression()
	if gained := p.AddXP(30); gained != 0 {
		t.Errorf("gained = %d, want 0", gained)
	}
	if p.Level != 1 || p.XP != 30 || p.TotalXP != 30 {
		t.Errorf("progression = %+v, want level 1, xp 30, total 30", p)
	}
}

func TestAddXPExactThreshold(t *testing.T) {
	p := NewProgression()
	if gained := p.AddXP(50); gained != 1 {
		t.Errorf("gained = %d, want 1", gained)
	}
	if p.Level != 2 || p.XP != 0 {
		t.Errorf("progression = %+v, want level 2, xp 0", p)
	}
}

func TestAddXPCarryOver(t *testing.T) {
	p := NewProgression()
	p.AddXP(60)
	if p.Level != 2 || p.XP != 10 {
		t.Errorf("progression = %+v, want level 2, xp 10", p)
	}
}

func TestAddXPMultipleLevels(t *testing.T) {
	p := NewProgression()
	// 50 + 55 = 105 spends exactly two levels; 130 leaves 25 over.
	if gained := p.AddXP(105); gained != 2 {
		t.Errorf("gained = %d, want 2", gained)
	}
	if p.Level != 3 || p.XP != 0 {
		t.Errorf("progression = %+v, want level 3, xp 0", p)
	}

	p = NewProgression()
	p.AddXP(130)
	if p.Level != 3 || p.XP != 25 || p.TotalXP != 130 {
		t.Errorf("progression = %+v, want level 3, xp 25, total 130", p)
	}
}

func TestAddXPNonPositiveIgnored(t *testing.T) {
	p := NewProgression()
	p.AddXP(0)
	p.AddXP(-10)
	if p.TotalXP != 0 || p.Level != 1 {
		t.Errorf("progression = %+v, want untouched", p)
	}
}
