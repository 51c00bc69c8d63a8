package scoring

import "testing"

func TestPointsAllowedBands(t *testing.T) {
	cases := []struct {
		pa   int
		want float64
	}{
		{0, 8},
		{1, 6},
		{9, 6},
		{10, 4},
		{13, 4},
		{14, 2},
		{17, 2},
		{18, 0},
		{27, 0},
		{28, -2},
		{31, -2},
		{32, -4},
		{35, -4},
		{36, -6},
		{52, -6},
	}

	for _, c := range cases {
		if got := pointsAllowedBand(c.pa); got != c.want {
			t.Errorf("pointsAllowedBand(%d) = %v, want %v", c.pa, got, c.want)
		}
	}
}

func TestScoreDefense_StandardLine(t *testing.T) {
	// 12 points allowed (+4), 2 INTs (+4), 1 fumble recovery (+2),
	// 3 sacks (+3) = 13.
	in := DefenseInput{
		PointsAllowed:    12,
		Interceptions:    2,
		FumbleRecoveries: 1,
		Sacks:            3,
	}

	total, b := ScoreDefense(in)

	if total != 13 {
		t.Errorf("total = %v, want 13", total)
	}
	if pts, _ := b.Get("points_allowed"); pts != 4 {
		t.Errorf("points_allowed = %v, want 4", pts)
	}
	if pts, _ := b.Get("interceptions"); pts != 4 {
		t.Errorf("interceptions = %v, want 4", pts)
	}
	if pts, _ := b.Get("fumble_recoveries"); pts != 2 {
		t.Errorf("fumble_recoveries = %v, want 2", pts)
	}
	if pts, _ := b.Get("sacks"); pts != 3 {
		t.Errorf("sacks = %v, want 3", pts)
	}
}

func TestScoreDefense_BigPlays(t *testing.T) {
	in := DefenseInput{
		PointsAllowed: 21,
		Safeties:      1,
		BlockedKicks:  2,
		BlockedPATs:   1,
		DefensiveTDs:  1,
	}

	total, b := ScoreDefense(in)

	// 0 band + 2 safety + 4 blocked kicks + 1 blocked PAT + 4 TD = 11.
	if total != 11 {
		t.Errorf("total = %v, want 11", total)
	}
	if pts, _ := b.Get("blocked_kicks"); pts != 4 {
		t.Errorf("blocked_kicks = %v, want 4", pts)
	}
	if pts, _ := b.Get("blocked_pats"); pts != 1 {
		t.Errorf("blocked_pats = %v, want 1", pts)
	}
	if pts, _ := b.Get("defensive_tds"); pts != 4 {
		t.Errorf("defensive_tds = %v, want 4", pts)
	}
}

func TestScoreDefense_BlowoutFloors(t *testing.T) {
	in := DefenseInput{PointsAllowed: 45}

	total, b := ScoreDefense(in)

	if total != 0 {
		t.Errorf("total = %v, want 0 after floor", total)
	}
	if !b.Floored() {
		t.Error("expected floor marker")
	}
	if b.Sum() != -6 {
		t.Errorf("Sum = %v, want -6", b.Sum())
	}
}

func TestScoreDefense_ShutoutAlwaysHasBandEntry(t *testing.T) {
	total, b := ScoreDefense(DefenseInput{PointsAllowed: 0})

	if total != 8 {
		t.Errorf("total = %v, want 8", total)
	}
	// The band entry is always present even when every count is zero.
	if _, ok := b.Get("points_allowed"); !ok {
		t.Error("expected points_allowed entry")
	}
}
