package scoring

import (
	"testing"

	"github.com/opflweb/scoring/internal/stats"
)

func coachGame(isHome bool, teamScore, oppScore int, spread *float64) *stats.GameContext {
	return &stats.GameContext{
		Team:          "KC",
		Opponent:      "DEN",
		TeamScore:     teamScore,
		OpponentScore: oppScore,
		PointsAllowed: oppScore,
		IsHome:        isHome,
		Spread:        spread,
	}
}

func spread(v float64) *float64 { return &v }

func TestScoreHeadCoach_WinTable(t *testing.T) {
	cases := []struct {
		name      string
		isHome    bool
		spread    *float64
		want      float64
		wantLabel string
	}{
		{"home favorite", true, spread(3), 4, "home_favorite_win"},
		{"road favorite", false, spread(6.5), 5, "road_favorite_win"},
		{"home underdog", true, spread(-3.5), 6, "home_underdog_win"},
		{"road underdog", false, spread(-7), 7, "road_underdog_win"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			total, b := ScoreHeadCoach(coachGame(c.isHome, 27, 20, c.spread))

			if total != c.want {
				t.Errorf("total = %v, want %v", total, c.want)
			}
			if _, ok := b.Get(c.wantLabel); !ok {
				t.Errorf("expected breakdown label %q, got %v", c.wantLabel, b)
			}
		})
	}
}

func TestScoreHeadCoach_MissingSpreadDefaultsToFavorite(t *testing.T) {
	total, b := ScoreHeadCoach(coachGame(true, 24, 10, nil))

	if total != 4 {
		t.Errorf("total = %v, want 4 (favorite default)", total)
	}
	if _, ok := b.Get("home_favorite_win"); !ok {
		t.Error("expected home_favorite_win")
	}
}

func TestScoreHeadCoach_PickEmCountsAsFavorite(t *testing.T) {
	total, _ := ScoreHeadCoach(coachGame(false, 24, 10, spread(0)))

	if total != 5 {
		t.Errorf("total = %v, want 5 (zero spread treated as favorite)", total)
	}
}

func TestScoreHeadCoach_LossScoresZero(t *testing.T) {
	total, b := ScoreHeadCoach(coachGame(true, 13, 20, spread(-3)))

	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
	if _, ok := b.Get("loss"); !ok {
		t.Error("expected loss entry")
	}
}

func TestScoreHeadCoach_TieScoresZero(t *testing.T) {
	total, _ := ScoreHeadCoach(coachGame(true, 20, 20, spread(3)))

	if total != 0 {
		t.Errorf("total = %v, want 0 for a tie", total)
	}
}
