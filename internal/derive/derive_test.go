package derive

import (
	"context"
	"testing"

	"github.com/opflweb/scoring/internal/stats"
)

func newCalc(feed *stats.StaticFeed) *Calculator {
	return NewCalculator(stats.NewStore(feed, 2025, 1))
}

func TestTurnoverTDsFor(t *testing.T) {
	feed := &stats.StaticFeed{PlayRows: []stats.PlayByPlayEvent{
		{Season: 2025, Week: 1, Interception: true, ReturnTouchdown: true, PasserPlayerID: "qb1"},
		{Season: 2025, Week: 1, Interception: true, PasserPlayerID: "qb1"}, // picked, not returned
		{Season: 2025, Week: 1, FumbleLost: true, ReturnTouchdown: true, FumbledPlayerID: "qb1"},
		{Season: 2025, Week: 1, Interception: true, ReturnTouchdown: true, PasserPlayerID: "qb2"},
	}}

	tds, err := newCalc(feed).TurnoverTDsFor(context.Background(), "qb1")
	if err != nil {
		t.Fatalf("TurnoverTDsFor error: %v", err)
	}
	if tds.PickSixes != 1 {
		t.Errorf("PickSixes = %d, want 1", tds.PickSixes)
	}
	if tds.FumbleSixes != 1 {
		t.Errorf("FumbleSixes = %d, want 1", tds.FumbleSixes)
	}
}

func TestTurnoverTDsFor_EmptyIDShortCircuits(t *testing.T) {
	// No player id means no play-by-play lookup at all.
	tds, err := newCalc(&stats.StaticFeed{}).TurnoverTDsFor(context.Background(), "")
	if err != nil {
		t.Fatalf("TurnoverTDsFor error: %v", err)
	}
	if tds.PickSixes != 0 || tds.FumbleSixes != 0 {
		t.Errorf("got %+v, want zero", tds)
	}
}

func TestExtraFumblesLost(t *testing.T) {
	feed := &stats.StaticFeed{PlayRows: []stats.PlayByPlayEvent{
		{Season: 2025, Week: 1, FumbleLost: true, FumbledPlayerID: "rb1"},
		{Season: 2025, Week: 1, FumbleLost: true, FumbledPlayerID: "rb1"},
	}}
	rec := &stats.PlayerStatRecord{RushingFumblesLost: 1}

	extra, err := newCalc(feed).ExtraFumblesLost(context.Background(), "rb1", rec)
	if err != nil {
		t.Fatalf("ExtraFumblesLost error: %v", err)
	}
	if extra != 1 {
		t.Errorf("extra = %d, want 1", extra)
	}
}

func TestExtraFumblesLost_NeverNegative(t *testing.T) {
	feed := &stats.StaticFeed{}
	rec := &stats.PlayerStatRecord{RushingFumblesLost: 2}

	extra, err := newCalc(feed).ExtraFumblesLost(context.Background(), "rb1", rec)
	if err != nil {
		t.Fatalf("ExtraFumblesLost error: %v", err)
	}
	if extra != 0 {
		t.Errorf("extra = %d, want 0 (record ahead of play-by-play)", extra)
	}
}

func TestDefensiveSacks_AgreementUsesAggregated(t *testing.T) {
	feed := &stats.StaticFeed{
		TeamRows: []stats.TeamStatRecord{{Team: "KC", Week: 1, DefSacks: 3}},
		PlayRows: []stats.PlayByPlayEvent{
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
		},
	}

	sc, err := newCalc(feed).DefensiveSacks(context.Background(), "KC")
	if err != nil {
		t.Fatalf("DefensiveSacks error: %v", err)
	}
	if sc.Discrepancy {
		t.Error("Discrepancy = true, want false")
	}
	if sc.Value != 3 {
		t.Errorf("Value = %d, want 3", sc.Value)
	}
}

func TestDefensiveSacks_DiscrepancyPrefersPlayByPlay(t *testing.T) {
	feed := &stats.StaticFeed{
		TeamRows: []stats.TeamStatRecord{{Team: "KC", Week: 1, DefSacks: 2}},
		PlayRows: []stats.PlayByPlayEvent{
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
			{Season: 2025, Week: 1, Sack: true, DefTeam: "KC"},
			{Season: 2025, Week: 1, Sack: true, DefTeam: "DEN"},
		},
	}

	sc, err := newCalc(feed).DefensiveSacks(context.Background(), "KC")
	if err != nil {
		t.Fatalf("DefensiveSacks error: %v", err)
	}
	if !sc.Discrepancy {
		t.Fatal("Discrepancy = false, want true")
	}
	if sc.Value != 3 {
		t.Errorf("Value = %d, want 3 (play-by-play)", sc.Value)
	}
	want := "Sack discrepancy: aggregated=2, PBP=3 (using PBP)"
	if sc.Note() != want {
		t.Errorf("Note = %q, want %q", sc.Note(), want)
	}
}

func TestBlockedKickTDs(t *testing.T) {
	feed := &stats.StaticFeed{PlayRows: []stats.PlayByPlayEvent{
		// Blocked punt returned for a TD.
		{Season: 2025, Week: 1, PuntBlocked: true, Touchdown: true, TDTeam: "KC", DefTeam: "KC"},
		// Blocked punt, no score.
		{Season: 2025, Week: 1, PuntBlocked: true, DefTeam: "KC"},
		// Blocked FG taken back.
		{Season: 2025, Week: 1, FieldGoalAttempt: true, Touchdown: true, TDTeam: "KC", DefTeam: "KC"},
		// Made FG by the offense: TD flags absent.
		{Season: 2025, Week: 1, FieldGoalAttempt: true, PosTeam: "KC", DefTeam: "DEN"},
	}}

	count, err := newCalc(feed).BlockedKickTDs(context.Background(), "KC")
	if err != nil {
		t.Fatalf("BlockedKickTDs error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	punts, err := newCalc(feed).BlockedPunts(context.Background(), "KC")
	if err != nil {
		t.Fatalf("BlockedPunts error: %v", err)
	}
	if punts != 2 {
		t.Errorf("blocked punts = %d, want 2", punts)
	}
}

func TestFumbleRecoveries_MaxOfBothSources(t *testing.T) {
	calc := newCalc(&stats.StaticFeed{})

	team := &stats.TeamStatRecord{FumbleRecoveryOpp: 1}
	opp := &stats.TeamStatRecord{RushingFumblesLost: 2}

	if got := calc.FumbleRecoveries(team, opp); got != 2 {
		t.Errorf("recoveries = %d, want 2 (opponent reports more)", got)
	}

	opp = &stats.TeamStatRecord{}
	if got := calc.FumbleRecoveries(team, opp); got != 1 {
		t.Errorf("recoveries = %d, want 1", got)
	}

	if got := calc.FumbleRecoveries(nil, nil); got != 0 {
		t.Errorf("recoveries = %d, want 0 with no data", got)
	}
}
