package engine

import (
	"context"
	"testing"

	"github.com/opflweb/scoring/internal/roster"
	"github.com/opflweb/scoring/internal/stats"
)

// weekFixture builds a feed with one played game (KC 27, DEN 13) and a
// handful of stat lines on both sides.
func weekFixture() *stats.StaticFeed {
	home, away := 27, 13
	spread := 3.5

	return &stats.StaticFeed{
		PlayerRows: []stats.PlayerStatRecord{
			{
				PlayerID: "qb-mahomes", DisplayName: "Patrick Mahomes", Team: "KC", Week: 1,
				PassingYards: 275, PassingTDs: 3, PassingInterceptions: 1,
			},
			{
				PlayerID: "te-kelce", DisplayName: "Travis Kelce", Team: "KC", Week: 1,
				ReceivingYards: 50, ReceivingTDs: 1,
			},
			{
				PlayerID: "k-butker", DisplayName: "Harrison Butker", Team: "KC", Week: 1,
				PATMade: 3, FGMade30to39: 1, FGMade50to59: 1, FGMissed: 1,
			},
			{
				PlayerID: "rb-den", DisplayName: "Javonte Williams", Team: "DEN", Week: 1,
				RushingYards: 80, ReceivingYards: 30,
			},
		},
		TeamRows: []stats.TeamStatRecord{
			{Team: "KC", Week: 1, DefInterceptions: 2, DefSacks: 3, FumbleRecoveryOpp: 1},
			{Team: "DEN", Week: 1, RushingFumblesLost: 1},
		},
		ScheduleRows: []stats.GameRecord{{
			Week:     1,
			HomeTeam: "KC", AwayTeam: "DEN",
			HomeScore: &home, AwayScore: &away,
			SpreadLine: &spread,
			HomeCoach:  "Andy Reid", AwayCoach: "Sean Payton",
		}},
		PlayRows: []stats.PlayByPlayEvent{
			{Week: 1, Sack: true, DefTeam: "KC"},
			{Week: 1, Sack: true, DefTeam: "KC"},
			{Week: 1, Sack: true, DefTeam: "KC"},
		},
	}
}

func TestScorePlayer_QB(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	score, err := s.ScorePlayer(context.Background(), "Patrick Mahomes", "KC", "QB")
	if err != nil {
		t.Fatalf("ScorePlayer error: %v", err)
	}
	if !score.FoundInStats {
		t.Fatal("FoundInStats = false, want true")
	}
	// 3 yardage + 18 TDs - 1 INT.
	if score.TotalPoints != 20 {
		t.Errorf("TotalPoints = %v, want 20", score.TotalPoints)
	}
	if score.MatchedName != "Patrick Mahomes" {
		t.Errorf("MatchedName = %q", score.MatchedName)
	}
}

func TestScorePlayer_Defense(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	score, err := s.ScorePlayer(context.Background(), "Kansas City", "", "DF")
	if err != nil {
		t.Fatalf("ScorePlayer error: %v", err)
	}
	if !score.FoundInStats {
		t.Fatal("FoundInStats = false, want true")
	}
	// 13 allowed (+4), 2 INTs (+4), 1 recovery (+2), 3 sacks (+3) = 13.
	if score.TotalPoints != 13 {
		t.Errorf("TotalPoints = %v, want 13", score.TotalPoints)
	}
	if len(score.DataNotes) != 0 {
		t.Errorf("DataNotes = %v, want none (sack sources agree)", score.DataNotes)
	}
}

func TestScorePlayer_HeadCoachByName(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	score, err := s.ScorePlayer(context.Background(), "Andy Reid", "", "HC")
	if err != nil {
		t.Fatalf("ScorePlayer error: %v", err)
	}
	if !score.FoundInStats {
		t.Fatal("FoundInStats = false, want true")
	}
	// Home favorite win.
	if score.TotalPoints != 4 {
		t.Errorf("TotalPoints = %v, want 4", score.TotalPoints)
	}
	if score.MatchedName != "Andy Reid" {
		t.Errorf("MatchedName = %q", score.MatchedName)
	}
}

func TestScorePlayer_LosingCoachScoresZero(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	score, err := s.ScorePlayer(context.Background(), "Sean Payton", "", "HC")
	if err != nil {
		t.Fatalf("ScorePlayer error: %v", err)
	}
	if !score.FoundInStats {
		t.Fatal("FoundInStats = false, want true (coach exists, he just lost)")
	}
	if score.TotalPoints != 0 {
		t.Errorf("TotalPoints = %v, want 0", score.TotalPoints)
	}
}

func TestScorePlayer_UnknownPlayerSoftMiss(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	score, err := s.ScorePlayer(context.Background(), "Nobody Atall", "KC", "WR")
	if err != nil {
		t.Fatalf("ScorePlayer error: %v", err)
	}
	if score.FoundInStats {
		t.Error("FoundInStats = true, want false")
	}
	if score.TotalPoints != 0 {
		t.Errorf("TotalPoints = %v, want 0", score.TotalPoints)
	}
}

func TestScorePlayer_UnknownPosition(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	if _, err := s.ScorePlayer(context.Background(), "Patrick Mahomes", "KC", "P"); err == nil {
		t.Fatal("expected error for unknown position")
	}
}

func testRoster() roster.FantasyTeam {
	return roster.FantasyTeam{
		Name: "Dynasty",
		Players: map[string][]roster.Entry{
			"QB": {{Name: "Patrick Mahomes", Team: "KC", Started: true}},
			"TE": {
				{Name: "Travis Kelce", Team: "KC", Started: true},
				{Name: "Backup Nobody", Team: "KC", Started: false},
			},
			"K":  {{Name: "Harrison Butker", Team: "KC", Started: true}},
			"DF": {{Name: "Kansas City", Started: true}},
			"HC": {{Name: "Andy Reid", Started: true}},
		},
	}
}

func TestScoreFantasyTeam_StartersOnlySkipsBench(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	scores, err := s.ScoreFantasyTeam(context.Background(), testRoster(), true)
	if err != nil {
		t.Fatalf("ScoreFantasyTeam error: %v", err)
	}
	if len(scores["TE"]) != 1 {
		t.Errorf("TE scores = %d entries, want 1 (bench skipped)", len(scores["TE"]))
	}

	// QB 20 + TE 8 (2 yardage + 6 TD) + K 7 + DF 13 + HC 4 = 52.
	total := CalculateTeamTotal(scores, true)
	if total != 52 {
		t.Errorf("total = %v, want 52", total)
	}
}

func TestScoreFantasyTeam_BenchScoredButNotTotaled(t *testing.T) {
	s := NewScorer(weekFixture(), 2025, 1)

	scores, err := s.ScoreFantasyTeam(context.Background(), testRoster(), false)
	if err != nil {
		t.Fatalf("ScoreFantasyTeam error: %v", err)
	}
	if len(scores["TE"]) != 2 {
		t.Fatalf("TE scores = %d entries, want 2", len(scores["TE"]))
	}

	if CalculateTeamTotal(scores, true) != 52 {
		t.Errorf("starters total = %v, want 52", CalculateTeamTotal(scores, true))
	}
}

func TestScoreWeek_HookAndTotals(t *testing.T) {
	src := roster.Static{testRoster()}
	s := NewScorer(weekFixture(), 2025, 1)

	var hookTeams []string
	s.TeamScored = func(team string, total float64, scores map[string][]*PlayerScore) {
		hookTeams = append(hookTeams, team)
		if total != 52 {
			t.Errorf("hook total = %v, want 52", total)
		}
	}

	teams, results, err := s.ScoreWeek(context.Background(), src)
	if err != nil {
		t.Fatalf("ScoreWeek error: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("teams = %d, want 1", len(teams))
	}
	if results["Dynasty"].Total != 52 {
		t.Errorf("Dynasty total = %v, want 52", results["Dynasty"].Total)
	}
	if len(hookTeams) != 1 || hookTeams[0] != "Dynasty" {
		t.Errorf("hook fired for %v, want [Dynasty]", hookTeams)
	}
}

func TestScoreWeek_DefenseOnByeNotFound(t *testing.T) {
	feed := weekFixture()
	src := roster.Static{{
		Name: "ByeWatchers",
		Players: map[string][]roster.Entry{
			"DF": {{Name: "Chicago", Started: true}},
		},
	}}

	_, results, err := ScoreWeek(context.Background(), feed, src, 2025, 1)
	if err != nil {
		t.Fatalf("ScoreWeek error: %v", err)
	}

	df := results["ByeWatchers"].Scores["DF"][0]
	if df.FoundInStats {
		t.Error("FoundInStats = true for a bye-week defense, want false")
	}
	if results["ByeWatchers"].Total != 0 {
		t.Errorf("total = %v, want 0", results["ByeWatchers"].Total)
	}
}
