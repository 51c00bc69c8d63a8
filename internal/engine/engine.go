// Package engine ties the stat store, identity resolver, derived-stat
// calculator and position scorers into the league scoring pipeline.
package engine

import (
	"context"
	"fmt"

	"github.com/opflweb/scoring/internal/derive"
	"github.com/opflweb/scoring/internal/resolve"
	"github.com/opflweb/scoring/internal/roster"
	"github.com/opflweb/scoring/internal/scoring"
	"github.com/opflweb/scoring/internal/stats"
)

// PlayerScore is the scored result for one roster entry. Created fresh per
// scoring call and never mutated afterwards.
type PlayerScore struct {
	Name         string            `json:"name"`
	Position     string            `json:"position"`
	Team         string            `json:"team"`
	MatchedName  string            `json:"matched_name,omitempty"`
	FoundInStats bool              `json:"found_in_stats"`
	IsStarter    bool              `json:"is_starter"`
	TotalPoints  float64           `json:"total_points"`
	Breakdown    scoring.Breakdown `json:"breakdown,omitempty"`
	DataNotes    []string          `json:"data_notes,omitempty"`
}

// WeekResult is one fantasy team's scored week.
type WeekResult struct {
	Total  float64                   `json:"total"`
	Scores map[string][]*PlayerScore `json:"scores"`
}

// Scorer scores players and teams for one (season, week). Scorers for
// different weeks own independent stores and caches and may run
// concurrently with each other.
type Scorer struct {
	season   int
	week     int
	store    *stats.Store
	resolver *resolve.Resolver
	calc     *derive.Calculator

	// TeamScored, when set, is invoked after each fantasy team is scored
	// during ScoreWeek. The websocket and stream surfaces hang off this.
	TeamScored func(teamName string, total float64, scores map[string][]*PlayerScore)
}

// NewScorer creates a Scorer over feed scoped to (season, week).
func NewScorer(feed stats.Feed, season, week int) *Scorer {
	store := stats.NewStore(feed, season, week)
	return &Scorer{
		season:   season,
		week:     week,
		store:    store,
		resolver: resolve.NewResolver(store),
		calc:     derive.NewCalculator(store),
	}
}

// Season returns the season this Scorer is scoped to.
func (s *Scorer) Season() int { return s.season }

// Week returns the week this Scorer is scoped to.
func (s *Scorer) Week() int { return s.week }

// ScorePlayer scores a single roster entry. An unresolvable player or coach
// comes back with FoundInStats=false and zero points (soft miss); feed
// failures return an error.
func (s *Scorer) ScorePlayer(ctx context.Context, name, team, position string) (*PlayerScore, error) {
	result := &PlayerScore{Name: name, Position: position, Team: team}

	switch position {
	case "QB", "RB", "WR", "TE":
		if err := s.scoreOffense(ctx, result, position); err != nil {
			return nil, err
		}
	case "K":
		if err := s.scoreKicker(ctx, result); err != nil {
			return nil, err
		}
	case "DF":
		if err := s.scoreDefense(ctx, result); err != nil {
			return nil, err
		}
	case "HC":
		if err := s.scoreHeadCoach(ctx, result); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown position %q", position)
	}

	return result, nil
}

func (s *Scorer) scoreOffense(ctx context.Context, result *PlayerScore, position string) error {
	res, err := s.resolver.FindPlayer(ctx, result.Name, result.Team)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	rec := res.Record

	result.FoundInStats = true
	result.MatchedName = rec.DisplayName

	turnoverTDs, err := s.calc.TurnoverTDsFor(ctx, rec.PlayerID)
	if err != nil {
		return err
	}

	if extra, err := s.calc.ExtraFumblesLost(ctx, rec.PlayerID, rec); err != nil {
		return err
	} else if extra > 0 {
		result.DataNotes = append(result.DataNotes,
			fmt.Sprintf("PBP shows %d fumble(s) lost not in player stats", extra))
	}

	switch position {
	case "QB":
		result.TotalPoints, result.Breakdown = scoring.ScoreQB(rec, turnoverTDs)
	case "TE":
		result.TotalPoints, result.Breakdown = scoring.ScoreTE(rec, turnoverTDs)
	default:
		result.TotalPoints, result.Breakdown = scoring.ScoreRBWR(rec, turnoverTDs)
	}
	return nil
}

func (s *Scorer) scoreKicker(ctx context.Context, result *PlayerScore) error {
	res, err := s.resolver.FindPlayer(ctx, result.Name, result.Team)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	result.FoundInStats = true
	result.MatchedName = res.Record.DisplayName
	result.TotalPoints, result.Breakdown = scoring.ScoreKicker(res.Record)
	return nil
}

func (s *Scorer) scoreDefense(ctx context.Context, result *PlayerScore) error {
	// Defense entries name the team; the hint column is authoritative when
	// present, otherwise the name itself ("Kansas City", "NY Giants").
	code := result.Team
	if code == "" {
		code = stats.DefenseTeamCode(result.Name)
	}

	teamStats, err := s.store.TeamStatsFor(ctx, code)
	if err != nil {
		return err
	}
	gc, err := s.store.GameContextFor(ctx, code)
	if err != nil {
		return err
	}
	if teamStats == nil || gc == nil {
		// Bye week, or the game has not been played. Not scorable.
		return nil
	}

	opponent, err := s.store.TeamStatsFor(ctx, gc.Opponent)
	if err != nil {
		return err
	}

	sacks, err := s.calc.DefensiveSacks(ctx, code)
	if err != nil {
		return err
	}
	if sacks.Discrepancy {
		result.DataNotes = append(result.DataNotes, sacks.Note())
	}

	blockedPunts, err := s.calc.BlockedPunts(ctx, code)
	if err != nil {
		return err
	}
	blockedKickTDs, err := s.calc.BlockedKickTDs(ctx, code)
	if err != nil {
		return err
	}

	in := scoring.DefenseInput{
		PointsAllowed:    gc.PointsAllowed,
		Interceptions:    teamStats.DefInterceptions,
		FumbleRecoveries: s.calc.FumbleRecoveries(teamStats, opponent),
		Sacks:            sacks.Value,
		Safeties:         teamStats.DefSafeties,
		BlockedKicks:     blockedPunts,
		BlockedPATs:      0,
		DefensiveTDs:     teamStats.DefTDs + teamStats.FumbleRecoveryTDs + blockedKickTDs,
	}
	if opponent != nil {
		in.BlockedKicks += opponent.FGBlocked
		in.BlockedPATs = opponent.PATBlocked
	}

	result.FoundInStats = true
	result.MatchedName = gc.Team
	result.TotalPoints, result.Breakdown = scoring.ScoreDefense(in)
	return nil
}

func (s *Scorer) scoreHeadCoach(ctx context.Context, result *PlayerScore) error {
	var gc *stats.GameContext
	var err error

	if result.Team != "" {
		gc, err = s.store.GameContextFor(ctx, result.Team)
		if err != nil {
			return err
		}
	}
	if gc == nil {
		// No team hint, hint didn't match a played game, or the hint is
		// wrong. Find the coach by name in the schedule instead.
		gc, err = s.resolver.FindCoach(ctx, result.Name)
		if err != nil {
			return err
		}
	}
	if gc == nil {
		return nil
	}

	result.FoundInStats = true
	if gc.Coach != "" {
		result.MatchedName = gc.Coach
	}
	result.TotalPoints, result.Breakdown = scoring.ScoreHeadCoach(gc)
	return nil
}

// ScoreFantasyTeam scores every entry on a fantasy team's roster. With
// startersOnly, bench entries are skipped entirely; otherwise they are
// scored informationally and tagged by their starter flag. The input roster
// is never mutated.
func (s *Scorer) ScoreFantasyTeam(ctx context.Context, team roster.FantasyTeam, startersOnly bool) (map[string][]*PlayerScore, error) {
	results := make(map[string][]*PlayerScore, len(team.Players))

	for position, entries := range team.Players {
		results[position] = []*PlayerScore{}
		for _, entry := range entries {
			if startersOnly && !entry.Started {
				continue
			}
			score, err := s.ScorePlayer(ctx, entry.Name, entry.Team, position)
			if err != nil {
				return nil, fmt.Errorf("scoring %s %s (%s): %w", position, entry.Name, team.Name, err)
			}
			score.IsStarter = entry.Started
			results[position] = append(results[position], score)
		}
	}

	return results, nil
}

// CalculateTeamTotal sums scored points. With startersOnly (the league
// total), bench scores are excluded; they are informational.
func CalculateTeamTotal(scores map[string][]*PlayerScore, startersOnly bool) float64 {
	total := 0.0
	for _, positionScores := range scores {
		for _, score := range positionScores {
			if startersOnly && !score.IsStarter {
				continue
			}
			total += score.TotalPoints
		}
	}
	return total
}

// ScoreWeek scores every fantasy team the roster source yields against this
// Scorer's (season, week). A feed failure aborts this week only; callers
// scoring a batch of weeks catch and skip per week.
func (s *Scorer) ScoreWeek(ctx context.Context, src roster.Source) ([]roster.FantasyTeam, map[string]WeekResult, error) {
	teams, err := src.Teams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading rosters: %w", err)
	}

	results := make(map[string]WeekResult, len(teams))

	for _, team := range teams {
		scores, err := s.ScoreFantasyTeam(ctx, team, false)
		if err != nil {
			return nil, nil, err
		}
		total := CalculateTeamTotal(scores, true)
		results[team.Name] = WeekResult{Total: total, Scores: scores}

		if s.TeamScored != nil {
			s.TeamScored(team.Name, total, scores)
		}
	}

	return teams, results, nil
}

// ScoreWeek scores a whole week with a fresh Scorer. Shorthand for callers
// that don't need progress hooks.
func ScoreWeek(ctx context.Context, feed stats.Feed, src roster.Source, season, week int) ([]roster.FantasyTeam, map[string]WeekResult, error) {
	return NewScorer(feed, season, week).ScoreWeek(ctx, src)
}
