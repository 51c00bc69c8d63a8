package stats

import (
	"context"
	"fmt"
	"log"
)

// Store is a windowed, memoized view over the four weekly feeds plus the
// player directory, scoped to one (season, week). Each feed is loaded at
// most once per Store regardless of how many players or teams are scored
// against it. A Store is not safe for concurrent use; score concurrent
// weeks with separate Stores.
type Store struct {
	feed   Feed
	season int
	week   int

	playerStats []PlayerStatRecord
	teamStats   []TeamStatRecord
	schedules   []GameRecord
	pbp         []PlayByPlayEvent
	directory   []DirectoryPlayer

	playerLoaded    bool
	teamLoaded      bool
	scheduleLoaded  bool
	pbpLoaded       bool
	directoryLoaded bool
}

// NewStore creates a Store over feed scoped to (season, week).
func NewStore(feed Feed, season, week int) *Store {
	return &Store{feed: feed, season: season, week: week}
}

// Season returns the season this Store is scoped to.
func (s *Store) Season() int { return s.season }

// Week returns the week this Store is scoped to.
func (s *Store) Week() int { return s.week }

// PlayerStats returns the week's player stat table, loading it on first use.
func (s *Store) PlayerStats(ctx context.Context) ([]PlayerStatRecord, error) {
	if !s.playerLoaded {
		log.Printf("Loading player stats for %d week %d...", s.season, s.week)
		rows, err := s.feed.PlayerStats(ctx, s.season)
		if err != nil {
			return nil, fmt.Errorf("loading player stats: %w", err)
		}
		for _, row := range rows {
			if row.Week == s.week {
				s.playerStats = append(s.playerStats, row)
			}
		}
		s.playerLoaded = true
	}
	return s.playerStats, nil
}

// TeamStats returns the week's team stat table, loading it on first use.
func (s *Store) TeamStats(ctx context.Context) ([]TeamStatRecord, error) {
	if !s.teamLoaded {
		log.Printf("Loading team stats for %d week %d...", s.season, s.week)
		rows, err := s.feed.TeamStats(ctx, s.season)
		if err != nil {
			return nil, fmt.Errorf("loading team stats: %w", err)
		}
		for _, row := range rows {
			if row.Week == s.week {
				s.teamStats = append(s.teamStats, row)
			}
		}
		s.teamLoaded = true
	}
	return s.teamStats, nil
}

// Schedules returns the week's schedule rows, loading them on first use.
func (s *Store) Schedules(ctx context.Context) ([]GameRecord, error) {
	if !s.scheduleLoaded {
		log.Printf("Loading schedules for %d...", s.season)
		rows, err := s.feed.Schedules(ctx, s.season)
		if err != nil {
			return nil, fmt.Errorf("loading schedules: %w", err)
		}
		for _, row := range rows {
			if row.Week == s.week {
				s.schedules = append(s.schedules, row)
			}
		}
		s.scheduleLoaded = true
	}
	return s.schedules, nil
}

// PlayByPlay returns the week's play-by-play events, loading them on first use.
func (s *Store) PlayByPlay(ctx context.Context) ([]PlayByPlayEvent, error) {
	if !s.pbpLoaded {
		log.Printf("Loading play-by-play for %d week %d...", s.season, s.week)
		rows, err := s.feed.PlayByPlay(ctx, s.season)
		if err != nil {
			return nil, fmt.Errorf("loading play-by-play: %w", err)
		}
		for _, row := range rows {
			if row.Week == s.week {
				s.pbp = append(s.pbp, row)
			}
		}
		s.pbpLoaded = true
	}
	return s.pbp, nil
}

// Players returns the season-independent player directory.
func (s *Store) Players(ctx context.Context) ([]DirectoryPlayer, error) {
	if !s.directoryLoaded {
		rows, err := s.feed.Players(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading player directory: %w", err)
		}
		s.directory = rows
		s.directoryLoaded = true
	}
	return s.directory, nil
}

// TeamStatsFor returns the week's stat line for one team, or nil if the team
// has no row (bye week).
func (s *Store) TeamStatsFor(ctx context.Context, team string) (*TeamStatRecord, error) {
	rows, err := s.TeamStats(ctx)
	if err != nil {
		return nil, err
	}
	code := NormalizeTeam(team)
	for i := range rows {
		if rows[i].Team == code {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// OpponentStatsFor returns the stat line of team's opponent this week, or
// nil when the team has no played game or the opponent has no row.
func (s *Store) OpponentStatsFor(ctx context.Context, team string) (*TeamStatRecord, error) {
	gc, err := s.GameContextFor(ctx, team)
	if err != nil || gc == nil {
		return nil, err
	}
	return s.TeamStatsFor(ctx, gc.Opponent)
}

// GameContextFor returns team's view of its game this week. Returns nil
// (no error) when the team is on bye or the game has not been played yet.
func (s *Store) GameContextFor(ctx context.Context, team string) (*GameContext, error) {
	games, err := s.Schedules(ctx)
	if err != nil {
		return nil, err
	}

	code := NormalizeTeam(team)
	for i := range games {
		g := &games[i]
		switch code {
		case g.HomeTeam:
			if !g.Played() {
				return nil, nil
			}
			return &GameContext{
				Team:          g.HomeTeam,
				Opponent:      g.AwayTeam,
				TeamScore:     *g.HomeScore,
				OpponentScore: *g.AwayScore,
				PointsAllowed: *g.AwayScore,
				Coach:         g.HomeCoach,
				IsHome:        true,
				Spread:        g.SpreadLine,
			}, nil
		case g.AwayTeam:
			if !g.Played() {
				return nil, nil
			}
			// Re-sign the spread to the away team's perspective.
			var spread *float64
			if g.SpreadLine != nil {
				neg := -*g.SpreadLine
				spread = &neg
			}
			return &GameContext{
				Team:          g.AwayTeam,
				Opponent:      g.HomeTeam,
				TeamScore:     *g.AwayScore,
				OpponentScore: *g.HomeScore,
				PointsAllowed: *g.HomeScore,
				Coach:         g.AwayCoach,
				IsHome:        false,
				Spread:        spread,
			}, nil
		}
	}
	return nil, nil
}
