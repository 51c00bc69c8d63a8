// Package derive computes stat values the aggregated weekly feeds do not
// directly expose, by cross-referencing the play-by-play feed: turnover
// return-TD attribution, sack and fumble reconciliation, and blocked-kick
// detection.
package derive

import (
	"context"
	"fmt"

	"github.com/opflweb/scoring/internal/stats"
)

// TurnoverTDs counts a player's turnovers that the defense returned for
// touchdowns. These are billed at the elevated penalty instead of the
// regular one, never both.
type TurnoverTDs struct {
	PickSixes   int
	FumbleSixes int
}

// SackCount is a defense's sack total from both sources. Value is the count
// to score with: the play-by-play count whenever the two disagree, since the
// aggregated column is a known undercounter.
type SackCount struct {
	Aggregated  int
	PlayByPlay  int
	Value       int
	Discrepancy bool
}

// Calculator answers derived-stat questions against one Store's week.
type Calculator struct {
	store *stats.Store
}

// NewCalculator creates a Calculator over store.
func NewCalculator(store *stats.Store) *Calculator {
	return &Calculator{store: store}
}

// TurnoverTDsFor counts pick-sixes (interception + return TD, attributed to
// the passer) and fumble-sixes (fumble lost + return TD, attributed to the
// fumbler) for one player id.
func (c *Calculator) TurnoverTDsFor(ctx context.Context, playerID string) (TurnoverTDs, error) {
	var out TurnoverTDs
	if playerID == "" {
		return out, nil
	}

	plays, err := c.store.PlayByPlay(ctx)
	if err != nil {
		return out, err
	}

	for _, p := range plays {
		if p.Interception && p.ReturnTouchdown && p.PasserPlayerID == playerID {
			out.PickSixes++
		}
		if p.FumbleLost && p.ReturnTouchdown && p.FumbledPlayerID == playerID {
			out.FumbleSixes++
		}
	}
	return out, nil
}

// ExtraFumblesLost counts fumbles the play-by-play attributes to a player
// beyond what their own stat record carries (laterals and other plays the
// primary feed doesn't credit). Floored at zero.
func (c *Calculator) ExtraFumblesLost(ctx context.Context, playerID string, rec *stats.PlayerStatRecord) (int, error) {
	if playerID == "" {
		return 0, nil
	}

	plays, err := c.store.PlayByPlay(ctx)
	if err != nil {
		return 0, err
	}

	pbpFumbles := 0
	for _, p := range plays {
		if p.FumbleLost && p.FumbledPlayerID == playerID {
			pbpFumbles++
		}
	}

	extra := pbpFumbles - rec.FumblesLost()
	if extra < 0 {
		extra = 0
	}
	return extra, nil
}

// DefensiveSacks reconciles a team's aggregated sack count against a direct
// play-by-play count of sacks while that team was on defense.
func (c *Calculator) DefensiveSacks(ctx context.Context, team string) (SackCount, error) {
	var out SackCount
	code := stats.NormalizeTeam(team)

	rec, err := c.store.TeamStatsFor(ctx, code)
	if err != nil {
		return out, err
	}
	if rec != nil {
		out.Aggregated = int(rec.DefSacks)
	}

	plays, err := c.store.PlayByPlay(ctx)
	if err != nil {
		return out, err
	}
	for _, p := range plays {
		if p.Sack && p.DefTeam == code {
			out.PlayByPlay++
		}
	}

	out.Discrepancy = out.Aggregated != out.PlayByPlay
	if out.Discrepancy {
		out.Value = out.PlayByPlay
	} else {
		out.Value = out.Aggregated
	}
	return out, nil
}

// Note renders the advisory data-quality note attached to a result when the
// two sack sources disagree.
func (sc SackCount) Note() string {
	return fmt.Sprintf("Sack discrepancy: aggregated=%d, PBP=%d (using PBP)", sc.Aggregated, sc.PlayByPlay)
}

// BlockedPunts counts punts blocked while the team was on defense.
func (c *Calculator) BlockedPunts(ctx context.Context, team string) (int, error) {
	plays, err := c.store.PlayByPlay(ctx)
	if err != nil {
		return 0, err
	}

	code := stats.NormalizeTeam(team)
	count := 0
	for _, p := range plays {
		if p.PuntBlocked && p.DefTeam == code {
			count++
		}
	}
	return count, nil
}

// BlockedKickTDs counts touchdowns a defense scored off blocked punts or
// blocked field-goal attempts. The feed folds these into special-teams TDs
// alongside ordinary punt/kickoff return TDs, which do not score under this
// ruleset, so they are separated out here play by play.
func (c *Calculator) BlockedKickTDs(ctx context.Context, team string) (int, error) {
	plays, err := c.store.PlayByPlay(ctx)
	if err != nil {
		return 0, err
	}

	code := stats.NormalizeTeam(team)
	count := 0
	for _, p := range plays {
		if p.PuntBlocked && p.Touchdown && p.TDTeam == code {
			count++
		}
		// A defense scoring on a field-goal attempt means the kick was
		// blocked and returned.
		if p.FieldGoalAttempt && p.Touchdown && p.TDTeam == code && p.DefTeam == code {
			count++
		}
	}
	return count, nil
}

// FumbleRecoveries reconciles a defense's own reported recoveries against
// the opponent's reported fumbles lost and returns the larger; either feed
// can undercount.
func (c *Calculator) FumbleRecoveries(team *stats.TeamStatRecord, opponent *stats.TeamStatRecord) int {
	recoveries := 0
	if team != nil {
		recoveries = team.FumbleRecoveryOpp
	}
	if opponent != nil && opponent.FumblesLost() > recoveries {
		recoveries = opponent.FumblesLost()
	}
	return recoveries
}
