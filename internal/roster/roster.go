// Package roster defines the fantasy roster model the scoring engine
// consumes, and a JSON-file source. Roster entries arrive loosely formatted
// (hand-typed names, drifting team codes); resolution against the stats
// feed is the resolver's job, not this package's.
package roster

import (
	"context"
	"fmt"
)

// Position labels in league display order.
var Positions = []string{"QB", "RB", "WR", "TE", "K", "DF", "HC"}

// SlotsPerPosition is the number of roster slots each position carries.
var SlotsPerPosition = map[string]int{
	"QB": 3,
	"RB": 4,
	"WR": 4,
	"TE": 3,
	"K":  2,
	"DF": 2,
	"HC": 2,
}

// Entry is one rostered player, coach or defense: the name as written on
// the roster sheet, the sheet's team code hint, and whether the entry was
// started this week.
type Entry struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Started bool   `json:"started"`
}

// FantasyTeam is one league franchise's roster for a week, position →
// ordered entries.
type FantasyTeam struct {
	Name    string             `json:"name"`
	Players map[string][]Entry `json:"players"`
}

// Validate checks the roster against the league's position slots: every
// position label must be known and no position may carry more entries than
// its slot count.
func (t *FantasyTeam) Validate() error {
	for pos, entries := range t.Players {
		slots, ok := SlotsPerPosition[pos]
		if !ok {
			return fmt.Errorf("team %s: unknown position %q", t.Name, pos)
		}
		if len(entries) > slots {
			return fmt.Errorf("team %s: %d %s entries, roster allows %d", t.Name, len(entries), pos, slots)
		}
	}
	return nil
}

// StartedCount returns how many entries are marked started.
func (t *FantasyTeam) StartedCount() int {
	count := 0
	for _, entries := range t.Players {
		for _, e := range entries {
			if e.Started {
				count++
			}
		}
	}
	return count
}

// Source yields the league's rosters for a scoring run.
type Source interface {
	Teams(ctx context.Context) ([]FantasyTeam, error)
}
