package nflverse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/opflweb/scoring/internal/stats"
)

// table is a decoded CSV with header-name lookup. nflverse files are wide
// (play-by-play has 370+ columns); rows are kept raw and cells pulled out
// by name so column reordering upstream doesn't break parsing.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return &table{index: index, rows: rows}, nil
}

// cell returns a named cell, or "" when the column is absent or the row is
// short. Feeds add and drop optional columns between seasons.
func (t *table) cell(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// rowScan decodes named cells from one row, latching the first parse
// failure so record construction stays linear. Blank cells and NA markers
// decode to zero (or nil for the optional variants); anything else that
// fails to parse is a malformed feed and fails the whole load.
type rowScan struct {
	t   *table
	row []string
	err error
}

func (r *rowScan) cell(name string) string {
	return r.t.cell(r.row, name)
}

// intCell parses a numeric cell as an int. nflverse writes counts as floats
// ("2.0"), so parse via float.
func (r *rowScan) intCell(name string) int {
	return int(r.floatCell(name))
}

func (r *rowScan) floatCell(name string) float64 {
	if r.err != nil {
		return 0
	}
	s := r.cell(name)
	if s == "" || s == "NA" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: bad numeric value %q", name, s)
		return 0
	}
	return f
}

// boolCell parses the feed's 0/1 flag columns.
func (r *rowScan) boolCell(name string) bool {
	return r.floatCell(name) != 0
}

// optIntCell distinguishes an absent value from zero (game scores).
func (r *rowScan) optIntCell(name string) *int {
	if f := r.optFloatCell(name); f != nil {
		v := int(*f)
		return &v
	}
	return nil
}

func (r *rowScan) optFloatCell(name string) *float64 {
	if r.err != nil {
		return nil
	}
	s := r.cell(name)
	if s == "" || s == "NA" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: bad numeric value %q", name, s)
		return nil
	}
	return &f
}

func parsePlayerStats(t *table, season int) ([]stats.PlayerStatRecord, error) {
	out := make([]stats.PlayerStatRecord, 0, len(t.rows))
	for i, row := range t.rows {
		r := rowScan{t: t, row: row}
		rec := stats.PlayerStatRecord{
			PlayerID:    r.cell("player_id"),
			DisplayName: r.cell("player_display_name"),
			Team:        r.cell("team"),
			Position:    r.cell("position"),
			Season:      season,
			Week:        r.intCell("week"),

			PassingYards:         r.intCell("passing_yards"),
			PassingTDs:           r.intCell("passing_tds"),
			PassingInterceptions: r.intCell("passing_interceptions"),
			Passing2PtConv:       r.intCell("passing_2pt_conversions"),

			RushingYards:   r.intCell("rushing_yards"),
			RushingTDs:     r.intCell("rushing_tds"),
			Rushing2PtConv: r.intCell("rushing_2pt_conversions"),

			ReceivingYards:   r.intCell("receiving_yards"),
			ReceivingTDs:     r.intCell("receiving_tds"),
			Receiving2PtConv: r.intCell("receiving_2pt_conversions"),

			SackFumblesLost:      r.intCell("sack_fumbles_lost"),
			RushingFumblesLost:   r.intCell("rushing_fumbles_lost"),
			ReceivingFumblesLost: r.intCell("receiving_fumbles_lost"),

			PATMade:    r.intCell("pat_made"),
			PATMissed:  r.intCell("pat_missed"),
			PATBlocked: r.intCell("pat_blocked"),

			FGMade0to19:  r.intCell("fg_made_0_19"),
			FGMade20to29: r.intCell("fg_made_20_29"),
			FGMade30to39: r.intCell("fg_made_30_39"),
			FGMade40to49: r.intCell("fg_made_40_49"),
			FGMade50to59: r.intCell("fg_made_50_59"),
			FGMade60Plus: r.intCell("fg_made_60_"),
			FGMissed:     r.intCell("fg_missed"),
			FGBlocked:    r.intCell("fg_blocked"),
		}
		if r.err != nil {
			return nil, fmt.Errorf("player stats row %d: %w", i+2, r.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseTeamStats(t *table, season int) ([]stats.TeamStatRecord, error) {
	out := make([]stats.TeamStatRecord, 0, len(t.rows))
	for i, row := range t.rows {
		r := rowScan{t: t, row: row}
		rec := stats.TeamStatRecord{
			Team:   r.cell("team"),
			Season: season,
			Week:   r.intCell("week"),

			DefInterceptions:  r.intCell("def_interceptions"),
			DefSacks:          r.floatCell("def_sacks"),
			DefSafeties:       r.intCell("def_safeties"),
			DefTDs:            r.intCell("def_tds"),
			FumbleRecoveryOpp: r.intCell("fumble_recovery_opp"),
			FumbleRecoveryTDs: r.intCell("fumble_recovery_tds"),

			SackFumblesLost:      r.intCell("sack_fumbles_lost"),
			RushingFumblesLost:   r.intCell("rushing_fumbles_lost"),
			ReceivingFumblesLost: r.intCell("receiving_fumbles_lost"),

			PATBlocked: r.intCell("pat_blocked"),
			FGBlocked:  r.intCell("fg_blocked"),
		}
		if r.err != nil {
			return nil, fmt.Errorf("team stats row %d: %w", i+2, r.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseSchedules(t *table, season int) ([]stats.GameRecord, error) {
	var out []stats.GameRecord
	for i, row := range t.rows {
		r := rowScan{t: t, row: row}
		rowSeason := r.intCell("season")
		if r.err != nil {
			return nil, fmt.Errorf("schedules row %d: %w", i+2, r.err)
		}
		if rowSeason != season {
			continue
		}
		rec := stats.GameRecord{
			GameID:     r.cell("game_id"),
			Season:     season,
			Week:       r.intCell("week"),
			HomeTeam:   r.cell("home_team"),
			AwayTeam:   r.cell("away_team"),
			HomeScore:  r.optIntCell("home_score"),
			AwayScore:  r.optIntCell("away_score"),
			SpreadLine: r.optFloatCell("spread_line"),
			HomeCoach:  r.cell("home_coach"),
			AwayCoach:  r.cell("away_coach"),
		}
		if r.err != nil {
			return nil, fmt.Errorf("schedules row %d: %w", i+2, r.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parsePlayByPlay(t *table, season int) ([]stats.PlayByPlayEvent, error) {
	out := make([]stats.PlayByPlayEvent, 0, len(t.rows))
	for i, row := range t.rows {
		r := rowScan{t: t, row: row}
		rec := stats.PlayByPlayEvent{
			Season:  season,
			Week:    r.intCell("week"),
			PosTeam: r.cell("posteam"),
			DefTeam: r.cell("defteam"),
			TDTeam:  r.cell("td_team"),

			Interception:     r.boolCell("interception"),
			FumbleLost:       r.boolCell("fumble_lost"),
			ReturnTouchdown:  r.boolCell("return_touchdown"),
			Sack:             r.boolCell("sack"),
			PuntBlocked:      r.boolCell("punt_blocked"),
			FieldGoalAttempt: r.boolCell("field_goal_attempt"),
			Touchdown:        r.boolCell("touchdown"),

			PasserPlayerID:  r.cell("passer_player_id"),
			FumbledPlayerID: r.cell("fumbled_1_player_id"),
		}
		if r.err != nil {
			return nil, fmt.Errorf("play-by-play row %d: %w", i+2, r.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseDirectory(t *table) ([]stats.DirectoryPlayer, error) {
	out := make([]stats.DirectoryPlayer, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, stats.DirectoryPlayer{
			PlayerID:    t.cell(row, "gsis_id"),
			DisplayName: t.cell(row, "display_name"),
			Position:    t.cell(row, "position"),
			Team:        t.cell(row, "latest_team"),
		})
	}
	return out, nil
}
