package store

import (
	"encoding/json"
	"time"
)

// ScoreRun is one persisted execution of the weekly scorer.
type ScoreRun struct {
	ID           int64      `json:"id"`
	Season       int        `json:"season"`
	Week         int        `json:"week"`
	StartersOnly bool       `json:"starters_only"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// TeamScoreRow is a fantasy team's total for a run.
type TeamScoreRow struct {
	ID       int64   `json:"id"`
	RunID    int64   `json:"run_id"`
	TeamName string  `json:"team_name"`
	Total    float64 `json:"total"`
}

// PlayerScoreRow is one scored roster entry within a run. Breakdown and
// DataNotes are stored as JSONB so the row round-trips the full result.
type PlayerScoreRow struct {
	ID           int64           `json:"id"`
	RunID        int64           `json:"run_id"`
	TeamName     string          `json:"team_name"`
	PlayerName   string          `json:"player_name"`
	MatchedName  string          `json:"matched_name,omitempty"`
	Position     string          `json:"position"`
	NFLTeam      string          `json:"nfl_team,omitempty"`
	IsStarter    bool            `json:"is_starter"`
	FoundInStats bool            `json:"found_in_stats"`
	TotalPoints  float64         `json:"total_points"`
	Breakdown    json.RawMessage `json:"breakdown"`
	DataNotes    json.RawMessage `json:"data_notes"`
}
