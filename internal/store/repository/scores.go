package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/opflweb/scoring/internal/engine"
	"github.com/opflweb/scoring/internal/store"
)

// ScoresRepository handles score-run persistence
type ScoresRepository struct {
	db *store.Database
}

// NewScoresRepository creates a new scores repository
func NewScoresRepository(db *store.Database) *ScoresRepository {
	return &ScoresRepository{db: db}
}

// SaveWeek persists a full week of results as one run and returns the run ID.
// The whole run commits atomically.
func (r *ScoresRepository) SaveWeek(ctx context.Context, season, week int, startersOnly bool, results map[string]engine.WeekResult) (int64, error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO score_runs (season, week, starters_only)
		VALUES ($1, $2, $3)
		RETURNING id
	`, season, week, startersOnly).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("inserting score run: %w", err)
	}

	for teamName, result := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO team_scores (run_id, team_name, total)
			VALUES ($1, $2, $3)
		`, runID, teamName, result.Total)
		if err != nil {
			return 0, fmt.Errorf("inserting team score for %s: %w", teamName, err)
		}

		for _, positionScores := range result.Scores {
			for _, score := range positionScores {
				breakdown, err := json.Marshal(score.Breakdown)
				if err != nil {
					return 0, fmt.Errorf("marshaling breakdown for %s: %w", score.Name, err)
				}
				notes, err := json.Marshal(score.DataNotes)
				if err != nil {
					return 0, fmt.Errorf("marshaling data notes for %s: %w", score.Name, err)
				}

				_, err = tx.ExecContext(ctx, `
					INSERT INTO player_scores
						(run_id, team_name, player_name, matched_name, position, nfl_team,
						 is_starter, found_in_stats, total_points, breakdown, data_notes)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				`, runID, teamName, score.Name, score.MatchedName, score.Position, score.Team,
					score.IsStarter, score.FoundInStats, score.TotalPoints, breakdown, notes)
				if err != nil {
					return 0, fmt.Errorf("inserting player score for %s: %w", score.Name, err)
				}
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE score_runs SET completed_at = NOW() WHERE id = $1`, runID); err != nil {
		return 0, fmt.Errorf("completing score run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing score run: %w", err)
	}

	return runID, nil
}

// WeekScores bundles a run with all of its persisted rows.
type WeekScores struct {
	Run     *store.ScoreRun         `json:"run"`
	Teams   []*store.TeamScoreRow   `json:"teams"`
	Players []*store.PlayerScoreRow `json:"players"`
}

// GetWeek returns the latest completed run for a week with its team totals
// and player rows.
func (r *ScoresRepository) GetWeek(ctx context.Context, season, week int) (*WeekScores, error) {
	run, err := r.LatestRun(ctx, season, week)
	if err != nil {
		return nil, err
	}

	teams, err := r.TeamScores(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	players, err := r.PlayerScores(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	return &WeekScores{Run: run, Teams: teams, Players: players}, nil
}

// LatestRun returns the most recent completed run for a season and week
func (r *ScoresRepository) LatestRun(ctx context.Context, season, week int) (*store.ScoreRun, error) {
	query := `
		SELECT id, season, week, starters_only, started_at, completed_at
		FROM score_runs
		WHERE season = $1 AND week = $2 AND completed_at IS NOT NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	run := &store.ScoreRun{}
	err := r.db.DB().QueryRowContext(ctx, query, season, week).Scan(
		&run.ID, &run.Season, &run.Week, &run.StartersOnly, &run.StartedAt, &run.CompletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no completed run for season %d week %d", season, week)
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest run: %w", err)
	}

	return run, nil
}

// ListRuns returns all runs for a season, newest first
func (r *ScoresRepository) ListRuns(ctx context.Context, season int) ([]*store.ScoreRun, error) {
	query := `
		SELECT id, season, week, starters_only, started_at, completed_at
		FROM score_runs
		WHERE season = $1
		ORDER BY started_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.ScoreRun
	for rows.Next() {
		run := &store.ScoreRun{}
		if err := rows.Scan(&run.ID, &run.Season, &run.Week, &run.StartersOnly, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// TeamScores returns every team total for a run, highest first
func (r *ScoresRepository) TeamScores(ctx context.Context, runID int64) ([]*store.TeamScoreRow, error) {
	query := `
		SELECT id, run_id, team_name, total
		FROM team_scores
		WHERE run_id = $1
		ORDER BY total DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("querying team scores: %w", err)
	}
	defer rows.Close()

	var scores []*store.TeamScoreRow
	for rows.Next() {
		row := &store.TeamScoreRow{}
		if err := rows.Scan(&row.ID, &row.RunID, &row.TeamName, &row.Total); err != nil {
			return nil, fmt.Errorf("scanning team score: %w", err)
		}
		scores = append(scores, row)
	}

	return scores, rows.Err()
}

// PlayerScores returns every player row for a run grouped by fantasy team
func (r *ScoresRepository) PlayerScores(ctx context.Context, runID int64) ([]*store.PlayerScoreRow, error) {
	query := `
		SELECT id, run_id, team_name, player_name, COALESCE(matched_name, ''), position,
			COALESCE(nfl_team, ''), is_starter, found_in_stats, total_points, breakdown, data_notes
		FROM player_scores
		WHERE run_id = $1
		ORDER BY team_name, position, total_points DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("querying player scores: %w", err)
	}
	defer rows.Close()

	var scores []*store.PlayerScoreRow
	for rows.Next() {
		row := &store.PlayerScoreRow{}
		if err := rows.Scan(&row.ID, &row.RunID, &row.TeamName, &row.PlayerName, &row.MatchedName,
			&row.Position, &row.NFLTeam, &row.IsStarter, &row.FoundInStats, &row.TotalPoints,
			&row.Breakdown, &row.DataNotes); err != nil {
			return nil, fmt.Errorf("scanning player score: %w", err)
		}
		scores = append(scores, row)
	}

	return scores, rows.Err()
}
