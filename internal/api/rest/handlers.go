package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/opflweb/scoring/internal/engine"
	"github.com/opflweb/scoring/internal/roster"
	"github.com/opflweb/scoring/internal/stats"
	"github.com/opflweb/scoring/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	feed    stats.Feed
	rosters roster.Source
	scores  *repository.ScoresRepository

	// OnTeamScored, when set, is invoked as each fantasy team finishes
	// scoring during a run. The websocket hub and stream publisher are
	// wired in here by the daemon.
	OnTeamScored func(season, week int, team string, total float64, scores map[string][]*engine.PlayerScore)
}

// NewHandler creates a new handler. scores may be nil when persistence is
// disabled; run results are then computed and returned without saving.
func NewHandler(feed stats.Feed, rosters roster.Source, scores *repository.ScoresRepository) *Handler {
	return &Handler{
		feed:    feed,
		rosters: rosters,
		scores:  scores,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "opfl-scoring",
		"version": "1.0.0",
	})
}

// seasonWeek pulls and validates the season and week query parameters
func seasonWeek(r *http.Request) (int, int, bool) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil || season < 1999 {
		return 0, 0, false
	}
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 || week > 22 {
		return 0, 0, false
	}
	return season, week, true
}

// RunScores scores the whole league for a week, persists the run when a
// database is configured, and returns the results
func (h *Handler) RunScores(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeek(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid season or week (use ?season=YYYY&week=N)", nil)
		return
	}

	scorer := engine.NewScorer(h.feed, season, week)
	if h.OnTeamScored != nil {
		scorer.TeamScored = func(team string, total float64, scores map[string][]*engine.PlayerScore) {
			h.OnTeamScored(season, week, team, total, scores)
		}
	}

	_, results, err := scorer.ScoreWeek(r.Context(), h.rosters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to score week", err)
		return
	}

	response := map[string]interface{}{
		"season":  season,
		"week":    week,
		"results": results,
	}

	if h.scores != nil {
		runID, err := h.scores.SaveWeek(r.Context(), season, week, true, results)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to save score run", err)
			return
		}
		response["run_id"] = runID
	}

	respondJSON(w, http.StatusOK, response)
}

// GetScores returns the latest persisted run for a week
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		respondError(w, http.StatusServiceUnavailable, "Score persistence is not configured", nil)
		return
	}

	season, week, ok := seasonWeek(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid season or week (use ?season=YYYY&week=N)", nil)
		return
	}

	stored, err := h.scores.GetWeek(r.Context(), season, week)
	if err != nil {
		respondError(w, http.StatusNotFound, "No completed run for that week", err)
		return
	}

	respondJSON(w, http.StatusOK, stored)
}

// ListRuns returns every persisted run for a season
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		respondError(w, http.StatusServiceUnavailable, "Score persistence is not configured", nil)
		return
	}

	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil || season < 1999 {
		respondError(w, http.StatusBadRequest, "Invalid season (use ?season=YYYY)", nil)
		return
	}

	runs, err := h.scores.ListRuns(r.Context(), season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// ScorePlayer scores a single player on demand without touching any roster
func (h *Handler) ScorePlayer(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeek(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid season or week (use ?season=YYYY&week=N)", nil)
		return
	}

	name := r.URL.Query().Get("name")
	position := r.URL.Query().Get("position")
	team := r.URL.Query().Get("team")
	if name == "" || position == "" {
		respondError(w, http.StatusBadRequest, "name and position query parameters are required", nil)
		return
	}

	scorer := engine.NewScorer(h.feed, season, week)
	score, err := scorer.ScorePlayer(r.Context(), name, team, position)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to score player", err)
		return
	}

	respondJSON(w, http.StatusOK, score)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
