package nflverse

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opflweb/scoring/internal/stats"
)

const (
	// DefaultBaseURL is the nflverse-data release root.
	DefaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"

	// DefaultSchedulesURL is the nflverse games file, published separately
	// from the release assets.
	DefaultSchedulesURL = "https://github.com/nflverse/nfldata/raw/master/data/games.csv"
)

// Client fetches nflverse CSV assets over HTTP and implements stats.Feed.
// Tables are decoded in full; the caller's Store does the week filtering.
type Client struct {
	HTTP         *http.Client
	BaseURL      string
	SchedulesURL string
	UserAgent    string
}

// NewClient creates a feed client with default endpoints and timeouts.
// Play-by-play files run to hundreds of megabytes, hence the long timeout.
func NewClient() *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 5 * time.Minute},
		BaseURL:      DefaultBaseURL,
		SchedulesURL: DefaultSchedulesURL,
		UserAgent:    "opfl-scoring/1.0",
	}
}

// PlayerStats downloads the weekly player stats table for a season.
func (c *Client) PlayerStats(ctx context.Context, season int) ([]stats.PlayerStatRecord, error) {
	url := fmt.Sprintf("%s/player_stats/stats_player_week_%d.csv", c.BaseURL, season)
	tbl, err := c.fetchTable(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching player stats: %w", err)
	}
	return parsePlayerStats(tbl, season)
}

// TeamStats downloads the weekly team stats table for a season.
func (c *Client) TeamStats(ctx context.Context, season int) ([]stats.TeamStatRecord, error) {
	url := fmt.Sprintf("%s/team_stats/stats_team_week_%d.csv", c.BaseURL, season)
	tbl, err := c.fetchTable(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching team stats: %w", err)
	}
	return parseTeamStats(tbl, season)
}

// Schedules downloads the full games file and keeps one season's rows.
func (c *Client) Schedules(ctx context.Context, season int) ([]stats.GameRecord, error) {
	tbl, err := c.fetchTable(ctx, c.SchedulesURL)
	if err != nil {
		return nil, fmt.Errorf("fetching schedules: %w", err)
	}
	return parseSchedules(tbl, season)
}

// PlayByPlay downloads the season's play-by-play file (gzip CSV).
func (c *Client) PlayByPlay(ctx context.Context, season int) ([]stats.PlayByPlayEvent, error) {
	url := fmt.Sprintf("%s/pbp/play_by_play_%d.csv.gz", c.BaseURL, season)
	tbl, err := c.fetchTable(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching play-by-play: %w", err)
	}
	return parsePlayByPlay(tbl, season)
}

// Players downloads the season-independent player directory.
func (c *Client) Players(ctx context.Context) ([]stats.DirectoryPlayer, error) {
	url := fmt.Sprintf("%s/players/players.csv", c.BaseURL)
	tbl, err := c.fetchTable(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}
	return parseDirectory(tbl)
}

// fetchTable GETs a CSV (optionally gzip-compressed) and decodes it.
func (c *Client) fetchTable(ctx context.Context, url string) (*table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GET %s failed: %d body=%s", url, resp.StatusCode, string(body))
	}

	var reader io.Reader = resp.Body
	if strings.HasSuffix(url, ".gz") && resp.Header.Get("Content-Encoding") != "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return readTable(reader)
}
