package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/opflweb/scoring/internal/cache"
	"github.com/opflweb/scoring/internal/engine"
	"github.com/opflweb/scoring/internal/nflverse"
	"github.com/opflweb/scoring/internal/roster"
	"github.com/opflweb/scoring/internal/stats"
	"github.com/opflweb/scoring/internal/store"
	"github.com/opflweb/scoring/internal/store/repository"
)

const (
	appName    = "opfl-autoscorer"
	appVersion = "1.0.0"
)

func main() {
	var (
		season     = flag.Int("season", time.Now().Year(), "NFL season to score")
		week       = flag.Int("week", 0, "Week to score (required)")
		rosterPath = flag.String("rosters", getEnv("ROSTER_PATH", "rosters.json"), "Path to the league roster JSON file")
		all        = flag.Bool("all", false, "Score bench players too (totals still count starters only)")
		verbose    = flag.Bool("v", false, "Print per-player breakdowns")
		dsn        = flag.String("dsn", getEnv("DATABASE_DSN", ""), "Postgres DSN; when set, the run is persisted")
		redisURL   = flag.String("redis", getEnv("REDIS_URL", ""), "Redis URL; when set, feed tables are cached")
	)

	flag.Parse()

	if *week < 1 || *week > 22 {
		log.Fatalf("Specify --week between 1 and 22")
	}

	log.Printf("=== %s v%s ===", appName, appVersion)
	log.Printf("Scoring season %d week %d", *season, *week)

	var feed stats.Feed = nflverse.NewClient()
	if *redisURL != "" {
		redisCache, err := cache.NewRedisCache(*redisURL)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		defer redisCache.Close()
		feed = cache.NewFeed(feed, redisCache, cache.DefaultFeedTTL)
		log.Println("✓ Feed caching enabled")
	}

	ctx := context.Background()
	src := roster.NewFileSource(*rosterPath)

	scorer := engine.NewScorer(feed, *season, *week)

	teams, err := src.Teams(ctx)
	if err != nil {
		log.Fatalf("load rosters: %v", err)
	}

	results := make(map[string]engine.WeekResult, len(teams))
	for _, team := range teams {
		scores, err := scorer.ScoreFantasyTeam(ctx, team, !*all)
		if err != nil {
			log.Fatalf("score %s: %v", team.Name, err)
		}
		total := engine.CalculateTeamTotal(scores, true)
		results[team.Name] = engine.WeekResult{Total: total, Scores: scores}

		printTeam(team.Name, total, scores, *verbose)
	}

	printSummary(results)

	if *dsn != "" {
		db, err := store.NewDatabase(*dsn)
		if err != nil {
			log.Fatalf("connect database: %v", err)
		}
		defer db.Close()

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		runID, err := repository.NewScoresRepository(db).SaveWeek(ctx, *season, *week, !*all, results)
		if err != nil {
			log.Fatalf("save run: %v", err)
		}
		log.Printf("✓ Run saved as id %d", runID)
	}
}

// printTeam prints one fantasy team's scores in roster order
func printTeam(name string, total float64, scores map[string][]*engine.PlayerScore, verbose bool) {
	fmt.Printf("\n%s\n%s\n", name, strings.Repeat("=", len(name)))

	for _, position := range roster.Positions {
		for _, score := range scores[position] {
			marker := " "
			if !score.IsStarter {
				marker = "b" // bench
			}
			display := score.Name
			if score.MatchedName != "" && score.MatchedName != score.Name {
				display = fmt.Sprintf("%s (matched: %s)", score.Name, score.MatchedName)
			}
			if !score.FoundInStats {
				display += " [no stats found]"
			}

			fmt.Printf("  %s %-3s %-40s %7.1f\n", marker, position, display, score.TotalPoints)

			if verbose {
				for _, entry := range score.Breakdown {
					fmt.Printf("        %-28s %7.1f\n", entry.Label, entry.Points)
				}
			}
			for _, note := range score.DataNotes {
				fmt.Printf("        note: %s\n", note)
			}
		}
	}

	fmt.Printf("  %s\n  TOTAL %48.1f\n", strings.Repeat("-", 56), total)
}

// printSummary prints the league standings for the week, highest first
func printSummary(results map[string]engine.WeekResult) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return results[names[i]].Total > results[names[j]].Total
	})

	fmt.Printf("\nWeek summary\n============\n")
	for i, name := range names {
		fmt.Printf("  %2d. %-30s %7.1f\n", i+1, name, results[name].Total)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
