package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opflweb/scoring/internal/api/rest"
	"github.com/opflweb/scoring/internal/api/websocket"
	"github.com/opflweb/scoring/internal/cache"
	"github.com/opflweb/scoring/internal/engine"
	"github.com/opflweb/scoring/internal/nflverse"
	"github.com/opflweb/scoring/internal/publisher"
	"github.com/opflweb/scoring/internal/roster"
	"github.com/opflweb/scoring/internal/stats"
	"github.com/opflweb/scoring/internal/store"
	"github.com/opflweb/scoring/internal/store/repository"
)

const (
	serviceName    = "opfl-scoring"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - OPFL Scoring Service", serviceName, serviceVersion)

	// Load configuration from environment
	config := loadConfig()

	// Initialize database connection (optional; scoring runs work without it)
	var scoresRepo *repository.ScoresRepository
	if config.DatabaseDSN != "" {
		db, err := store.NewDatabase(config.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Println("✓ Connected to database")

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Println("✓ Database migrations applied")

		scoresRepo = repository.NewScoresRepository(db)
	} else {
		log.Println("⚠️  DATABASE_DSN not set, score runs will not be persisted")
	}

	// Initialize Redis cache with retry logic
	var redisCache *cache.RedisCache
	var err error
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(config.RedisURL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer redisCache.Close()

	log.Println("✓ Connected to Redis")

	// Initialize Redis publisher
	redisPublisher, err := publisher.NewRedisPublisher(config.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis publisher: %v", err)
	}
	defer redisPublisher.Close()

	log.Println("✓ Redis publisher initialized")

	// Feed: nflverse tables behind the Redis read-through cache
	var feed stats.Feed = cache.NewFeed(nflverse.NewClient(), redisCache, cache.DefaultFeedTTL)

	// Roster source
	rosters := roster.NewFileSource(config.RosterPath)

	// Initialize WebSocket server
	wsServer := websocket.NewServer()
	go func() {
		log.Printf("Starting WebSocket server on port %s", config.WSPort)
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	// Wire REST handler, fanning team-scored events to the hub and stream
	handler := rest.NewHandler(feed, rosters, scoresRepo)
	handler.OnTeamScored = func(season, week int, team string, total float64, _ map[string][]*engine.PlayerScore) {
		wsServer.BroadcastTeamScored(season, week, team, total)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		event := publisher.TeamScoredEvent{Season: season, Week: week, Team: team, Total: total}
		if err := redisPublisher.PublishTeamScored(ctx, event); err != nil {
			log.Printf("⚠️  Failed to publish team-scored event for %s: %v", team, err)
		}
	}

	restServer := rest.NewServer(config.RESTPort, handler)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)
	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", config.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", config.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Stopped")
}

type Config struct {
	DatabaseDSN string
	RedisURL    string
	RESTPort    string
	WSPort      string
	RosterPath  string
}

func loadConfig() Config {
	return Config{
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		RESTPort:    getEnv("REST_PORT", "8080"),
		WSPort:      getEnv("WS_PORT", "8081"),
		RosterPath:  getEnv("ROSTER_PATH", "rosters.json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
