package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/opflweb/scoring/internal/stats"
)

// DefaultFeedTTL bounds how long a cached season table is served. Weekly
// tables keep changing through Tuesday stat corrections, so this stays
// short.
const DefaultFeedTTL = 6 * time.Hour

// Store is the key-value surface Feed caches tables through. RedisCache is
// the production implementation.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Feed is a read-through cache over another stats.Feed: whole season tables
// are stored in Redis as JSON so repeated scoring runs (and separate
// processes) skip the multi-hundred-megabyte downloads. Cache failures are
// logged and fall through to the upstream feed; only upstream failures are
// hard errors.
type Feed struct {
	upstream stats.Feed
	cache    Store
	ttl      time.Duration
}

// NewFeed wraps upstream with a read-through cache.
func NewFeed(upstream stats.Feed, cache Store, ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}
	return &Feed{upstream: upstream, cache: cache, ttl: ttl}
}

// PlayerStats returns the cached player table or loads it upstream.
func (f *Feed) PlayerStats(ctx context.Context, season int) ([]stats.PlayerStatRecord, error) {
	key := fmt.Sprintf("nflverse:player_stats:%d", season)
	return cachedTable(ctx, f, key, func() ([]stats.PlayerStatRecord, error) {
		return f.upstream.PlayerStats(ctx, season)
	})
}

// TeamStats returns the cached team table or loads it upstream.
func (f *Feed) TeamStats(ctx context.Context, season int) ([]stats.TeamStatRecord, error) {
	key := fmt.Sprintf("nflverse:team_stats:%d", season)
	return cachedTable(ctx, f, key, func() ([]stats.TeamStatRecord, error) {
		return f.upstream.TeamStats(ctx, season)
	})
}

// Schedules returns the cached schedule table or loads it upstream.
func (f *Feed) Schedules(ctx context.Context, season int) ([]stats.GameRecord, error) {
	key := fmt.Sprintf("nflverse:schedules:%d", season)
	return cachedTable(ctx, f, key, func() ([]stats.GameRecord, error) {
		return f.upstream.Schedules(ctx, season)
	})
}

// PlayByPlay returns the cached play-by-play table or loads it upstream.
func (f *Feed) PlayByPlay(ctx context.Context, season int) ([]stats.PlayByPlayEvent, error) {
	key := fmt.Sprintf("nflverse:pbp:%d", season)
	return cachedTable(ctx, f, key, func() ([]stats.PlayByPlayEvent, error) {
		return f.upstream.PlayByPlay(ctx, season)
	})
}

// Players returns the cached player directory or loads it upstream.
func (f *Feed) Players(ctx context.Context) ([]stats.DirectoryPlayer, error) {
	return cachedTable(ctx, f, "nflverse:players", func() ([]stats.DirectoryPlayer, error) {
		return f.upstream.Players(ctx)
	})
}

func cachedTable[T any](ctx context.Context, f *Feed, key string, load func() ([]T, error)) ([]T, error) {
	if payload, err := f.cache.Get(ctx, key); err == nil {
		var rows []T
		if err := json.Unmarshal([]byte(payload), &rows); err == nil {
			return rows, nil
		}
		// Corrupt payload; drop it and reload.
		_ = f.cache.Delete(ctx, key)
	}

	rows, err := load()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(rows)
	if err == nil {
		if err := f.cache.Set(ctx, key, payload, f.ttl); err != nil {
			log.Printf("feed cache write for %s failed: %v", key, err)
		}
	}
	return rows, nil
}
