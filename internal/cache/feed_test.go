package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/opflweb/scoring/internal/stats"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("no such key")
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	m.data[key] = string(payload)
	return nil
}

func (m *memStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// countingUpstream wraps a StaticFeed and counts PlayerStats loads.
type countingUpstream struct {
	stats.StaticFeed
	playerLoads int
}

func (c *countingUpstream) PlayerStats(ctx context.Context, season int) ([]stats.PlayerStatRecord, error) {
	c.playerLoads++
	return c.StaticFeed.PlayerStats(ctx, season)
}

func TestFeed_CachesAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	upstream := &countingUpstream{
		StaticFeed: stats.StaticFeed{
			PlayerRows: []stats.PlayerStatRecord{{PlayerID: "00-0033873", DisplayName: "Patrick Mahomes", Week: 5}},
		},
	}

	feed := NewFeed(upstream, store, time.Hour)
	recs, err := feed.PlayerStats(ctx, 2025)
	if err != nil {
		t.Fatalf("PlayerStats error: %v", err)
	}
	if len(recs) != 1 || recs[0].DisplayName != "Patrick Mahomes" {
		t.Fatalf("records = %+v", recs)
	}
	if upstream.playerLoads != 1 {
		t.Errorf("upstream loads = %d, want 1", upstream.playerLoads)
	}

	// A second Feed over the same store must serve from cache.
	recs, err = NewFeed(upstream, store, time.Hour).PlayerStats(ctx, 2025)
	if err != nil {
		t.Fatalf("PlayerStats error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("cached records = %+v", recs)
	}
	if upstream.playerLoads != 1 {
		t.Errorf("upstream loads = %d, want 1 (second read served from cache)", upstream.playerLoads)
	}
}

func TestFeed_CorruptPayloadDroppedAndReloaded(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data["nflverse:player_stats:2025"] = "{not json"
	upstream := &countingUpstream{
		StaticFeed: stats.StaticFeed{
			PlayerRows: []stats.PlayerStatRecord{{PlayerID: "00-0033873", Week: 5}},
		},
	}

	recs, err := NewFeed(upstream, store, time.Hour).PlayerStats(ctx, 2025)
	if err != nil {
		t.Fatalf("PlayerStats error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %+v", recs)
	}
	if upstream.playerLoads != 1 {
		t.Errorf("upstream loads = %d, want 1 (corrupt payload reloaded)", upstream.playerLoads)
	}

	// The rewritten payload must now decode.
	var rows []stats.PlayerStatRecord
	if err := json.Unmarshal([]byte(store.data["nflverse:player_stats:2025"]), &rows); err != nil {
		t.Errorf("stored payload does not decode: %v", err)
	}
}

func TestFeed_UpstreamErrorPropagates(t *testing.T) {
	upstream := &countingUpstream{
		StaticFeed: stats.StaticFeed{Err: errors.New("feed down")},
	}

	_, err := NewFeed(upstream, newMemStore(), time.Hour).PlayerStats(context.Background(), 2025)
	if err == nil {
		t.Fatal("PlayerStats error = nil, want upstream error")
	}
}
