package resolve

import (
	"context"
	"strings"

	"github.com/opflweb/scoring/internal/stats"
)

// DefaultFuzzyThreshold is the minimum token-sort ratio (0-100) a fuzzy
// candidate needs to be accepted.
const DefaultFuzzyThreshold = 75

type cacheKey struct {
	name string
	team string
}

type cacheEntry struct {
	canonical string
	found     bool
}

// Resolution is a successful player lookup: the live stat record plus the
// strategy that produced it (for audit; "cache" on repeat lookups).
type Resolution struct {
	Record   *stats.PlayerStatRecord
	Strategy string
}

// Resolver maps loosely formatted roster names onto the week's stat records
// using an ordered matcher cascade with positive and negative memoization.
// A Resolver belongs to one Store (one season+week) and, like the Store, is
// not safe for concurrent use.
type Resolver struct {
	store    *stats.Store
	cache    map[cacheKey]cacheEntry
	matchers []matcher
}

// NewResolver creates a Resolver over store with the default fuzzy threshold.
func NewResolver(store *stats.Store) *Resolver {
	return NewResolverThreshold(store, DefaultFuzzyThreshold)
}

// NewResolverThreshold creates a Resolver with a custom fuzzy threshold.
func NewResolverThreshold(store *stats.Store, threshold int) *Resolver {
	return &Resolver{
		store: store,
		cache: make(map[cacheKey]cacheEntry),
		matchers: []matcher{
			exactMatcher{},
			substringMatcher{},
			lastNameMatcher{},
			fuzzyTeamMatcher{threshold: threshold},
			fuzzyAnyMatcher{threshold: threshold},
		},
	}
}

// FindPlayer resolves a roster name and team hint to the week's stat record.
// Returns (nil, nil) when the player cannot be resolved, a soft miss rather
// than an error. Feed failures propagate.
func (r *Resolver) FindPlayer(ctx context.Context, name, team string) (*Resolution, error) {
	all, err := r.store.PlayerStats(ctx)
	if err != nil {
		return nil, err
	}

	q := query{
		raw:        name,
		normalized: NormalizeName(name),
		team:       stats.NormalizeTeam(team),
	}
	key := cacheKey{name: q.normalized, team: q.team}

	if entry, ok := r.cache[key]; ok {
		if !entry.found {
			return nil, nil
		}
		// Re-fetch by canonical name rather than holding a stale record.
		if rec := findByDisplayName(all, entry.canonical); rec != nil {
			return &Resolution{Record: rec, Strategy: "cache"}, nil
		}
		// Canonical name vanished from the table; fall through and search.
	}

	pool := all
	if q.team != "" {
		pool = filterByTeam(all, q.team)
	}

	for _, m := range r.matchers {
		if rec := m.match(q, pool, all); rec != nil {
			r.cache[key] = cacheEntry{canonical: rec.DisplayName, found: true}
			return &Resolution{Record: rec, Strategy: m.name()}, nil
		}
	}

	r.cache[key] = cacheEntry{found: false}
	return nil, nil
}

// FindCoach resolves a head-coach name by scanning the week's schedule for a
// substring match against the listed home and away coaches, returning that
// team's game context. No fuzzy fallback exists for coaches. Unplayed games
// still resolve (with zero scores) so a coach on a pending game reads as a
// non-win rather than missing.
func (r *Resolver) FindCoach(ctx context.Context, name string) (*stats.GameContext, error) {
	games, err := r.store.Schedules(ctx)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(strings.TrimSpace(name))
	if clean == "" {
		return nil, nil
	}

	for i := range games {
		g := &games[i]
		if strings.Contains(strings.ToLower(g.HomeCoach), clean) {
			return coachContext(g, true), nil
		}
		if strings.Contains(strings.ToLower(g.AwayCoach), clean) {
			return coachContext(g, false), nil
		}
	}
	return nil, nil
}

func coachContext(g *stats.GameRecord, isHome bool) *stats.GameContext {
	home := scoreOrZero(g.HomeScore)
	away := scoreOrZero(g.AwayScore)

	if isHome {
		return &stats.GameContext{
			Team:          g.HomeTeam,
			Opponent:      g.AwayTeam,
			TeamScore:     home,
			OpponentScore: away,
			PointsAllowed: away,
			Coach:         g.HomeCoach,
			IsHome:        true,
			Spread:        g.SpreadLine,
		}
	}

	var spread *float64
	if g.SpreadLine != nil {
		neg := -*g.SpreadLine
		spread = &neg
	}
	return &stats.GameContext{
		Team:          g.AwayTeam,
		Opponent:      g.HomeTeam,
		TeamScore:     away,
		OpponentScore: home,
		PointsAllowed: home,
		Coach:         g.AwayCoach,
		IsHome:        false,
		Spread:        spread,
	}
}

func scoreOrZero(s *int) int {
	if s == nil {
		return 0
	}
	return *s
}

func findByDisplayName(pool []stats.PlayerStatRecord, display string) *stats.PlayerStatRecord {
	for i := range pool {
		if pool[i].DisplayName == display {
			return &pool[i]
		}
	}
	return nil
}

func filterByTeam(pool []stats.PlayerStatRecord, team string) []stats.PlayerStatRecord {
	var out []stats.PlayerStatRecord
	for _, rec := range pool {
		if rec.Team == team {
			out = append(out, rec)
		}
	}
	return out
}
