package resolve

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/opflweb/scoring/internal/stats"
)

// query is one resolution attempt: the raw roster name, its normalized form,
// and the normalized team hint ("" when the roster gave none).
type query struct {
	raw        string
	normalized string
	team       string
}

// matcher is one strategy in the resolution cascade. pool is the team-scoped
// candidate set (the full week when there is no team hint); all is always the
// full week. Strategies are tried in order and the first hit wins.
type matcher interface {
	name() string
	match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord
}

// exactMatcher matches on normalized display name equality.
type exactMatcher struct{}

func (exactMatcher) name() string { return "exact" }

func (exactMatcher) match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord {
	for i := range pool {
		if NormalizeName(pool[i].DisplayName) == q.normalized {
			return &pool[i]
		}
	}
	return nil
}

// substringMatcher matches when a record's normalized name contains the
// query ("pat mahomes" inside "patrick mahomes" does not hit here, but
// "mahomes ii" stripped to "mahomes" inside "patrick mahomes" does).
type substringMatcher struct{}

func (substringMatcher) name() string { return "substring" }

func (substringMatcher) match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord {
	if q.normalized == "" {
		return nil
	}
	for i := range pool {
		if strings.Contains(NormalizeName(pool[i].DisplayName), q.normalized) {
			return &pool[i]
		}
	}
	return nil
}

// lastNameMatcher matches on the query's last token, and only when exactly
// one record in the pool matches. A shared surname is ambiguous and falls
// through to fuzzy matching instead.
type lastNameMatcher struct{}

func (lastNameMatcher) name() string { return "last_name" }

func (lastNameMatcher) match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord {
	parts := strings.Fields(q.normalized)
	if len(parts) < 2 {
		return nil
	}
	last := parts[len(parts)-1]

	var found *stats.PlayerStatRecord
	for i := range pool {
		if strings.Contains(NormalizeName(pool[i].DisplayName), last) {
			if found != nil {
				return nil // ambiguous
			}
			found = &pool[i]
		}
	}
	return found
}

// fuzzyTeamMatcher scores the raw query against every name in the
// team-scoped pool with a token-order-insensitive ratio and accepts the best
// candidate at or above the threshold.
type fuzzyTeamMatcher struct {
	threshold int
}

func (fuzzyTeamMatcher) name() string { return "fuzzy_team" }

func (m fuzzyTeamMatcher) match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord {
	return bestFuzzy(q.raw, pool, m.threshold)
}

// fuzzyAnyMatcher repeats the fuzzy search without the team scope. Roster
// team hints are sometimes stale; the player is located anywhere but the
// hint is left as written.
type fuzzyAnyMatcher struct {
	threshold int
}

func (fuzzyAnyMatcher) name() string { return "fuzzy_any" }

func (m fuzzyAnyMatcher) match(q query, pool, all []stats.PlayerStatRecord) *stats.PlayerStatRecord {
	if q.team == "" {
		return nil // no hint: the team-scoped pass already searched everyone
	}
	return bestFuzzy(q.raw, all, m.threshold)
}

func bestFuzzy(rawName string, candidates []stats.PlayerStatRecord, threshold int) *stats.PlayerStatRecord {
	var best *stats.PlayerStatRecord
	bestScore := 0
	for i := range candidates {
		if candidates[i].DisplayName == "" {
			continue
		}
		score := fuzzy.TokenSortRatio(rawName, candidates[i].DisplayName)
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}
	if bestScore >= threshold {
		return best
	}
	return nil
}
