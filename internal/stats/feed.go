package stats

import "context"

// Feed is the upstream stats source. Each loader returns a full season table;
// the Store filters to its week. Implementations: nflverse.Client (HTTP),
// cache.Feed (Redis read-through), StaticFeed (in-memory fixtures).
type Feed interface {
	PlayerStats(ctx context.Context, season int) ([]PlayerStatRecord, error)
	TeamStats(ctx context.Context, season int) ([]TeamStatRecord, error)
	Schedules(ctx context.Context, season int) ([]GameRecord, error)
	PlayByPlay(ctx context.Context, season int) ([]PlayByPlayEvent, error)
	Players(ctx context.Context) ([]DirectoryPlayer, error)
}

// StaticFeed serves fixed tables from memory. Used by tests and by offline
// runs against pre-downloaded snapshots.
type StaticFeed struct {
	PlayerRows    []PlayerStatRecord
	TeamRows      []TeamStatRecord
	ScheduleRows  []GameRecord
	PlayRows      []PlayByPlayEvent
	DirectoryRows []DirectoryPlayer

	// Err, when set, is returned by every loader. Lets tests exercise the
	// hard-failure path.
	Err error
}

// PlayerStats returns the fixed player table.
func (f *StaticFeed) PlayerStats(ctx context.Context, season int) ([]PlayerStatRecord, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.PlayerRows, nil
}

// TeamStats returns the fixed team table.
func (f *StaticFeed) TeamStats(ctx context.Context, season int) ([]TeamStatRecord, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.TeamRows, nil
}

// Schedules returns the fixed schedule table.
func (f *StaticFeed) Schedules(ctx context.Context, season int) ([]GameRecord, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ScheduleRows, nil
}

// PlayByPlay returns the fixed play-by-play table.
func (f *StaticFeed) PlayByPlay(ctx context.Context, season int) ([]PlayByPlayEvent, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.PlayRows, nil
}

// Players returns the fixed player directory.
func (f *StaticFeed) Players(ctx context.Context) ([]DirectoryPlayer, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.DirectoryRows, nil
}
