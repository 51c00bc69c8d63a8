package stats

// PlayerStatRecord is one player's aggregated stat line for a single week,
// as published by the nflverse weekly player stats feed.
type PlayerStatRecord struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"player_display_name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Season      int    `json:"season"`
	Week        int    `json:"week"`

	PassingYards         int `json:"passing_yards"`
	PassingTDs           int `json:"passing_tds"`
	PassingInterceptions int `json:"passing_interceptions"`
	Passing2PtConv       int `json:"passing_2pt_conversions"`

	RushingYards   int `json:"rushing_yards"`
	RushingTDs     int `json:"rushing_tds"`
	Rushing2PtConv int `json:"rushing_2pt_conversions"`

	ReceivingYards   int `json:"receiving_yards"`
	ReceivingTDs     int `json:"receiving_tds"`
	Receiving2PtConv int `json:"receiving_2pt_conversions"`

	SackFumblesLost      int `json:"sack_fumbles_lost"`
	RushingFumblesLost   int `json:"rushing_fumbles_lost"`
	ReceivingFumblesLost int `json:"receiving_fumbles_lost"`

	PATMade    int `json:"pat_made"`
	PATMissed  int `json:"pat_missed"`
	PATBlocked int `json:"pat_blocked"`

	FGMade0to19  int `json:"fg_made_0_19"`
	FGMade20to29 int `json:"fg_made_20_29"`
	FGMade30to39 int `json:"fg_made_30_39"`
	FGMade40to49 int `json:"fg_made_40_49"`
	FGMade50to59 int `json:"fg_made_50_59"`
	FGMade60Plus int `json:"fg_made_60_"`
	FGMissed     int `json:"fg_missed"`
	FGBlocked    int `json:"fg_blocked"`
}

// FumblesLost sums the three fumble-lost categories the feed tracks.
func (p *PlayerStatRecord) FumblesLost() int {
	return p.SackFumblesLost + p.RushingFumblesLost + p.ReceivingFumblesLost
}

// TwoPointConversions sums two-point conversions of any type.
func (p *PlayerStatRecord) TwoPointConversions() int {
	return p.Passing2PtConv + p.Rushing2PtConv + p.Receiving2PtConv
}

// TotalTDs sums passing, rushing and receiving touchdowns.
func (p *PlayerStatRecord) TotalTDs() int {
	return p.PassingTDs + p.RushingTDs + p.ReceivingTDs
}

// TeamStatRecord is one team's aggregated stat line for a single week. It
// carries both the defensive counts used to score the team's own defense and
// the offense/kicking counts read from the opposing side (fumbles lost,
// blocked kicks against).
type TeamStatRecord struct {
	Team   string `json:"team"`
	Season int    `json:"season"`
	Week   int    `json:"week"`

	DefInterceptions  int     `json:"def_interceptions"`
	DefSacks          float64 `json:"def_sacks"`
	DefSafeties       int     `json:"def_safeties"`
	DefTDs            int     `json:"def_tds"`
	FumbleRecoveryOpp int     `json:"fumble_recovery_opp"`
	FumbleRecoveryTDs int     `json:"fumble_recovery_tds"`

	SackFumblesLost      int `json:"sack_fumbles_lost"`
	RushingFumblesLost   int `json:"rushing_fumbles_lost"`
	ReceivingFumblesLost int `json:"receiving_fumbles_lost"`

	PATBlocked int `json:"pat_blocked"`
	FGBlocked  int `json:"fg_blocked"`
}

// FumblesLost sums the three fumble-lost categories for the team's offense.
func (t *TeamStatRecord) FumblesLost() int {
	return t.SackFumblesLost + t.RushingFumblesLost + t.ReceivingFumblesLost
}

// GameRecord is one scheduled matchup. Scores are nil until the game has
// been played. SpreadLine is the betting line from the home team's
// perspective: positive means the home team is favored.
type GameRecord struct {
	GameID     string   `json:"game_id"`
	Season     int      `json:"season"`
	Week       int      `json:"week"`
	HomeTeam   string   `json:"home_team"`
	AwayTeam   string   `json:"away_team"`
	HomeScore  *int     `json:"home_score,omitempty"`
	AwayScore  *int     `json:"away_score,omitempty"`
	SpreadLine *float64 `json:"spread_line,omitempty"`
	HomeCoach  string   `json:"home_coach"`
	AwayCoach  string   `json:"away_coach"`
}

// Played reports whether the game has a final score.
func (g *GameRecord) Played() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// PlayByPlayEvent is one play from the nflverse play-by-play feed, reduced
// to the flags and actor ids the scoring engine derives counts from.
type PlayByPlayEvent struct {
	Season  int    `json:"season"`
	Week    int    `json:"week"`
	PosTeam string `json:"posteam"`
	DefTeam string `json:"defteam"`
	TDTeam  string `json:"td_team"`

	Interception     bool `json:"interception"`
	FumbleLost       bool `json:"fumble_lost"`
	ReturnTouchdown  bool `json:"return_touchdown"`
	Sack             bool `json:"sack"`
	PuntBlocked      bool `json:"punt_blocked"`
	FieldGoalAttempt bool `json:"field_goal_attempt"`
	Touchdown        bool `json:"touchdown"`

	PasserPlayerID  string `json:"passer_player_id"`
	FumbledPlayerID string `json:"fumbled_1_player_id"`
}

// DirectoryPlayer is one row of the season-independent player directory.
type DirectoryPlayer struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Position    string `json:"position"`
	Team        string `json:"team"`
}

// GameContext is a team's view of its game for a week: scores, opponent,
// coach and the spread re-signed to that team's perspective (positive means
// this team is favored).
type GameContext struct {
	Team          string
	Opponent      string
	TeamScore     int
	OpponentScore int
	PointsAllowed int
	Coach         string
	IsHome        bool
	Spread        *float64
}

// Won reports whether the team won its game outright. Ties are not wins.
func (gc *GameContext) Won() bool {
	return gc.TeamScore > gc.OpponentScore
}
