package scoring

// DefenseInput carries the reconciled counts a defense is scored on. The
// engine assembles it from the team's stat line, the opponent's stat line,
// the game result and the play-by-play derivations.
type DefenseInput struct {
	PointsAllowed    int
	Interceptions    int
	FumbleRecoveries int // reconciled (max of own recoveries, opponent fumbles lost)
	Sacks            int // reconciled integer count
	Safeties         int
	BlockedKicks     int // blocked FGs + blocked punts
	BlockedPATs      int
	DefensiveTDs     int // turnover + blocked-kick TDs only, no punt/kick returns
}

// pointsAllowedBand maps the opponent's final score to band points:
// shutout 8, 1-9 → 6, 10-13 → 4, 14-17 → 2, 18-27 → 0, 28-31 → -2,
// 32-35 → -4, 36+ → -6.
func pointsAllowedBand(pa int) float64 {
	switch {
	case pa == 0:
		return 8
	case pa <= 9:
		return 6
	case pa <= 13:
		return 4
	case pa <= 17:
		return 2
	case pa <= 27:
		return 0
	case pa <= 31:
		return -2
	case pa <= 35:
		return -4
	default:
		return -6
	}
}

// ScoreDefense scores a team defense from reconciled inputs.
func ScoreDefense(in DefenseInput) (float64, Breakdown) {
	var b Breakdown

	pa := pointsAllowedBand(in.PointsAllowed)
	b.add("points_allowed", pa)
	points := pa

	if in.Interceptions > 0 {
		b.add("interceptions", float64(2*in.Interceptions))
	}
	points += float64(2 * in.Interceptions)

	if in.FumbleRecoveries > 0 {
		b.add("fumble_recoveries", float64(2*in.FumbleRecoveries))
	}
	points += float64(2 * in.FumbleRecoveries)

	if in.Sacks > 0 {
		b.add("sacks", float64(in.Sacks))
	}
	points += float64(in.Sacks)

	if in.Safeties > 0 {
		b.add("safeties", float64(2*in.Safeties))
	}
	points += float64(2 * in.Safeties)

	if in.BlockedKicks > 0 {
		b.add("blocked_kicks", float64(2*in.BlockedKicks))
	}
	points += float64(2 * in.BlockedKicks)

	if in.BlockedPATs > 0 {
		b.add("blocked_pats", float64(in.BlockedPATs))
	}
	points += float64(in.BlockedPATs)

	if in.DefensiveTDs > 0 {
		b.add("defensive_tds", float64(4*in.DefensiveTDs))
		points += float64(4 * in.DefensiveTDs)
	}

	return clampFloor(points, &b), b
}
