package scoring

import "github.com/opflweb/scoring/internal/stats"

// ScoreKicker scores a kicker: PATs at +1/-1, field goals by distance band
// (1-29 → 1, 30-39 → 2, 40-49 → 3, 50+ → 4), misses and blocks at -2.
func ScoreKicker(rec *stats.PlayerStatRecord) (float64, Breakdown) {
	var b Breakdown
	points := 0.0

	if rec.PATMade > 0 {
		b.add("pat_made", float64(rec.PATMade))
	}
	points += float64(rec.PATMade)

	if missed := rec.PATMissed + rec.PATBlocked; missed > 0 {
		b.add("pat_missed", float64(-missed))
		points -= float64(missed)
	}

	if short := rec.FGMade0to19 + rec.FGMade20to29; short > 0 {
		b.add("fg_1_29", float64(short))
		points += float64(short)
	}
	if rec.FGMade30to39 > 0 {
		b.add("fg_30_39", float64(2*rec.FGMade30to39))
		points += float64(2 * rec.FGMade30to39)
	}
	if rec.FGMade40to49 > 0 {
		b.add("fg_40_49", float64(3*rec.FGMade40to49))
		points += float64(3 * rec.FGMade40to49)
	}
	if long := rec.FGMade50to59 + rec.FGMade60Plus; long > 0 {
		b.add("fg_50+", float64(4*long))
		points += float64(4 * long)
	}

	if missed := rec.FGMissed + rec.FGBlocked; missed > 0 {
		b.add("fg_missed", float64(-2*missed))
		points -= float64(2 * missed)
	}

	return clampFloor(points, &b), b
}
