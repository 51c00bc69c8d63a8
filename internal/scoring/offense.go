package scoring

import (
	"github.com/opflweb/scoring/internal/derive"
	"github.com/opflweb/scoring/internal/stats"
)

// Yardage table constants. QB passing uses its own table; rushing and
// receiving share thresholds that vary by position.
const (
	passingThreshold = 200
	passingStep      = 50

	skillThreshold = 75 // QB/RB/WR individual rushing or receiving
	teThreshold    = 50 // TE individual
	yardStep       = 25

	rbwrCombinedThreshold = 100
	teCombinedThreshold   = 75
)

// applyTouchdowns adds 6 per touchdown and 2 per two-point conversion.
func applyTouchdowns(rec *stats.PlayerStatRecord, b *Breakdown) float64 {
	points := 0.0
	if tds := rec.TotalTDs(); tds > 0 {
		pts := float64(6 * tds)
		b.add("touchdowns", pts)
		points += pts
	}
	if conv := rec.TwoPointConversions(); conv > 0 {
		pts := float64(2 * conv)
		b.add("two_point_conversions", pts)
		points += pts
	}
	return points
}

// applyTurnovers bills interceptions and fumbles lost at 1 point each,
// except turnovers returned for touchdowns which are billed at 3 points in
// place of (not on top of) the regular point.
func applyTurnovers(rec *stats.PlayerStatRecord, tds derive.TurnoverTDs, b *Breakdown) float64 {
	points := 0.0

	regularInts := rec.PassingInterceptions - tds.PickSixes
	if regularInts < 0 {
		regularInts = 0
	}
	if regularInts > 0 {
		pts := float64(-regularInts)
		b.add("interceptions", pts)
		points += pts
	}
	if tds.PickSixes > 0 {
		pts := float64(-3 * tds.PickSixes)
		b.add("pick_sixes", pts)
		points += pts
	}

	regularFumbles := rec.FumblesLost() - tds.FumbleSixes
	if regularFumbles < 0 {
		regularFumbles = 0
	}
	if regularFumbles > 0 {
		pts := float64(-regularFumbles)
		b.add("fumbles_lost", pts)
		points += pts
	}
	if tds.FumbleSixes > 0 {
		pts := float64(-3 * tds.FumbleSixes)
		b.add("fumble_sixes", pts)
		points += pts
	}

	return points
}

// applyPassingYards adds the passing-yardage bonus (200 yards = 2, +1 per
// 50 beyond). Applies to every offensive position; non-QBs reach it on
// trick plays.
func applyPassingYards(rec *stats.PlayerStatRecord, b *Breakdown) float64 {
	pts := yardBonus(rec.PassingYards, passingThreshold, passingStep)
	if pts > 0 {
		b.add("passing_yards", float64(pts))
	}
	return float64(pts)
}

// applyBestYardage adds rushing/receiving bonuses using whichever is larger:
// the sum of the two individual-category bonuses, or the single combined
// bonus. Ties keep the individual entries; combined replaces them only when
// strictly greater.
func applyBestYardage(rec *stats.PlayerStatRecord, individualThreshold, combinedThreshold int, b *Breakdown) float64 {
	rushing := yardBonus(rec.RushingYards, individualThreshold, yardStep)
	receiving := yardBonus(rec.ReceivingYards, individualThreshold, yardStep)
	combined := yardBonus(rec.RushingYards+rec.ReceivingYards, combinedThreshold, yardStep)

	if combined > rushing+receiving {
		b.add("combined_rush_rec_yards", float64(combined))
		return float64(combined)
	}

	points := 0.0
	if rushing > 0 {
		b.add("rushing_yards", float64(rushing))
		points += float64(rushing)
	}
	if receiving > 0 {
		b.add("receiving_yards", float64(receiving))
		points += float64(receiving)
	}
	return points
}

// ScoreQB scores a quarterback: passing table plus individual rushing and
// receiving at the 75-yard table (no combined alternative), touchdowns,
// conversions and turnover penalties.
func ScoreQB(rec *stats.PlayerStatRecord, tds derive.TurnoverTDs) (float64, Breakdown) {
	var b Breakdown
	points := 0.0

	points += applyPassingYards(rec, &b)

	if pts := yardBonus(rec.RushingYards, skillThreshold, yardStep); pts > 0 {
		b.add("rushing_yards", float64(pts))
		points += float64(pts)
	}
	if pts := yardBonus(rec.ReceivingYards, skillThreshold, yardStep); pts > 0 {
		b.add("receiving_yards", float64(pts))
		points += float64(pts)
	}

	points += applyTouchdowns(rec, &b)
	points += applyTurnovers(rec, tds, &b)

	return clampFloor(points, &b), b
}

// ScoreRBWR scores a running back or wide receiver: best of individual
// (75-yard) or combined (100-yard) yardage bonuses, plus the shared rules.
func ScoreRBWR(rec *stats.PlayerStatRecord, tds derive.TurnoverTDs) (float64, Breakdown) {
	var b Breakdown
	points := 0.0

	points += applyBestYardage(rec, skillThreshold, rbwrCombinedThreshold, &b)
	points += applyPassingYards(rec, &b)
	points += applyTouchdowns(rec, &b)
	points += applyTurnovers(rec, tds, &b)

	return clampFloor(points, &b), b
}

// ScoreTE scores a tight end: best of individual (50-yard) or combined
// (75-yard) yardage bonuses, plus the shared rules.
func ScoreTE(rec *stats.PlayerStatRecord, tds derive.TurnoverTDs) (float64, Breakdown) {
	var b Breakdown
	points := 0.0

	points += applyBestYardage(rec, teThreshold, teCombinedThreshold, &b)
	points += applyPassingYards(rec, &b)
	points += applyTouchdowns(rec, &b)
	points += applyTurnovers(rec, tds, &b)

	return clampFloor(points, &b), b
}
