// Package scoring holds the six pure position scorers for OPFL rules. Each
// scorer maps a stat record (plus derived values) to a point total and an
// itemized breakdown, and clamps the total at zero.
package scoring

// FloorMarker is the breakdown label recorded when a negative subtotal was
// clamped to zero. Its value is always 0; callers wanting the true signed
// subtotal must sum the other entries.
const FloorMarker = "floor_applied"

// Entry is one labeled contribution to a score. Values are signed;
// penalties are negative.
type Entry struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

// Breakdown is an ordered list of scoring contributions. Insertion order is
// meaningful for display and audit.
type Breakdown []Entry

func (b *Breakdown) add(label string, points float64) {
	*b = append(*b, Entry{Label: label, Points: points})
}

// Sum returns the signed sum of all entries, excluding the floor marker.
func (b Breakdown) Sum() float64 {
	total := 0.0
	for _, e := range b {
		if e.Label == FloorMarker {
			continue
		}
		total += e.Points
	}
	return total
}

// Get returns the value for a label and whether it is present.
func (b Breakdown) Get(label string) (float64, bool) {
	for _, e := range b {
		if e.Label == label {
			return e.Points, true
		}
	}
	return 0, false
}

// Floored reports whether the zero floor was applied.
func (b Breakdown) Floored() bool {
	_, ok := b.Get(FloorMarker)
	return ok
}

// clampFloor applies the league's no-negative-totals rule: a negative
// subtotal becomes 0 and the breakdown records the marker instead of the
// true sum.
func clampFloor(points float64, b *Breakdown) float64 {
	if points < 0 {
		b.add(FloorMarker, 0)
		return 0
	}
	return points
}

// yardBonus evaluates a threshold table: below threshold scores 0, at
// threshold scores 2, and each full step beyond adds 1 (floor division).
func yardBonus(yards, threshold, step int) int {
	if yards < threshold {
		return 0
	}
	return 2 + (yards-threshold)/step
}
