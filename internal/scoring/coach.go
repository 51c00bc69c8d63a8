package scoring

import "github.com/opflweb/scoring/internal/stats"

// Head-coach win values by venue and spread status.
const (
	homeFavoriteWin = 4
	roadFavoriteWin = 5
	homeUnderdogWin = 6
	roadUnderdogWin = 7
)

// ScoreHeadCoach scores a head coach: a win earns points keyed on home/away
// and favorite/underdog status; losses and ties earn nothing. The game
// context's spread is already signed to the coach's team (positive = that
// team favored); a missing or zero spread defaults to favorite.
func ScoreHeadCoach(gc *stats.GameContext) (float64, Breakdown) {
	var b Breakdown

	if !gc.Won() {
		b.add("loss", 0)
		return 0, b
	}

	underdog := gc.Spread != nil && *gc.Spread < 0

	switch {
	case gc.IsHome && underdog:
		b.add("home_underdog_win", homeUnderdogWin)
		return homeUnderdogWin, b
	case gc.IsHome:
		b.add("home_favorite_win", homeFavoriteWin)
		return homeFavoriteWin, b
	case underdog:
		b.add("road_underdog_win", roadUnderdogWin)
		return roadUnderdogWin, b
	default:
		b.add("road_favorite_win", roadFavoriteWin)
		return roadFavoriteWin, b
	}
}
