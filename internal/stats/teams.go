package stats

import "strings"

// teamAliases maps roster-sheet team codes to the codes the nflverse feeds
// use. Roster sheets are hand-maintained and drift on a few franchises.
var teamAliases = map[string]string{
	"LAR": "LA",  // Los Angeles Rams
	"JAC": "JAX", // Jacksonville Jaguars
	"ARZ": "ARI", // Arizona Cardinals
}

// defenseNames maps the city/region names roster sheets use for defenses to
// feed team codes.
var defenseNames = map[string]string{
	"Arizona":              "ARI",
	"Atlanta":              "ATL",
	"Baltimore":            "BAL",
	"Buffalo":              "BUF",
	"Carolina":             "CAR",
	"Chicago":              "CHI",
	"Cincinnati":           "CIN",
	"Cleveland":            "CLE",
	"Dallas":               "DAL",
	"Denver":               "DEN",
	"Detroit":              "DET",
	"Green Bay":            "GB",
	"Houston":              "HOU",
	"Indianapolis":         "IND",
	"Jacksonville":         "JAX",
	"Kansas City":          "KC",
	"Las Vegas":            "LV",
	"LA Chargers":          "LAC",
	"LA Rams":              "LA",
	"Los Angeles Chargers": "LAC",
	"Los Angeles Rams":     "LA",
	"Miami":                "MIA",
	"Minnesota":            "MIN",
	"New England":          "NE",
	"New Orleans":          "NO",
	"NY Giants":            "NYG",
	"NY Jets":              "NYJ",
	"New York Giants":      "NYG",
	"New York Jets":        "NYJ",
	"Philadelphia":         "PHI",
	"Pittsburgh":           "PIT",
	"San Francisco":        "SF",
	"Seattle":              "SEA",
	"Tampa Bay":            "TB",
	"Tennessee":            "TEN",
	"Washington":           "WAS",
}

// NormalizeTeam maps a roster team code onto the feed's canonical code.
// Unknown codes pass through uppercased so lookups fail loudly downstream
// (player simply won't be found on that team) rather than panicking here.
func NormalizeTeam(team string) string {
	if team == "" {
		return ""
	}
	up := strings.ToUpper(strings.TrimSpace(team))
	if canonical, ok := teamAliases[up]; ok {
		return canonical
	}
	return up
}

// DefenseTeamCode resolves a defense roster label ("Kansas City",
// "NY Giants", or already a code like "KC") to the feed's team code.
func DefenseTeamCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if code, ok := defenseNames[trimmed]; ok {
		return code
	}
	return NormalizeTeam(trimmed)
}
