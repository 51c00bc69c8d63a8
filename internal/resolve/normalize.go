package resolve

import (
	"regexp"
	"strings"
)

// suffixRE strips trailing generational suffixes ("Patrick Mahomes II",
// "Odell Beckham Jr.") before matching.
var suffixRE = regexp.MustCompile(`(?i)\s+(Sr\.?|Jr\.?|II|III|IV|V)$`)

// NormalizeName prepares a player name for matching: drop generational
// suffixes, drop periods ("A.J. Brown" vs "AJ Brown"), collapse whitespace,
// lowercase.
func NormalizeName(name string) string {
	name = suffixRE.ReplaceAllString(strings.TrimSpace(name), "")
	name = strings.ReplaceAll(name, ".", "")
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(name)
}
