// ratio.go implements the partial-string similarity score.
//
// Design: The shorter string is slid across the longer one and compared to
// every same-length window by Levenshtein distance. Work is
// O(len(long) * len(short)^2) per pair, which suits short queries against
// entity text of a few hundred characters.

package search

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// PartialRatio scores how well the shorter of a and b matches its best
// aligned window in the longer, from 0 to 100. Lengths are in runes.
// A verbatim substring scores 100; an empty input scores 0.
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	s, l := []rune(a), []rune(b)
	if len(s) > len(l) {
		s, l = l, s
	}
	short, long := string(s), string(l)
	if strings.Contains(long, short) {
		return 100
	}

	m := len(s)
	best := 0
	for i := 0; i+m <= len(l); i++ {
		d := levenshtein.ComputeDistance(short, string(l[i:i+m]))
		score := int(math.Round((1 - float64(d)/float64(m)) * 100))
		best = max(best, score)
	}
	return best
}
