package media

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator gives locale-aware lexical name comparison for records
// with no usable episode number. Digit runs compare as text, so
// "part 10" sorts before "part 2".
var nameCollator = collate.New(language.English)

// Order sorts episodes in place: season ascending, then episode number
// ascending where both are known, records with a known episode number before
// those without, and collated filename order as the final tiebreak. The sort
// is stable, so duplicate (season, episode) pairs keep their input order.
func Order(eps []*Episode) {
	sort.SliceStable(eps, func(i, j int) bool {
		a, b := eps[i], eps[j]
		if a.SeasonNumber != b.SeasonNumber {
			return a.SeasonNumber < b.SeasonNumber
		}
		if a.EpisodeKnown && b.EpisodeKnown {
			return a.EpisodeNumber < b.EpisodeNumber
		}
		if a.EpisodeKnown != b.EpisodeKnown {
			return a.EpisodeKnown
		}
		return nameCollator.CompareString(a.Name, b.Name) < 0
	})
}
