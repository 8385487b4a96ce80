package media

import (
	"regexp"
	"strings"
)

// MatchThreshold is the minimum similarity a fuzzy catalog match must
// strictly exceed. A score of exactly 0.5 does not match.
const MatchThreshold = 0.5

// nonWordRe strips punctuation before comparison; letters, digits,
// underscores and spaces survive.
var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// Similarity scores how alike two episode titles are, in [0, 1]. Titles are
// lowercased and stripped of punctuation first. Identical cleaned titles
// score 1.0, substring containment scores 0.8, and anything else scores by
// word overlap: the number of words of the first title present in the
// second, divided by the longer word count. Words are counted with
// repetition, matching how the scorer has always behaved.
func Similarity(a, b string) float64 {
	ca := cleanComparable(a)
	cb := cleanComparable(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}
	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return 0.8
	}

	wa := strings.Fields(ca)
	wb := strings.Fields(cb)
	shared := 0
	for _, w := range wa {
		if containsWord(wb, w) {
			shared++
		}
	}
	longest := len(wa)
	if len(wb) > longest {
		longest = len(wb)
	}
	return float64(shared) / float64(longest)
}

func cleanComparable(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func containsWord(words []string, w string) bool {
	for _, candidate := range words {
		if candidate == w {
			return true
		}
	}
	return false
}
