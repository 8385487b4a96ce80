package media

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// episodePatterns are tried in order; the first match wins. A compact
	// "E05" marker always beats a spelled out "Episode 7", which beats a
	// bare number anywhere in the name.
	episodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)E(\d+)`),
		regexp.MustCompile(`(?i)Episode\s*(\d+)`),
		regexp.MustCompile(`\b(\d+)\b`),
	}

	// seasonRe matches season markers like S2, s02. Seasons are never
	// inferred from bare digits; an unmarked file belongs to season 1.
	seasonRe = regexp.MustCompile(`(?i)S(\d+)`)

	// videoRe matches video file extensions used to include media files.
	videoRe = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|mov|wmv|flv|webm|mpeg|mpg|m4v|3gp|vob|ts|mts|m2ts)$`)
)

// Parsed is the structured result of parsing a single filename.
type Parsed struct {
	Season  int
	Episode int
	// EpisodeKnown is false when no pattern yielded an episode number.
	EpisodeKnown bool
	Title        string
}

// ParseFilename extracts season, episode, and a display title from a video
// filename. The display title falls back to "Episode N" when normalization
// leaves nothing, and to the extensionless filename when the episode number
// is unknown too.
func ParseFilename(name, showTitle string) Parsed {
	p := Parsed{Season: 1}

	if n, ok := firstIntFromRegexps(name, episodePatterns...); ok {
		p.Episode = n
		p.EpisodeKnown = true
	}
	if n, ok := firstIntFromRegexps(name, seasonRe); ok {
		p.Season = n
	}

	p.Title = Normalize(name, showTitle)
	if p.Title == "" {
		if p.EpisodeKnown {
			p.Title = fmt.Sprintf("Episode %d", p.Episode)
		} else {
			p.Title = strings.TrimSpace(extensionRe.ReplaceAllString(name, ""))
		}
	}
	return p
}

// IsVideo reports whether filename has a recognized video extension.
func IsVideo(filename string) bool {
	return videoRe.MatchString(filename)
}

func firstIntFromRegexps(input string, regexps ...*regexp.Regexp) (int, bool) {
	for _, re := range regexps {
		m := re.FindStringSubmatch(input)
		if len(m) >= 2 {
			for i := 1; i < len(m); i++ {
				if m[i] == "" {
					continue
				}
				if n, err := strconv.Atoi(m[i]); err == nil {
					return n, true
				}
			}
		}
	}
	return 0, false
}
