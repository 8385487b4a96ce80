package media

import (
	"regexp"
	"strings"
)

// Title normalization regular expressions. Applied in a fixed order so the
// result is stable: once separators have been flattened to spaces a second
// pass finds nothing left to strip.
var (
	// extensionRe matches a trailing dot extension of 2-4 alphanumerics.
	extensionRe = regexp.MustCompile(`\.[A-Za-z0-9]{2,4}$`)

	// seasonEpisodeMarkerRe matches combined markers like S01E02, s1e2.
	// A bare "E05" is left alone; stripping it would eat titles that start
	// with a capital E followed by digits.
	seasonEpisodeMarkerRe = regexp.MustCompile(`(?i)\bS\d+E\d+\b`)

	// episodeWordMarkerRe matches spelled out "Episode 3" markers.
	episodeWordMarkerRe = regexp.MustCompile(`(?i)\bEpisode\s+\d+\b`)

	// noiseTagsRe removes resolution/codec/source/release tags so only the
	// human title survives.
	noiseTagsRe = regexp.MustCompile(`(?i)\b(?:480p|720p|1080p|2160p|4K|UHD|HDR|SDR|10bit|8bit|x26[45]|H\.?26[45]|HEVC|AVC|XviD|DivX|AAC|AC3|EAC3|DD5\.?1|DTS|FLAC|MP3|WEB-?DL|WEB-?Rip|BluRay|BDRip|BRRip|DVDRip|HDRip|HDTV|CAM|TS|PROPER|REPACK|iNTERNAL|LiMiTED|EXTENDED|UNRATED|REMASTERED|COMPLETE|MULTI|DUAL|DUBBED|SUBBED|VOSTFR|FRENCH|GERMAN|ITALIAN|SPANISH|ENGLISH|KORSUB|YIFY|RARBG|EZTV|ETTV)\b`)

	// bracketSpanRe and parenSpanRe drop whole bracketed spans, which carry
	// release-group and checksum noise rather than title text.
	bracketSpanRe = regexp.MustCompile(`\[[^\]]*\]`)
	parenSpanRe   = regexp.MustCompile(`\([^)]*\)`)

	// separatorRe flattens dot/underscore/dash runs to single spaces.
	separatorRe = regexp.MustCompile(`[.\-_]+`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize derives a display title from a raw filename. showTitle, when
// non-empty, is removed as a literal case-insensitive occurrence so
// "Breaking Bad - Ozymandias.mkv" reduces to "Ozymandias". Idempotent:
// normalizing an already normalized title returns it unchanged.
func Normalize(raw, showTitle string) string {
	s := extensionRe.ReplaceAllString(raw, "")
	s = seasonEpisodeMarkerRe.ReplaceAllString(s, "")
	s = episodeWordMarkerRe.ReplaceAllString(s, "")
	if showTitle != "" {
		showRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(showTitle))
		if err == nil {
			s = showRe.ReplaceAllString(s, "")
		}
	}
	s = noiseTagsRe.ReplaceAllString(s, "")
	s = bracketSpanRe.ReplaceAllString(s, "")
	s = parenSpanRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
