package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/showdeck/showdeck/internal/media"
)

// formatDuration renders whole seconds as H:MM:SS, or MM:SS under an
// hour. Zero means the duration has not been probed yet.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// starRating converts a 0-10 catalog rating to a five star strip.
func starRating(rating float32, filled, empty string) string {
	stars := int(math.Round(float64(rating) / 2))
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat(filled, stars) + strings.Repeat(empty, 5-stars)
}

// episodeTag renders the season/episode marker shown in the list. An
// unknown episode number falls back to the record's ordinal position.
func episodeTag(ep *media.Episode, position int) string {
	if ep.EpisodeKnown {
		return fmt.Sprintf("S%d:E%d", ep.SeasonNumber, ep.EpisodeNumber)
	}
	return fmt.Sprintf("S%d:#%d", ep.SeasonNumber, position)
}
