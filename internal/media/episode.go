// Package media holds the episode data model and the pure functions that
// turn raw video filenames into ordered, comparable episode records:
// title normalization, season/episode parsing, ordering, and the title
// similarity score used for fuzzy catalog matching.
package media

import "fmt"

// Episode is one playable entry on a detail page. Parser-derived fields are
// filled at construction; catalog fields (Overview, StillImage, AirDate,
// Rating) are filled by reconciliation when a canonical match is found.
type Episode struct {
	// ID is the listing provider's file id, or "local-<n>" for declared
	// local content.
	ID   string
	Name string // original filename, never rewritten
	// Title is the display title: normalized filename, reconciled catalog
	// name once matched.
	Title string

	SeasonNumber  int // 1-based; defaults to 1 when the filename names none
	EpisodeNumber int
	// EpisodeKnown distinguishes a parsed episode number from an absent one.
	// Ordering and exact matching only trust EpisodeNumber when it is set.
	EpisodeKnown bool

	Overview   string
	StillImage string
	AirDate    string
	Rating     float32
	// Duration in whole seconds, 0 when not yet probed.
	Duration int

	Reconciled bool
	// LocalPath is set for declared local content and enables duration
	// probing; remote entries leave it empty.
	LocalPath string
}

// LocalDecl is a declared local episode, as read from a library file.
type LocalDecl struct {
	Name      string
	Title     string
	Season    int
	Episode   int
	LocalPath string
}

// FromFile builds an episode record from a listed remote file.
func FromFile(id, filename, showTitle string) *Episode {
	p := ParseFilename(filename, showTitle)
	return &Episode{
		ID:            id,
		Name:          filename,
		Title:         p.Title,
		SeasonNumber:  p.Season,
		EpisodeNumber: p.Episode,
		EpisodeKnown:  p.EpisodeKnown,
	}
}

// FromLocalDecl builds an episode record from a local declaration. The
// declaration wins over the parser where it is explicit; the episode number
// defaults to the declaration's position when neither names one.
func FromLocalDecl(d LocalDecl, index int) *Episode {
	p := ParseFilename(d.Name, "")
	e := &Episode{
		ID:            fmt.Sprintf("local-%d", index+1),
		Name:          d.Name,
		Title:         p.Title,
		SeasonNumber:  p.Season,
		EpisodeNumber: p.Episode,
		EpisodeKnown:  p.EpisodeKnown,
		LocalPath:     d.LocalPath,
	}
	if d.Title != "" {
		e.Title = d.Title
	}
	if d.Season > 0 {
		e.SeasonNumber = d.Season
	}
	if d.Episode > 0 {
		e.EpisodeNumber = d.Episode
		e.EpisodeKnown = true
	}
	if !e.EpisodeKnown {
		e.EpisodeNumber = index + 1
		e.EpisodeKnown = true
	}
	return e
}
