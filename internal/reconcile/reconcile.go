// Package reconcile matches parsed episode records against a catalog's
// canonical episode lists.
package reconcile

import (
	"context"

	"github.com/showdeck/showdeck/internal/log"
	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/provider"
)

// Stats summarizes a reconciliation run.
type Stats struct {
	Total         int
	Exact         int
	Fuzzy         int
	Unmatched     int
	FailedSeasons []int
}

// Reconciler enriches episode records from a catalog. Season lists are
// fetched sequentially so provider pressure stays bounded.
type Reconciler struct {
	catalog provider.Catalog
}

// New creates a Reconciler backed by the given catalog.
func New(catalog provider.Catalog) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Reconcile matches eps against the catalog's season episode lists,
// mutating the records in place. It never fails: a season whose fetch
// errors is skipped and its records keep their parser-derived fields.
// The input slice order is preserved.
func (r *Reconciler) Reconcile(ctx context.Context, seriesID string, eps []*media.Episode) Stats {
	stats := Stats{Total: len(eps)}
	if r.catalog == nil || seriesID == "" || len(eps) == 0 {
		stats.Unmatched = len(eps)
		return stats
	}

	for _, season := range distinctSeasons(eps) {
		canonical, err := r.catalog.SeasonEpisodes(ctx, seriesID, season)
		log.LogSeasonFetch(seriesID, season, err)
		if err != nil || len(canonical) == 0 {
			stats.FailedSeasons = append(stats.FailedSeasons, season)
			continue
		}
		r.reconcileSeason(eps, season, canonical, &stats)
	}

	for _, ep := range eps {
		if !ep.Reconciled {
			stats.Unmatched++
			log.LogUnmatched(ep.Name)
		}
	}
	return stats
}

func (r *Reconciler) reconcileSeason(eps []*media.Episode, season int, canonical []provider.CatalogEpisode, stats *Stats) {
	byNumber := make(map[int]*provider.CatalogEpisode, len(canonical))
	for i := range canonical {
		ce := &canonical[i]
		if _, ok := byNumber[ce.EpisodeNumber]; !ok {
			byNumber[ce.EpisodeNumber] = ce
		}
	}

	// Pass 1: match on the parsed episode number.
	for _, ep := range eps {
		if ep.SeasonNumber != season || ep.Reconciled || !ep.EpisodeKnown {
			continue
		}
		if ce, ok := byNumber[ep.EpisodeNumber]; ok {
			adopt(ep, ce)
			stats.Exact++
			log.LogExactMatch(ep.Name, ce.Name)
		}
	}

	// Pass 2: title similarity, first canonical episode over the
	// threshold wins and supplies the episode number.
	for _, ep := range eps {
		if ep.SeasonNumber != season || ep.Reconciled {
			continue
		}
		for i := range canonical {
			ce := &canonical[i]
			if media.Similarity(ep.Title, ce.Name) > media.MatchThreshold {
				adopt(ep, ce)
				ep.EpisodeNumber = ce.EpisodeNumber
				ep.EpisodeKnown = true
				stats.Fuzzy++
				log.LogFuzzyMatch(ep.Name, ce.Name)
				break
			}
		}
	}
}

func adopt(ep *media.Episode, ce *provider.CatalogEpisode) {
	ep.Title = ce.Name
	ep.Overview = ce.Overview
	// StillImage doubles as the listing thumbnail; a catalog entry
	// without a still keeps it rather than blanking the artwork.
	if ce.StillImage != "" {
		ep.StillImage = ce.StillImage
	}
	ep.AirDate = ce.AirDate
	ep.Rating = ce.Rating
	ep.Reconciled = true
}

// distinctSeasons returns season numbers in first-appearance order.
func distinctSeasons(eps []*media.Episode) []int {
	seen := make(map[int]bool, 4)
	var seasons []int
	for _, ep := range eps {
		if !seen[ep.SeasonNumber] {
			seen[ep.SeasonNumber] = true
			seasons = append(seasons, ep.SeasonNumber)
		}
	}
	return seasons
}
