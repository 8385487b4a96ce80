// Package page assembles the detail-page state for one series folder:
// it resolves the series in the catalog, lists and parses the episode
// files, orders them, and reconciles them against the canonical
// episode lists.
package page

import (
	"context"
	"strings"

	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/log"
	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/probe"
	"github.com/showdeck/showdeck/internal/provider"
	"github.com/showdeck/showdeck/internal/reconcile"
	"github.com/showdeck/showdeck/internal/session"
)

// Params identifies the page to load.
type Params struct {
	FolderID  string
	Title     string
	MediaType string
	// CatalogID skips the search step when the caller already knows the
	// catalog's series id.
	CatalogID string
	// EpisodeID selects an initial episode; the first record otherwise.
	EpisodeID string
}

// DurationProber reports the playback length of a local file in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (int, error)
}

// Controller loads detail pages. Every dependency is optional; a
// missing or failing one degrades the page instead of failing it.
type Controller struct {
	catalog provider.Catalog
	lister  provider.Lister
	library *library.Library
	prober  DurationProber
}

// NewController creates a page controller.
func NewController(catalog provider.Catalog, lister provider.Lister, lib *library.Library) *Controller {
	if lib == nil {
		lib = &library.Library{}
	}
	return &Controller{
		catalog: catalog,
		lister:  lister,
		library: lib,
		prober:  probe.New(),
	}
}

// SetProber replaces the local duration prober.
func (c *Controller) SetProber(p DurationProber) {
	c.prober = p
}

// Load builds the page state. It never returns an error: provider
// failures leave the affected part of the page empty or unreconciled.
func (c *Controller) Load(ctx context.Context, params Params) session.State {
	series, resolved := c.resolveSeries(ctx, params)

	eps := c.buildRecords(ctx, params, series.Name)
	media.Order(eps)

	// Without resolved series metadata there is no canonical episode
	// list to reconcile against; records keep their parsed fields.
	var stats reconcile.Stats
	if resolved && series.ID != "" && c.catalog != nil {
		stats = reconcile.New(c.catalog).Reconcile(ctx, series.ID, eps)
	} else {
		stats = reconcile.Stats{Total: len(eps), Unmatched: len(eps)}
	}

	return session.State{
		Series:    series,
		Episodes:  eps,
		CurrentID: initialEpisodeID(eps, params.EpisodeID),
		Stats:     stats,
	}
}

// resolveSeries fetches series metadata by catalog id, falling back to
// a title search. The second return reports whether metadata actually
// resolved; on failure the page gets a bare header built from the
// params and must not reconcile.
func (c *Controller) resolveSeries(ctx context.Context, params Params) (*provider.Series, bool) {
	if c.catalog != nil {
		if params.CatalogID != "" {
			series, err := c.catalog.Series(ctx, params.CatalogID)
			log.LogSeriesFetch(params.CatalogID, params.Title, err)
			if err == nil {
				return series, true
			}
		} else if params.Title != "" {
			series, err := c.catalog.Search(ctx, params.Title)
			log.LogSeriesFetch(params.Title, params.Title, err)
			if err == nil {
				return series, true
			}
		}
	}
	return &provider.Series{ID: params.CatalogID, Name: params.Title}, false
}

func (c *Controller) buildRecords(ctx context.Context, params Params, showTitle string) []*media.Episode {
	if entry, ok := c.library.Find(params.Title); ok && len(entry.Episodes) > 0 {
		return entry.EpisodeRecords()
	}
	if c.lister == nil || params.FolderID == "" {
		return nil
	}

	files, err := c.lister.ListFiles(ctx, params.FolderID)
	log.LogListFiles(params.FolderID, len(files), err)
	if err != nil {
		return nil
	}

	var eps []*media.Episode
	for _, f := range files {
		if !isVideoFile(f) {
			continue
		}
		ep := media.FromFile(f.ID, f.Name, showTitle)
		ep.StillImage = f.Thumbnail
		eps = append(eps, ep)
	}
	return eps
}

// EpisodeDuration resolves the playback length of one record. Local
// records are probed by path; remote records ask the lister when it can
// serve durations. Returns 0 when no source can. The record is never
// mutated here; callers store the value on their own goroutine.
func (c *Controller) EpisodeDuration(ctx context.Context, ep *media.Episode) int {
	if ep == nil {
		return 0
	}
	if ep.Duration > 0 {
		return ep.Duration
	}

	var (
		seconds int
		err     error
	)
	switch {
	case ep.LocalPath != "" && c.prober != nil:
		seconds, err = c.prober.Duration(ctx, ep.LocalPath)
		log.LogProbe(ep.LocalPath, seconds, err)
	default:
		d, ok := c.lister.(provider.Durationer)
		if !ok || c.lister == nil {
			return 0
		}
		seconds, err = d.FileDuration(ctx, ep.ID)
		log.LogProbe(ep.ID, seconds, err)
	}
	if err != nil {
		return 0
	}
	return seconds
}

func isVideoFile(f provider.FileEntry) bool {
	return strings.HasPrefix(f.MimeType, "video/") || media.IsVideo(f.Name)
}

func initialEpisodeID(eps []*media.Episode, requested string) string {
	if requested != "" {
		for _, ep := range eps {
			if ep.ID == requested {
				return requested
			}
		}
	}
	if len(eps) > 0 {
		return eps[0].ID
	}
	return ""
}
