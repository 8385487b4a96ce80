// Package tvdb implements a catalog on TheTVDB v4 API via the dashotv
// client. TVDB has no per-episode community score, so reconciled ratings
// stay at the series level.
package tvdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tvdbapi "github.com/dashotv/tvdb"
	"github.com/dashotv/tvdb/openapi/models/operations"

	"github.com/showdeck/showdeck/internal/provider"
)

const (
	providerName = "tvdb"

	artworkBaseURL = "https://artworks.thetvdb.com"
)

// TVDBClient captures the dashotv client methods this catalog calls.
type TVDBClient interface {
	GetSearchResults(request operations.GetSearchResultsRequest) (*tvdbapi.GetSearchResultsResponse, error)
	GetSeriesExtended(id float64, meta *operations.GetSeriesExtendedQueryParamMeta, short *bool) (*tvdbapi.GetSeriesExtendedResponse, error)
	GetSeriesEpisodes(request operations.GetSeriesEpisodesRequest) (*tvdbapi.GetSeriesEpisodesResponse, error)
}

// Catalog implements provider.Catalog against TVDB.
type Catalog struct {
	client TVDBClient
}

// New logs in with the given API key and returns a configured catalog.
func New(apiKey string) (*Catalog, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "tvdb api key is required",
		}
	}

	client, err := tvdbapi.Login(apiKey)
	if err != nil {
		return nil, mapError(err)
	}
	return &Catalog{client: client}, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return providerName
}

// Series fetches series-level metadata by TVDB id.
func (c *Catalog) Series(ctx context.Context, id string) (*provider.Series, error) {
	seriesID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  fmt.Sprintf("invalid tvdb series id %q", id),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fetchSeries(seriesID)
}

// Search resolves a series by title; the first series-typed result wins.
func (c *Catalog) Search(ctx context.Context, title string) (*provider.Series, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "search requires a title",
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	typeSeries := "series"
	resp, err := c.client.GetSearchResults(operations.GetSearchResultsRequest{
		Query: &title,
		Type:  &typeSeries,
	})
	if err != nil {
		return nil, mapError(err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, notFound("no results found for show: %s", title)
	}

	for _, candidate := range resp.Data {
		if !strings.EqualFold(pointerToString(candidate.Type), "series") {
			continue
		}
		id := parseInt64(pointerToString(candidate.TvdbID))
		if id == 0 {
			id = parseInt64(pointerToString(candidate.ID))
		}
		if id == 0 {
			continue
		}
		return c.fetchSeries(id)
	}
	return nil, notFound("series not found: %s", title)
}

// SeasonEpisodes fetches the canonical episode list for one season using
// the official season ordering.
func (c *Catalog) SeasonEpisodes(ctx context.Context, id string, season int) ([]provider.CatalogEpisode, error) {
	seriesID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  fmt.Sprintf("invalid tvdb series id %q", id),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seasonNum := int64(season)
	resp, err := c.client.GetSeriesEpisodes(operations.GetSeriesEpisodesRequest{
		ID:         float64(seriesID),
		SeasonType: "official",
		Season:     &seasonNum,
		Page:       0,
	})
	if err != nil {
		return nil, mapError(err)
	}
	if resp == nil || resp.Data == nil {
		return nil, notFound("season %d not found", season)
	}

	episodes := make([]provider.CatalogEpisode, 0, len(resp.Data.Episodes))
	for _, e := range resp.Data.Episodes {
		number := 0
		if e.Number != nil {
			number = int(*e.Number)
		}
		episodes = append(episodes, provider.CatalogEpisode{
			EpisodeNumber: number,
			Name:          pointerToString(e.Name),
			Overview:      pointerToString(e.Overview),
			StillImage:    artworkURL(pointerToString(e.Image)),
			AirDate:       pointerToString(e.Aired),
		})
	}
	return episodes, nil
}

func (c *Catalog) fetchSeries(id int64) (*provider.Series, error) {
	meta := operations.GetSeriesExtendedQueryParamMetaTranslations
	resp, err := c.client.GetSeriesExtended(float64(id), &meta, nil)
	if err != nil {
		return nil, mapError(err)
	}
	if resp == nil || resp.Data == nil {
		return nil, notFound("series %d not found", id)
	}

	series := resp.Data
	genres := make([]string, 0, len(series.Genres))
	for _, g := range series.Genres {
		if g.Name != nil && strings.TrimSpace(*g.Name) != "" {
			genres = append(genres, strings.TrimSpace(*g.Name))
		}
	}

	return &provider.Series{
		ID:          strconv.FormatInt(id, 10),
		Name:        pointerToString(series.Name),
		Year:        pointerToString(series.Year),
		Overview:    pointerToString(series.Overview),
		PosterImage: artworkURL(pointerToString(series.Image)),
		Rating:      pointerToFloat32(series.Score),
		Genres:      genres,
	}, nil
}

func artworkURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return artworkBaseURL + path
}

func pointerToString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func pointerToFloat32(value *float64) float32 {
	if value == nil {
		return 0
	}
	return float32(*value)
}

func parseInt64(value string) int64 {
	parsed, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return parsed
}

func notFound(format string, args ...interface{}) error {
	return &provider.ProviderError{
		Provider: providerName,
		Code:     provider.CodeNotFound,
		Message:  fmt.Sprintf(format, args...),
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "401"), strings.Contains(lower, "unauthorized"), strings.Contains(lower, "apikey"):
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeAuthFailed, Message: "TVDB authentication failed: " + msg}
	case strings.Contains(lower, "429"), strings.Contains(lower, "too many"):
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeRateLimited, Message: msg, Retry: true, RetryAfter: 5}
	case strings.Contains(lower, "404"), strings.Contains(lower, "not found"):
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeNotFound, Message: msg}
	case strings.Contains(lower, "503"), strings.Contains(lower, "unavailable"):
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeUnavailable, Message: msg, Retry: true, RetryAfter: 30}
	default:
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeUnknown, Message: msg}
	}
}

var _ provider.Catalog = (*Catalog)(nil)
