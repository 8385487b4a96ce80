package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/ryanbradynd05/go-tmdb"

	"github.com/showdeck/showdeck/internal/provider"
)

// Series fetches series-level metadata by TMDB id.
func (c *Catalog) Series(ctx context.Context, id string) (*provider.Series, error) {
	showID, err := strconv.Atoi(id)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  fmt.Sprintf("invalid tmdb series id %q", id),
		}
	}

	cacheKey := "series:" + id
	if cached, ok := c.getCached(cacheKey); ok {
		if s, ok := cached.(*provider.Series); ok {
			return s, nil
		}
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}
	show, err := c.client.GetTvInfo(showID, c.options())
	if err != nil {
		return nil, c.mapError(err)
	}
	if show == nil {
		return nil, notFound("series %s not found", id)
	}

	series := tvToSeries(show)
	c.setCached(cacheKey, series)
	return series, nil
}

// Search resolves a series by title; the first result wins, mirroring how
// the detail page has always picked its match.
func (c *Catalog) Search(ctx context.Context, title string) (*provider.Series, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "search requires a title",
		}
	}

	cacheKey := "search:" + strings.ToLower(title)
	if cached, ok := c.getCached(cacheKey); ok {
		if s, ok := cached.(*provider.Series); ok {
			return s, nil
		}
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}
	results, err := c.client.SearchTv(title, c.options())
	if err != nil {
		return nil, c.mapError(err)
	}
	if results == nil || len(results.Results) == 0 {
		return nil, notFound("no results found for show: %s", title)
	}
	first := results.Results[0]

	// Full record has the overview and genre list the search result lacks.
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}
	show, err := c.client.GetTvInfo(first.ID, c.options())
	if err != nil || show == nil {
		series := &provider.Series{
			ID:            strconv.Itoa(first.ID),
			Name:          first.Name,
			Year:          yearOf(first.FirstAirDate),
			PosterImage:   imageURL(imageBaseURL, first.PosterPath),
			BackdropImage: imageURL(backdropBaseURL, first.BackdropPath),
			Rating:        first.VoteAverage,
		}
		c.setCached(cacheKey, series)
		return series, nil
	}

	series := tvToSeries(show)
	c.setCached(cacheKey, series)
	return series, nil
}

// SeasonEpisodes fetches the canonical episode list for one season.
func (c *Catalog) SeasonEpisodes(ctx context.Context, id string, season int) ([]provider.CatalogEpisode, error) {
	showID, err := strconv.Atoi(id)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  fmt.Sprintf("invalid tmdb series id %q", id),
		}
	}

	cacheKey := fmt.Sprintf("season:%s:%d", id, season)
	if cached, ok := c.getCached(cacheKey); ok {
		if eps, ok := cached.([]provider.CatalogEpisode); ok {
			return eps, nil
		}
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}
	result, err := c.client.GetTvSeasonInfo(showID, season, c.options())
	if err != nil {
		return nil, c.mapError(err)
	}
	if result == nil {
		return nil, notFound("season %d not found", season)
	}

	episodes := make([]provider.CatalogEpisode, 0, len(result.Episodes))
	for _, e := range result.Episodes {
		episodes = append(episodes, provider.CatalogEpisode{
			EpisodeNumber: e.EpisodeNumber,
			Name:          e.Name,
			Overview:      e.Overview,
			StillImage:    imageURL(imageBaseURL, e.StillPath),
			AirDate:       e.AirDate,
			Rating:        float32(e.VoteAverage),
		})
	}

	c.setCached(cacheKey, episodes)
	return episodes, nil
}

func tvToSeries(show *tmdb.TV) *provider.Series {
	genres := make([]string, 0, len(show.Genres))
	for _, g := range show.Genres {
		genres = append(genres, g.Name)
	}
	return &provider.Series{
		ID:            strconv.Itoa(show.ID),
		Name:          show.Name,
		Year:          yearOf(show.FirstAirDate),
		Overview:      show.Overview,
		PosterImage:   imageURL(imageBaseURL, show.PosterPath),
		BackdropImage: imageURL(backdropBaseURL, show.BackdropPath),
		Rating:        show.VoteAverage,
		Genres:        genres,
	}
}

func (c *Catalog) options() map[string]string {
	return map[string]string{"language": c.language}
}

func (c *Catalog) getCached(key string) (interface{}, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Catalog) setCached(key string, value interface{}) {
	if c.cache != nil {
		c.cache.Set(key, value, cache.DefaultExpiration)
	}
}
