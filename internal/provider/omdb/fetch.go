package omdb

import (
	"context"
	"strconv"
	"strings"

	"github.com/Digital-Shane/omdb"

	"github.com/showdeck/showdeck/internal/provider"
)

// Series fetches series-level metadata by IMDb id.
func (c *Catalog) Series(ctx context.Context, id string) (*provider.Series, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "series fetch requires an IMDb id",
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := c.client.SearchByImdbID(omdb.QueryData{ImdbID: id, Plot: "full"})
	if err != nil {
		return nil, c.mapError(err)
	}
	return c.toSeries(result)
}

// Search resolves a series by title.
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

	result, err := c.client.SearchByTitle(omdb.QueryData{
		Title:      title,
		SearchType: "series",
		Plot:       "full",
	})
	if err != nil {
		return nil, c.mapError(err)
	}
	return c.toSeries(result)
}

// SeasonEpisodes fetches the canonical episode list for one season.
func (c *Catalog) SeasonEpisodes(ctx context.Context, id string, season int) ([]provider.CatalogEpisode, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "season fetch requires an IMDb id",
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := c.client.SearchByImdbID(omdb.QueryData{
		ImdbID: id,
		Season: strconv.Itoa(season),
	})
	if err != nil {
		return nil, c.mapError(err)
	}

	switch resp := result.(type) {
	case omdb.SeasonResult:
		return seasonToEpisodes(&resp), nil
	case *omdb.SeasonResult:
		return seasonToEpisodes(resp), nil
	default:
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  "season not found",
		}
	}
}

func (c *Catalog) toSeries(result any) (*provider.Series, error) {
	switch series := result.(type) {
	case omdb.SeriesResult:
		return seriesResultToSeries(&series), nil
	case *omdb.SeriesResult:
		return seriesResultToSeries(series), nil
	default:
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  "series not found",
		}
	}
}

func seriesResultToSeries(result *omdb.SeriesResult) *provider.Series {
	return &provider.Series{
		ID:          result.ImdbID,
		Name:        result.Title,
		Year:        omdb.FirstYear(result.Year),
		Overview:    result.Plot,
		PosterImage: result.Poster,
		Rating:      omdb.ParseRating(result.ImdbRating),
		Genres:      omdb.SplitAndTrim(result.Genre),
	}
}

func seasonToEpisodes(resp *omdb.SeasonResult) []provider.CatalogEpisode {
	episodes := make([]provider.CatalogEpisode, 0, len(resp.Episodes))
	for _, e := range resp.Episodes {
		number, _ := strconv.Atoi(e.Episode)
		episodes = append(episodes, provider.CatalogEpisode{
			EpisodeNumber: number,
			Name:          e.Title,
			AirDate:       e.Released,
			Rating:        omdb.ParseRating(e.ImdbRating),
		})
	}
	return episodes
}
