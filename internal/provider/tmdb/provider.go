// Package tmdb implements the primary catalog on The Movie Database API.
package tmdb

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/ryanbradynd05/go-tmdb"

	"github.com/showdeck/showdeck/internal/provider"
)

func init() {
	// Cached values must be registered for the gob persisted cache file.
	gob.Register(&provider.Series{})
	gob.Register([]provider.CatalogEpisode{})
}

const (
	providerName = "tmdb"

	// TMDB serves relative image paths; the original site renders them at
	// w500 for posters and stills.
	imageBaseURL    = "https://image.tmdb.org/t/p/w500"
	backdropBaseURL = "https://image.tmdb.org/t/p/w1280"
)

// Catalog implements provider.Catalog against TMDB.
type Catalog struct {
	client      TMDBClient
	cache       *cache.Cache
	cacheFile   string
	language    string
	rateLimiter *rateLimiter
}

// TMDBClient is the subset of *tmdb.TMDb this catalog calls, split out so
// tests can inject a fake.
type TMDBClient interface {
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetTvInfo(id int, options map[string]string) (*tmdb.TV, error)
	GetTvSeasonInfo(showID, seasonID int, options map[string]string) (*tmdb.TvSeason, error)
}

// Options configures a Catalog.
type Options struct {
	APIKey       string
	Language     string
	CacheEnabled bool
	// CacheDir holds the persisted response cache; empty disables
	// persistence but keeps the in-memory cache.
	CacheDir string
}

// New creates a TMDB catalog. The response cache is loaded from disk when a
// previous run persisted one.
func New(opts Options) (*Catalog, error) {
	if opts.APIKey == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "tmdb api key is required",
		}
	}

	c := &Catalog{
		language:    opts.Language,
		rateLimiter: newRateLimiter(38, 10*time.Second), // 38 requests per 10 seconds
	}
	if c.language == "" {
		c.language = "en-US"
	}
	c.client = tmdb.Init(tmdb.Config{APIKey: opts.APIKey})

	if opts.CacheEnabled {
		c.cache = cache.New(24*time.Hour, 10*time.Minute)
		if opts.CacheDir != "" {
			if err := os.MkdirAll(opts.CacheDir, 0755); err == nil {
				c.cacheFile = filepath.Join(opts.CacheDir, "tmdb_cache.gob")
				if _, err := os.Stat(c.cacheFile); err == nil {
					_ = c.cache.LoadFile(c.cacheFile)
				}
			}
		}
	}

	return c, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return providerName
}

// SaveCache persists the response cache to disk.
func (c *Catalog) SaveCache() error {
	if c.cache != nil && c.cacheFile != "" {
		return c.cache.SaveFile(c.cacheFile)
	}
	return nil
}

// mapError maps TMDB errors to provider errors.
func (c *Catalog) mapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized"):
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "TMDB authentication failed: " + err.Error(),
		}
	case strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit"):
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       provider.CodeRateLimited,
			Message:    "TMDB rate limit exceeded",
			Retry:      true,
			RetryAfter: 10,
		}
	case strings.Contains(errStr, "503") || strings.Contains(errStr, "unavailable"):
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       provider.CodeUnavailable,
			Message:    "TMDB service unavailable",
			Retry:      true,
			RetryAfter: 30,
		}
	}

	return &provider.ProviderError{
		Provider: providerName,
		Code:     provider.CodeUnknown,
		Message:  "TMDB error: " + err.Error(),
	}
}

func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

var _ provider.Catalog = (*Catalog)(nil)

func notFound(format string, args ...interface{}) error {
	return &provider.ProviderError{
		Provider: providerName,
		Code:     provider.CodeNotFound,
		Message:  fmt.Sprintf(format, args...),
	}
}
