// Package provider defines the external contracts the detail page depends
// on: a Catalog for canonical series and episode metadata, and a Lister for
// enumerating the video files of a remote folder. Implementations live in
// subpackages; callers treat every provider failure as "metadata
// unavailable" and degrade instead of propagating.
package provider

import "context"

// Catalog supplies canonical series and episode metadata from an online
// source such as TMDB, TVDB, or OMDb.
type Catalog interface {
	Name() string

	// Series fetches series-level metadata by the catalog's own id.
	Series(ctx context.Context, id string) (*Series, error)

	// Search resolves a series by title when no catalog id is known.
	Search(ctx context.Context, title string) (*Series, error)

	// SeasonEpisodes fetches the canonical episode list for one season.
	SeasonEpisodes(ctx context.Context, id string, season int) ([]CatalogEpisode, error)
}

// Series is catalog-level metadata for a show.
type Series struct {
	ID            string
	Name          string
	Year          string
	Overview      string
	PosterImage   string
	BackdropImage string
	Rating        float32
	Genres        []string
}

// CatalogEpisode is one canonical episode of a season.
type CatalogEpisode struct {
	EpisodeNumber int
	Name          string
	Overview      string
	StillImage    string
	AirDate       string
	Rating        float32
}

// Lister enumerates the files of a remote folder.
type Lister interface {
	ListFiles(ctx context.Context, folderID string) ([]FileEntry, error)
}

// Durationer reports the playback length of a listed file in seconds.
// Listers that can serve it implement this alongside Lister.
type Durationer interface {
	FileDuration(ctx context.Context, fileID string) (int, error)
}

// FileEntry is one file of a listed folder.
type FileEntry struct {
	ID        string
	Name      string
	MimeType  string
	Thumbnail string
}

// ProviderError classifies a provider failure.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Retry      bool
	RetryAfter int // Seconds to wait before retry
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Error codes shared by all providers.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeAuthFailed     = "AUTH_FAILED"
	CodeRateLimited    = "RATE_LIMITED"
	CodeUnavailable    = "UNAVAILABLE"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnknown        = "UNKNOWN"
)
