// Package omdb implements a catalog on the Open Movie Database API. OMDb
// carries no episode stills or per-episode overviews, so records reconciled
// through it keep those fields empty.
package omdb

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Digital-Shane/omdb"

	"github.com/showdeck/showdeck/internal/provider"
)

const providerName = "omdb"

// Catalog implements provider.Catalog against OMDb.
type Catalog struct {
	client     *omdb.Client
	httpClient *http.Client
	apiKey     string
}

// New creates an OMDb catalog. httpClient may be nil; tests inject one with
// a stub transport.
func New(apiKey string, httpClient *http.Client) (*Catalog, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "omdb api key is required",
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Catalog{
		client:     omdb.NewClient(apiKey, httpClient),
		httpClient: httpClient,
		apiKey:     apiKey,
	}, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return providerName
}

func (c *Catalog) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "invalid api key"), strings.Contains(lower, "missing omdb api key"):
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "OMDb authentication failed: " + msg,
		}
	case strings.Contains(lower, "not found"):
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  msg,
		}
	case strings.Contains(lower, "limit reached"), strings.Contains(lower, "too many requests"):
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       provider.CodeRateLimited,
			Message:    msg,
			Retry:      true,
			RetryAfter: 5,
		}
	default:
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeUnknown,
			Message:  msg,
		}
	}
}

var _ provider.Catalog = (*Catalog)(nil)
