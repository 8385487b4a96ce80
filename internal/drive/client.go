// Package drive lists folder contents from the Google Drive v3 API.
//
// Only the read paths needed for browsing are implemented: folder
// listings and per-file video metadata. Authentication uses an API key,
// which restricts access to files shared publicly or with the key's
// project.
package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/showdeck/showdeck/internal/provider"
)

const (
	providerName   = "drive"
	defaultBaseURL = "https://www.googleapis.com/drive/v3"

	// Drive caps pageSize at 1000; one page covers almost every
	// season folder, so pagination is the rare path.
	pageSize = 1000
)

// file models the subset of the Drive file resource the browser reads.
type file struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MimeType           string `json:"mimeType"`
	ThumbnailLink      string `json:"thumbnailLink"`
	VideoMediaMetadata *struct {
		DurationMillis string `json:"durationMillis"`
	} `json:"videoMediaMetadata"`
}

// fileList models one page of a files.list response.
type fileList struct {
	Files         []file `json:"files"`
	NextPageToken string `json:"nextPageToken"`
}

// Client calls the Google Drive v3 REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ provider.Lister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the Drive API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// New creates a Drive client.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "drive: missing API key",
		}
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListFiles returns every file directly inside the given folder,
// following nextPageToken until the listing is exhausted. Drive sorts
// by name; callers re-sort into episode order anyway.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]provider.FileEntry, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "drive: empty folder id",
		}
	}

	var entries []provider.FileEntry
	pageToken := ""
	for {
		page, err := c.listPage(ctx, folderID, pageToken)
		if err != nil {
			return nil, err
		}
		for _, f := range page.Files {
			entries = append(entries, provider.FileEntry{
				ID:        f.ID,
				Name:      f.Name,
				MimeType:  f.MimeType,
				Thumbnail: f.ThumbnailLink,
			})
		}
		if page.NextPageToken == "" {
			return entries, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) listPage(ctx context.Context, folderID, pageToken string) (*fileList, error) {
	endpoint, err := url.Parse(c.baseURL + "/files")
	if err != nil {
		return nil, fmt.Errorf("parse drive url: %w", err)
	}
	params := url.Values{}
	params.Set("q", fmt.Sprintf("'%s' in parents and trashed = false", folderID))
	params.Set("fields", "nextPageToken, files(id, name, mimeType, thumbnailLink)")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("orderBy", "name")
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	endpoint.RawQuery = params.Encode()

	var payload fileList
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FileDuration fetches the video duration of a single file in whole
// seconds. Files without video metadata report zero.
func (c *Client) FileDuration(ctx context.Context, fileID string) (int, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return 0, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidRequest,
			Message:  "drive: empty file id",
		}
	}

	endpoint, err := url.Parse(c.baseURL + "/files/" + url.PathEscape(fileID))
	if err != nil {
		return 0, fmt.Errorf("parse drive url: %w", err)
	}
	params := url.Values{}
	params.Set("fields", "videoMediaMetadata(durationMillis)")
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	var payload file
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return 0, err
	}
	if payload.VideoMediaMetadata == nil {
		return 0, nil
	}
	millis, err := strconv.ParseInt(payload.VideoMediaMetadata.DurationMillis, 10, 64)
	if err != nil {
		return 0, nil
	}
	return int(millis / 1000), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeUnavailable,
			Message:  fmt.Sprintf("drive: request failed: %v", err),
			Retry:    true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode drive response: %w", err)
	}
	return nil
}

func mapStatus(status int) error {
	perr := &provider.ProviderError{
		Provider: providerName,
		Message:  fmt.Sprintf("drive: API returned %d", status),
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		perr.Code = provider.CodeAuthFailed
	case status == http.StatusNotFound:
		perr.Code = provider.CodeNotFound
	case status == http.StatusTooManyRequests:
		perr.Code = provider.CodeRateLimited
		perr.Retry = true
		perr.RetryAfter = 5
	case status >= 500:
		perr.Code = provider.CodeUnavailable
		perr.Retry = true
	default:
		perr.Code = provider.CodeUnknown
	}
	return perr
}
