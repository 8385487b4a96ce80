// Package library reads declared local content from a JSON library
// file. Entries describe titles that live on local disk rather than in
// a cloud folder, including their per-episode file paths.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/showdeck/showdeck/internal/media"
)

// EpisodeDecl declares one local episode file.
type EpisodeDecl struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	LocalPath string `json:"localPath"`
}

// Entry declares one local title.
type Entry struct {
	Title     string        `json:"title"`
	Type      string        `json:"type"`
	FolderID  string        `json:"folderId"`
	LocalPath string        `json:"localPath"`
	Cast      []string      `json:"cast"`
	Episodes  []EpisodeDecl `json:"episodes"`
}

// Library is the parsed library file.
type Library struct {
	Entries []Entry
}

// Load parses the library file at path. A missing file is not an
// error; it loads as an empty library.
func Load(path string) (*Library, error) {
	if path == "" {
		return &Library{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Library{}, nil
		}
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}
	return &Library{Entries: entries}, nil
}

// Find returns the entry whose title matches, case-insensitively.
func (l *Library) Find(title string) (*Entry, bool) {
	for i := range l.Entries {
		if strings.EqualFold(l.Entries[i].Title, title) {
			return &l.Entries[i], true
		}
	}
	return nil, false
}

// EpisodeRecords converts an entry's episode declarations into records.
// Declaration order supplies the fallback episode numbering.
func (e *Entry) EpisodeRecords() []*media.Episode {
	eps := make([]*media.Episode, 0, len(e.Episodes))
	for i, decl := range e.Episodes {
		eps = append(eps, media.FromLocalDecl(media.LocalDecl{
			Name:      decl.Name,
			Title:     decl.Title,
			Season:    decl.Season,
			Episode:   decl.Episode,
			LocalPath: decl.LocalPath,
		}, i))
	}
	return eps
}
