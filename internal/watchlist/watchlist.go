// Package watchlist persists the user's saved titles as a flat JSON
// array under the application config directory.
package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/showdeck/showdeck/internal/config"
)

// Item is one saved title. FolderID is the identity key.
type Item struct {
	Title    string `json:"title"`
	FolderID string `json:"folderid"`
	Type     string `json:"type"`
	Image    string `json:"image"`
}

// Watchlist is an ordered list of saved titles, newest first.
type Watchlist struct {
	path  string
	Items []Item
}

// Path returns the default watchlist file location.
func Path() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watchlist.json"), nil
}

// Load reads the watchlist at path. A missing file loads as empty.
func Load(path string) (*Watchlist, error) {
	w := &Watchlist{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	if err := json.Unmarshal(data, &w.Items); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}
	return w, nil
}

// Contains reports whether a title with the given folder id is saved.
func (w *Watchlist) Contains(folderID string) bool {
	for _, item := range w.Items {
		if item.FolderID == folderID {
			return true
		}
	}
	return false
}

// Toggle adds the item when absent and removes it when present,
// matching by folder id. New items are prepended. It reports whether
// the item is on the list after the call.
func (w *Watchlist) Toggle(item Item) bool {
	for i, existing := range w.Items {
		if existing.FolderID == item.FolderID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return false
		}
	}
	w.Items = append([]Item{item}, w.Items...)
	return true
}

// Save writes the watchlist back to its file.
func (w *Watchlist) Save() error {
	if w.path == "" {
		return fmt.Errorf("watchlist has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create watchlist directory: %w", err)
	}
	items := w.Items
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write watchlist: %w", err)
	}
	return nil
}
