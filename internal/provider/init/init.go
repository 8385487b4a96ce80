// Package init handles catalog registration to avoid import cycles
package init

import (
	"fmt"

	"github.com/showdeck/showdeck/internal/provider"
	"github.com/showdeck/showdeck/internal/provider/omdb"
	"github.com/showdeck/showdeck/internal/provider/tmdb"
	"github.com/showdeck/showdeck/internal/provider/tvdb"
)

// LoadBuiltinCatalogs loads all built-in catalog factories into the
// global registry. Settings keys: api_key, language, cache_dir,
// cache_enabled.
func LoadBuiltinCatalogs() error {
	err := provider.GlobalRegistry.Register("tmdb", func(settings map[string]string) (provider.Catalog, error) {
		return tmdb.New(tmdb.Options{
			APIKey:       settings["api_key"],
			Language:     settings["language"],
			CacheEnabled: settings["cache_enabled"] == "true",
			CacheDir:     settings["cache_dir"],
		})
	}, 100)
	if err != nil {
		return fmt.Errorf("failed to register TMDB catalog: %w", err)
	}

	err = provider.GlobalRegistry.Register("omdb", func(settings map[string]string) (provider.Catalog, error) {
		return omdb.New(settings["api_key"], nil)
	}, 50)
	if err != nil {
		return fmt.Errorf("failed to register OMDb catalog: %w", err)
	}

	err = provider.GlobalRegistry.Register("tvdb", func(settings map[string]string) (provider.Catalog, error) {
		return tvdb.New(settings["api_key"])
	}, 40)
	if err != nil {
		return fmt.Errorf("failed to register TVDB catalog: %w", err)
	}

	return nil
}
