package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/drive"
	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/page"
	"github.com/showdeck/showdeck/internal/provider"
	providerinit "github.com/showdeck/showdeck/internal/provider/init"
)

// buildCatalog constructs the configured catalog source. A
// misconfigured catalog is reported on stderr and the page loads
// unreconciled rather than failing.
func buildCatalog(cfg *config.Config) provider.Catalog {
	if err := providerinit.LoadBuiltinCatalogs(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		cacheDir = ""
	}
	catalog, err := provider.GlobalRegistry.Build(cfg.CatalogSource, map[string]string{
		"api_key":       cfg.APIKeyFor(cfg.CatalogSource),
		"language":      cfg.Language,
		"cache_dir":     cacheDir,
		"cache_enabled": strconv.FormatBool(cfg.CacheEnabled),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: catalog %s unavailable: %v\n", cfg.CatalogSource, err)
		return nil
	}
	return catalog
}

// buildLister constructs the Drive lister when an API key is set.
func buildLister(cfg *config.Config) provider.Lister {
	if cfg.DriveAPIKey == "" {
		return nil
	}
	lister, err := drive.New(cfg.DriveAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: drive unavailable: %v\n", err)
		return nil
	}
	return lister
}

// buildController wires a page controller from the user's config.
func buildController(cfg *config.Config) *page.Controller {
	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: library unavailable: %v\n", err)
		lib = nil
	}
	return page.NewController(buildCatalog(cfg), buildLister(cfg), lib)
}
