package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/showdeck/showdeck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the resolved configuration: file values merged with
defaults and SHOWDECK_* environment overrides. API keys are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n\n", path)
		fmt.Fprintf(out, "catalog_source:     %s\n", cfg.CatalogSource)
		fmt.Fprintf(out, "language:           %s\n", cfg.Language)
		fmt.Fprintf(out, "tmdb_api_key:       %s\n", maskKey(cfg.TMDBAPIKey))
		fmt.Fprintf(out, "omdb_api_key:       %s\n", maskKey(cfg.OMDBAPIKey))
		fmt.Fprintf(out, "tvdb_api_key:       %s\n", maskKey(cfg.TVDBAPIKey))
		fmt.Fprintf(out, "drive_api_key:      %s\n", maskKey(cfg.DriveAPIKey))
		fmt.Fprintf(out, "library_path:       %s\n", orUnset(cfg.LibraryPath))
		fmt.Fprintf(out, "enable_logging:     %s\n", strconv.FormatBool(cfg.EnableLogging))
		fmt.Fprintf(out, "log_retention_days: %d\n", cfg.LogRetentionDays)
		fmt.Fprintf(out, "cache_enabled:      %s\n", strconv.FormatBool(cfg.CacheEnabled))
		return nil
	},
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}

func init() {
	rootCmd.AddCommand(configCmd)
}
