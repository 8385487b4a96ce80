package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/log"
	"github.com/showdeck/showdeck/internal/page"
)

var (
	episodesFolderID  string
	episodesLocal     string
	episodesTitle     string
	episodesCatalogID string
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Print the reconciled episode list for a series",
	Long: `Episodes loads and reconciles a series the same way browse does,
then prints the result as a plain table instead of opening the TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if episodesFolderID == "" && episodesLocal == "" {
			return fmt.Errorf("one of --folder or --local is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)
		if err := log.StartSession("episodes", os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to start operation log: %v\n", err)
		}
		defer func() {
			if err := log.EndSession(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to save operation log: %v\n", err)
			}
		}()

		params := page.Params{
			FolderID:  episodesFolderID,
			Title:     episodesTitle,
			MediaType: "tv",
			CatalogID: episodesCatalogID,
		}
		if episodesLocal != "" {
			params.Title = episodesLocal
			params.MediaType = "local"
		}

		state := buildController(cfg).Load(context.Background(), params)

		if state.Series != nil && state.Series.Name != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", state.Series.Name)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEPISODE\tTITLE\tAIR DATE\tDURATION\t")
		for _, ep := range state.Episodes {
			tag := fmt.Sprintf("S%d:E%d", ep.SeasonNumber, ep.EpisodeNumber)
			if !ep.EpisodeKnown {
				tag = fmt.Sprintf("S%d:E?", ep.SeasonNumber)
			}
			marker := " "
			if ep.Reconciled {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s%s\t%s\t%s\t%s\t\n",
				ep.ID, tag, marker, ep.Title, ep.AirDate, formatSeconds(ep.Duration))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		s := state.Stats
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d episodes, %d matched (%d exact, %d fuzzy), %d unmatched\n",
			s.Total, s.Exact+s.Fuzzy, s.Exact, s.Fuzzy, s.Unmatched)
		return nil
	},
}

func formatSeconds(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	episodesCmd.Flags().StringVar(&episodesFolderID, "folder", "", "Cloud-drive folder id to list")
	episodesCmd.Flags().StringVar(&episodesLocal, "local", "", "Locally declared library title to list")
	episodesCmd.Flags().StringVar(&episodesTitle, "title", "", "Series title for catalog search")
	episodesCmd.Flags().StringVar(&episodesCatalogID, "catalog-id", "", "Catalog series id (skips search)")
}
