package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/log"
	"github.com/showdeck/showdeck/internal/page"
	"github.com/showdeck/showdeck/internal/session"
	"github.com/showdeck/showdeck/internal/tui"
	"github.com/showdeck/showdeck/internal/watchlist"
)

var (
	browseFolderID  string
	browseLocal     string
	browseTitle     string
	browseCatalogID string
	browseEpisodeID string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a series folder interactively",
	Long: `Browse opens the episode browser for one series. Give it a
cloud-drive folder with --folder, or a locally declared library title
with --local. --title names the series for catalog search when the
catalog id is not known.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if browseFolderID == "" && browseLocal == "" {
			return fmt.Errorf("one of --folder or --local is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)
		if err := log.StartSession("browse", os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to start operation log: %v\n", err)
		}
		defer func() {
			if err := log.EndSession(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to save operation log: %v\n", err)
			}
		}()

		params := page.Params{
			FolderID:  browseFolderID,
			Title:     browseTitle,
			MediaType: "tv",
			CatalogID: browseCatalogID,
			EpisodeID: browseEpisodeID,
		}
		if browseLocal != "" {
			params.Title = browseLocal
			params.MediaType = "local"
		}

		wlPath, err := watchlist.Path()
		var wl *watchlist.Watchlist
		if err == nil {
			wl, err = watchlist.Load(wlPath)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: watchlist unavailable: %v\n", err)
			wl = nil
		}

		model := tui.NewBrowserModel(buildController(cfg), params, session.NewView(), wl)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseFolderID, "folder", "", "Cloud-drive folder id to browse")
	browseCmd.Flags().StringVar(&browseLocal, "local", "", "Locally declared library title to browse")
	browseCmd.Flags().StringVar(&browseTitle, "title", "", "Series title for catalog search")
	browseCmd.Flags().StringVar(&browseCatalogID, "catalog-id", "", "Catalog series id (skips search)")
	browseCmd.Flags().StringVar(&browseEpisodeID, "episode", "", "Initially selected episode id")
}
