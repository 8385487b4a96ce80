package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/showdeck/showdeck/internal/watchlist"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, err := loadWatchlist()
		if err != nil {
			return err
		}
		if len(wl.Items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tTYPE\tFOLDER\t")
		for _, item := range wl.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", item.Title, item.Type, item.FolderID)
		}
		return w.Flush()
	},
}

var listToggleCmd = &cobra.Command{
	Use:   "toggle <folderid> <title>",
	Short: "Add or remove a watchlist entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, err := loadWatchlist()
		if err != nil {
			return err
		}
		added := wl.Toggle(watchlist.Item{FolderID: args[0], Title: args[1], Type: "tv"})
		if err := wl.Save(); err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to watchlist.\n", args[1])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from watchlist.\n", args[1])
		}
		return nil
	},
}

func loadWatchlist() (*watchlist.Watchlist, error) {
	path, err := watchlist.Path()
	if err != nil {
		return nil, err
	}
	return watchlist.Load(path)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listToggleCmd)
}
