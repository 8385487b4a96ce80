/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "showdeck",
	Short: "A terminal browser for streaming detail pages",
	Long: `showdeck builds the detail page for a series folder: it lists the
folder's video files, parses season and episode numbers out of the
filenames, and reconciles every file against an online catalog (TMDB,
OMDb, or TVDB) so each episode gets its canonical title, air date,
rating, and artwork.

Point it at a cloud-drive folder id or a locally declared library title
and browse the result interactively, or print it as a plain table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
