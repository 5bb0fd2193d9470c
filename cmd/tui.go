// ABOUTME: Interactive TUI command, also the default when no subcommand is given
// ABOUTME: Wires the config, API clients, and session store into the bubbletea app

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long:  `Launch the interactive terminal UI for browsing the Pokedex and building teams.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() error {
	cfg := loadConfig()
	apiClient := client.New(cfg.APIURL)
	catalog := client.NewCatalog(cfg.CatalogURL)
	store := newStore()

	return tui.Run(cfg, apiClient, catalog, store)
}
