// ABOUTME: Root command for the teambuilder CLI
// ABOUTME: Handles global flags, env loading, and shared config/session helpers

package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pokebuild/teambuilder/internal/config"
	"github.com/pokebuild/teambuilder/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Running it with no subcommand starts the TUI.
var rootCmd = &cobra.Command{
	Use:   "teambuilder",
	Short: "Terminal client for the Pokemon Team Builder",
	Long: `teambuilder is a terminal client for the Pokemon Team Builder API.

Browse the Pokemon catalog, assemble teams of up to six Pokemon, and manage
your account, either interactively (run with no arguments) or through
subcommands suitable for scripting.

Environment Variables:
  TEAMBUILDER_API_URL      Backend API URL (default: http://localhost:3001)
  TEAMBUILDER_CATALOG_URL  Pokemon catalog URL (default: https://pokeapi.co/api/v2)
  TEAMBUILDER_PAGE_SIZE    Entries per "load more" (default: 20)
  TEAMBUILDER_SEARCH_LIMIT Catalog entries scanned by search (default: 2000)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env alongside the binary mirrors the backend's own configuration style.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides TEAMBUILDER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig resolves configuration: defaults, config file, env, then flags.
func loadConfig() *config.Config {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		cfg = config.Default()
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg
}

// GetAPIURL returns the resolved backend API URL.
func GetAPIURL() string {
	return loadConfig().APIURL
}

// IsJSONOutput returns whether JSON output is requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// newStore opens the session store in the default config directory.
func newStore() *session.Store {
	return session.NewStore(session.DefaultConfigDir())
}
