// ABOUTME: Pokedex command for paging and searching the Pokemon catalog
// ABOUTME: Search scans a bounded slice of the catalog client-side

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/list"
)

var (
	pokedexOffset int
	pokedexLimit  int
	pokedexSearch string
)

var pokedexCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse the Pokemon catalog",
	Long:  `Page through the Pokemon catalog, or search it by name with --search.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPokedex(ctx, os.Stdout, pokedexOffset, pokedexLimit, pokedexSearch)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	pokedexCmd.Flags().IntVar(&pokedexOffset, "offset", 0, "Catalog offset to start from")
	pokedexCmd.Flags().IntVar(&pokedexLimit, "limit", 0, "Entries to fetch (default: configured page size)")
	pokedexCmd.Flags().StringVar(&pokedexSearch, "search", "", "Case-insensitive name search")
	rootCmd.AddCommand(pokedexCmd)
}

func runPokedex(ctx context.Context, w io.Writer, offset, limit int, search string) int {
	cfg := loadConfig()
	catalog := client.NewCatalog(cfg.CatalogURL)
	if limit <= 0 {
		limit = cfg.PageSize
	}

	var rows []list.Row

	if search != "" {
		fetchers := list.Fetchers{
			Pokemon: func(ctx context.Context, offset, limit int) ([]list.Row, error) {
				pokemon, err := catalog.ListPokemon(ctx, offset, limit)
				if err != nil {
					return nil, err
				}
				out := make([]list.Row, len(pokemon))
				for i, p := range pokemon {
					out[i] = list.Row{ID: p.PokemonID, Name: p.PokemonName}
				}
				return out, nil
			},
		}
		ld := list.NewLoader(list.KindPokemon, fetchers, limit, cfg.SearchLimit, nil)
		if err := ld.Search(ctx, search); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		rows = ld.State().Rows
	} else {
		pokemon, err := catalog.ListPokemon(ctx, offset, limit)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		for _, p := range pokemon {
			rows = append(rows, list.Row{ID: p.PokemonID, Name: p.PokemonName})
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No Pokemon found!")
		return 0
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\n", r.ID, titleCase(r.Name))
	}
	return 0
}
