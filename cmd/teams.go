// ABOUTME: Teams command group: list, show, create, delete
// ABOUTME: Scripting surface over the same client and selection logic as the TUI

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/team"
	"github.com/pokebuild/teambuilder/internal/validate"
)

var (
	teamsMine       bool
	teamName        string
	teamPokemonArgs []string
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List and manage teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams (or your own with --mine)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTeamsList(ctx, os.Stdout, teamsMine)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var teamsShowCmd = &cobra.Command{
	Use:   "show <team-id>",
	Short: "Show a team and its roster",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTeamsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var teamsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a team from selected Pokemon",
	Long: `Create a team. Pokemon are given as repeated --pokemon id:name flags;
roster positions follow the order the flags are given, up to six.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTeamsCreate(ctx, os.Stdout, teamName, teamPokemonArgs)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <team-id>",
	Short: "Delete a team you own",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTeamsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	teamsListCmd.Flags().BoolVar(&teamsMine, "mine", false, "Only teams owned by the logged-in user")
	teamsCreateCmd.Flags().StringVar(&teamName, "name", "", "Team name")
	teamsCreateCmd.Flags().StringArrayVar(&teamPokemonArgs, "pokemon", nil, "Pokemon as id:name, repeatable")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsShowCmd)
	teamsCmd.AddCommand(teamsCreateCmd)
	teamsCmd.AddCommand(teamsDeleteCmd)
	rootCmd.AddCommand(teamsCmd)
}

func runTeamsList(ctx context.Context, w io.Writer, mine bool) int {
	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	var (
		teams []client.Team
		err   error
	)
	if mine {
		sess := newStore().Current()
		if !sess.LoggedIn() {
			fmt.Fprintln(w, "Error: not logged in")
			return 2
		}
		teams, err = c.GetMyTeams(ctx, sess.Token)
	} else {
		teams, err = c.GetAllTeams(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(teams, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(teams) == 0 {
		fmt.Fprintln(w, "No teams found!")
		return 0
	}
	for _, t := range teams {
		fmt.Fprintf(w, "%d\t%s\n", t.TeamID, t.TeamName)
	}
	return 0
}

func runTeamsShow(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid team id %q\n", idArg)
		return 1
	}

	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	t, err := c.GetTeamByID(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	roster, err := c.GetTeamRoster(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"team":   t,
			"roster": roster,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s (id %d)\n", t.TeamName, t.TeamID)
	for _, m := range roster {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.Position, titleCase(m.PokemonName), client.SpriteURL(m.PokemonID))
	}
	return 0
}

func runTeamsCreate(ctx context.Context, w io.Writer, name string, pokemonArgs []string) int {
	if err := validate.Check(validate.TeamInput{Name: name}); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sel := team.NewSelection()
	for _, arg := range pokemonArgs {
		ref, err := parsePokemonArg(arg)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		if sel.Contains(ref.PokemonID) {
			fmt.Fprintf(w, "Error: duplicate pokemon %d\n", ref.PokemonID)
			return 1
		}
		if err := sel.Toggle(ref); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}
	if sel.Len() == 0 {
		fmt.Fprintf(w, "Error: %v\n", team.ErrEmptySelection)
		return 1
	}

	sess := newStore().Current()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Error: not logged in")
		return 2
	}

	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	created, err := c.CreateTeam(ctx, name, sess.UserID, sess.Token)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := c.AddPokemonToTeam(ctx, created.TeamID, created.UserID, sel.Refs(), sess.Token); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Team created successfully!")
	return 0
}

func runTeamsDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid team id %q\n", idArg)
		return 1
	}

	sess := newStore().Current()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Error: not logged in")
		return 2
	}

	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	// The owner id is only known once the team is fetched; the guard runs after.
	t, err := c.GetTeamByID(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !sess.CanModify(t.UserID) {
		fmt.Fprintln(w, "Error: you do not have permission to delete this team")
		return 2
	}

	if err := c.DeleteTeam(ctx, id, sess.Token); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Deleted team %d\n", id)
	return 0
}

// parsePokemonArg parses an id:name pair such as "25:pikachu".
func parsePokemonArg(arg string) (client.PokemonRef, error) {
	idStr, name, found := strings.Cut(arg, ":")
	if !found || name == "" {
		return client.PokemonRef{}, fmt.Errorf("invalid --pokemon %q, expected id:name", arg)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return client.PokemonRef{}, fmt.Errorf("invalid pokemon id in %q", arg)
	}
	return client.PokemonRef{PokemonID: id, PokemonName: name}, nil
}

// titleCase capitalizes the first letter for display, as the catalog names
// are all lowercase.
func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
