// ABOUTME: Whoami command showing the locally stored session
// ABOUTME: Reads the session file only; never calls the backend

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokebuild/teambuilder/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout, newStore().Current())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(w io.Writer, sess session.Session) int {
	if !sess.LoggedIn() {
		if IsJSONOutput() {
			fmt.Fprintln(w, `{"logged_in": false}`)
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"logged_in": true,
			"username":  sess.Username,
			"user_id":   sess.UserID,
			"is_admin":  sess.IsAdmin,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (id %d)", sess.Username, sess.UserID)
		if sess.IsAdmin {
			fmt.Fprint(w, " [admin]")
		}
		fmt.Fprintln(w)
	}
	return 0
}
