// ABOUTME: Login command storing the issued session locally
// ABOUTME: Validates credentials client-side before calling the backend

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
	"github.com/pokebuild/teambuilder/internal/session"
	"github.com/pokebuild/teambuilder/internal/validate"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long:  `Authenticate against the team builder backend and persist the session locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, loginUsername, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	rootCmd.AddCommand(loginCmd)
}

// runLogin authenticates, resolves the user id, and persists the session.
func runLogin(ctx context.Context, w io.Writer, username, password string) int {
	if err := validate.Check(validate.LoginInput{Username: username, Password: password}); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	auth, err := c.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := c.GetUser(ctx, auth.Username, auth.Token)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sess := session.Session{
		Username: user.Username,
		UserID:   user.UserID,
		IsAdmin:  auth.IsAdmin || user.IsAdmin,
		Token:    auth.Token,
	}
	if err := newStore().Set(sess); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"username": sess.Username,
			"user_id":  sess.UserID,
			"is_admin": sess.IsAdmin,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", sess.Username)
	}
	return 0
}
