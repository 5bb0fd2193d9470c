// ABOUTME: Register command creating an account and logging it in
// ABOUTME: The register response token is stored like a login

package cmd

import (
	"context"
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
	registerUsername string
	registerPassword string
	registerEmail    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long:  `Register a new account. On success the issued token is stored, logging you in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout, registerUsername, registerPassword, registerEmail)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(ctx context.Context, w io.Writer, username, password, email string) int {
	in := validate.RegisterInput{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
		Email:           email,
	}
	if err := validate.Check(in); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	auth, err := c.Register(ctx, client.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
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

	fmt.Fprintf(w, "Successfully registered %s\n", sess.Username)
	return 0
}
