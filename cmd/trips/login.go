package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/cli"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in",
	Long: `Sign in so you can save and change trips.

Your display name is taken from the email address unless --name is given,
in which case a new account is created under that name. The session is
kept in the trips store until 'trips logout'.

Examples:
  trips login jane@example.com
  trips login jane@example.com --name="Jane Doe"`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var loginName string

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "display name for a new account")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	login := a.Session.Login
	if loginName != "" {
		login = func(ctx context.Context, email string) (*auth.User, error) {
			return a.Session.Signup(ctx, loginName, email)
		}
	}

	u, err := login(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s <%s>.\n", u.Name, u.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Session.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := a.Session.Logout(commandContext(cmd)); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u := a.Session.User()
	if u == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	fmt.Println(cli.Gray("id: " + u.ID))
	return nil
}
