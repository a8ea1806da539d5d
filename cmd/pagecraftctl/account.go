package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pagecraft/internal/models"
)

// passwordFlag reads the password flag, falling back to PAGECRAFT_PASSWORD
// so it need not appear in shell history.
func passwordFlag(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw == "" {
		pw = envOr("PAGECRAFT_PASSWORD", "")
	}
	if pw == "" {
		return "", errors.New("password required (--password or PAGECRAFT_PASSWORD)")
	}
	return pw, nil
}

func printProfile(cmd *cobra.Command, u *models.User) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s id=%s\n", u.Username, u.Email, u.Role, u.ID)
}

func newRegisterCmd(a *app) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			u, err := a.api.Register(cmd.Context(), username, email, pw)
			if err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			printProfile(cmd, u)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().String("password", "", "password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			u, err := a.api.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			printProfile(cmd, u)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().String("password", "", "password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.api.Logout()
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd, u)
			return nil
		},
	}
}
