package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pagecraft/internal/models"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scope: %s\n", s.Scope)
			if s.Users != nil {
				fmt.Fprintf(out, "users: %d\n", *s.Users)
			}
			fmt.Fprintf(out, "content: %d (draft %d, published %d)\n",
				s.Content.Total, s.Content.ByStatus.Draft, s.Content.ByStatus.Published)
			return nil
		},
	}
}

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator commands",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show platform analytics as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.api.AdminStats(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, s)
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := a.api.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tROLE\tUSERNAME\tEMAIL")
				for _, u := range users {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Role, u.Username, u.Email)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "set-role <id> <user|admin>",
			Short: "Change the role of an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := a.api.SetRole(cmd.Context(), args[0], models.Role(args[1]))
				if err != nil {
					return err
				}
				printProfile(cmd, u)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete-user <id>",
			Short: "Delete an account, keeping its content",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := a.api.DeleteUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
				return nil
			},
		},
	)
	return cmd
}
