package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"debt-planner/database"

	"github.com/spf13/cobra"
)

var errNoDatabaseURL = errors.New("database url is not configured (set DATABASE_URL or database.url)")

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.URL == "" {
				return errNoDatabaseURL
			}
			return database.MigrateUp(a.cfg.Database.URL)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default one step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			if a.cfg.Database.URL == "" {
				return errNoDatabaseURL
			}
			return database.MigrateDown(a.cfg.Database.URL, steps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.URL == "" {
				return errNoDatabaseURL
			}
			status, err := database.MigrateStatus(a.cfg.Database.URL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !status.Applied {
				fmt.Fprintln(out, "no migrations applied")
				return nil
			}
			fmt.Fprintf(out, "version %d", status.Version)
			if status.Dirty {
				fmt.Fprint(out, " (dirty)")
			}
			fmt.Fprintln(out)
			return nil
		},
	})
	return cmd
}
