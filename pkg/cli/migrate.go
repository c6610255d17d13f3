package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TechXTT/ydbc/pkg/migrate"
)

// NewMigrateCmd builds the `migrate` command.
func NewMigrateCmd(g *globalOptions) *cobra.Command {
	var migrations string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := g.connect(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			dir := a.cfg.MigrationsDir
			if cmd.Flags().Changed("dir") {
				dir = migrations
			}
			mgr, err := migrate.NewManager(a.conn, dir, a.logger)
			if err != nil {
				return err
			}

			switch args[0] {
			case "up":
				return mgr.Up(ctx)
			case "down":
				return mgr.Down(ctx)
			case "status":
				status, err := mgr.Status(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&migrations, "dir", "migrations", "Migrations directory, overrides the config")
	return cmd
}
