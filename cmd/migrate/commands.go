package main

import (
	"github.com/spf13/cobra"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/database"
)

// gooseCommand builds a subcommand that forwards to the goose command of the
// same name.
func gooseCommand(name, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(cmd.Context(), dsn, name, args...); err != nil {
				return err
			}
			logger.Info().Str("command", name).Msg("migration finished")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		gooseCommand("up", "Apply all pending migrations", cobra.NoArgs),
		gooseCommand("up-to", "Apply migrations up to a version", cobra.ExactArgs(1)),
		gooseCommand("down", "Roll back the latest migration", cobra.NoArgs),
		gooseCommand("redo", "Roll back and re-apply the latest migration", cobra.NoArgs),
		gooseCommand("status", "Print the status of every migration", cobra.NoArgs),
		gooseCommand("version", "Print the current schema version", cobra.NoArgs),
	)
}
