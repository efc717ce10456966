package main

import (
	"github.com/magnetco/enthusiastauto-sub003/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var to int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Migrate to the latest schema version, or to --to when given (0 rolls everything back).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, _, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			return database.Migrate(cmd.Context(), log, cfg, to)
		},
	}

	cmd.Flags().Int32Var(&to, "to", -1, "target schema version, latest when negative")
	return cmd
}
