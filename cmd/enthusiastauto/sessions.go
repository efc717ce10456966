package main

import (
	"fmt"
	"time"

	"github.com/magnetco/enthusiastauto-sub003/internal/database"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/spf13/cobra"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Maintain login sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			db, err := database.New(cfg, log, loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			srv := &server.Server{Config: cfg, Logger: log, LoggerService: loggerService, DB: db}

			deleted, err := repository.NewSessionRepository(srv).DeleteExpiredSessions(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			log.Info().Int64("deleted", deleted).Msg("expired sessions pruned")
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired sessions\n", deleted)
			return nil
		},
	})

	return cmd
}
