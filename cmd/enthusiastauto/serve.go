package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magnetco/enthusiastauto-sub003/internal/database"
	"github.com/magnetco/enthusiastauto-sub003/internal/handler"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
	"github.com/magnetco/enthusiastauto-sub003/internal/router"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the email workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			if migrate {
				if err := database.Migrate(cmd.Context(), log, cfg, -1); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
			}

			srv, err := server.New(cfg, log, loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			repos := repository.NewRepositories(srv)
			services, err := service.NewServices(srv, repos)
			if err != nil {
				return fmt.Errorf("could not create services: %w", err)
			}

			handlers := handler.NewHandlers(srv, services)
			r := router.NewRouter(srv, handlers, services)
			srv.SetupHTTPServer(r)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				log.Error().Err(err).Msg("server stopped unexpectedly")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before starting")
	return cmd
}
