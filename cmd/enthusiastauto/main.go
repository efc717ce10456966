package main

import (
	"fmt"
	"os"

	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultContextTimeout = 30

func main() {
	root := &cobra.Command{
		Use:           "enthusiastauto",
		Short:         "Enthusiast Auto storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		migrateCmd(),
		vehiclesCmd(),
		sessionsCmd(),
		emailsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config and builds the process logger. The returned cleanup
// flushes New Relic.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, loggerService.Shutdown, nil
}
