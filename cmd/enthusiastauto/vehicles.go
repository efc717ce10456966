package main

import (
	"errors"
	"fmt"

	"github.com/magnetco/enthusiastauto-sub003/internal/database"
	"github.com/magnetco/enthusiastauto-sub003/internal/inventory"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/utils"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/spf13/cobra"
)

func vehiclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "Manage the inventory mirror",
	}
	cmd.AddCommand(vehiclesImportCmd())
	return cmd
}

func vehiclesImportCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert vehicles from a CMS export (YAML or JSON)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			vehicles, err := inventory.LoadFile(file)
			if err != nil {
				return err
			}

			if dryRun {
				utils.PrintJSON(vehicles)
				return nil
			}

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

			res, err := inventory.Import(cmd.Context(), repository.NewVehicleRepository(srv), log, vehicles)
			if err != nil {
				return fmt.Errorf("import stopped after %d created, %d updated: %w", res.Created, res.Updated, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d vehicles (%d new, %d updated)\n", len(vehicles), res.Created, res.Updated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the export file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed vehicles without writing")
	return cmd
}
