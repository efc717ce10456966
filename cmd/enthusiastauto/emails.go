package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/email"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func emailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emails",
		Short: "Work with transactional email templates",
	}
	cmd.AddCommand(emailsPreviewCmd())
	return cmd
}

// emailsPreviewCmd renders every template with sample data. It needs no
// config or network access.
func emailsPreviewCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render each email template to an HTML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zerolog.Nop()
			client, err := email.NewClient(&config.Config{}, &logger)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}

			for _, name := range email.Templates {
				body, err := client.Render(name, email.PreviewData[name])
				if err != nil {
					return err
				}
				path := filepath.Join(out, string(name)+".html")
				if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "email-preview", "directory to write the rendered files to")
	return cmd
}
