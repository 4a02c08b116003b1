package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	LogLevel    string
	Environment string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "invoicedesk",
		Short: "invoicedesk - invoicing dashboard backend",
		Long:  "Serves the invoicing dashboard, manages its schema and loads the demo data set.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.apply()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Environment, "env", "", "override ENVIRONMENT (development|production)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}

// apply hands flag overrides to the config loader through the environment.
func (o *RootOptions) apply() error {
	if level := strings.TrimSpace(o.LogLevel); level != "" {
		if err := os.Setenv("LOG_LEVEL", level); err != nil {
			return err
		}
	}
	if env := strings.TrimSpace(o.Environment); env != "" {
		if err := os.Setenv("ENVIRONMENT", env); err != nil {
			return err
		}
	}
	return nil
}
