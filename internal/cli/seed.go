package cli

import (
	"context"
	"fmt"

	"github.com/smallbiznis/invoicedesk/internal/migration"
	"github.com/smallbiznis/invoicedesk/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewSeedCommand() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo data set; safe to run repeatedly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), func(ctx context.Context, conn *gorm.DB, log *zap.Logger) error {
				if !skipMigrate {
					if err := migration.Apply(ctx, conn, log.Named("migration")); err != nil {
						return err
					}
				}
				summary, err := seed.Run(ctx, conn, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database seeded successfully: %d users, %d customers, %d invoices, %d revenue rows inserted\n",
					summary.Users, summary.Customers, summary.Invoices, summary.Revenue)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "assume the schema already exists")
	return cmd
}
