package migration

import (
	"context"

	"github.com/smallbiznis/invoicedesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB, cfg config.Config, log *zap.Logger) {
		if !cfg.AutoMigrate {
			return
		}
		log = log.Named("migration")
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return Apply(ctx, conn, log)
			},
		})
	}),
)
