package config

import (
	"github.com/smallbiznis/invoicedesk/pkg/db"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(
		Load,
		func(cfg Config) db.Config { return cfg.Database() },
	),
)
