package observability

import (
	"github.com/smallbiznis/invoicedesk/internal/config"
	"github.com/smallbiznis/invoicedesk/internal/observability/logger"
	"github.com/smallbiznis/invoicedesk/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		provideLoggerConfig,
		logger.New,
		provideMetricsConfig,
		metrics.NewRegistry,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(watchLogLevel),
)

func provideLoggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		Debug:               cfg.Debug(),
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{Namespace: cfg.ServiceName}
}

// watchLogLevel applies log.level edits from the config file without a restart.
func watchLogLevel(cfg config.Config, level zap.AtomicLevel, log *zap.Logger) {
	watching := cfg.OnChange(func(updated config.Config) {
		next, err := logger.ParseLevel(updated.LogLevel)
		if err != nil {
			log.Warn("ignoring invalid log level from config file", zap.Error(err))
			return
		}
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		log.Info("log level reloaded", zap.String("level", next.String()))
	})
	if watching {
		log.Debug("watching config file", zap.String("path", cfg.ConfigFile))
	}
}
