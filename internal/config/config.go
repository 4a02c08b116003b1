package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/smallbiznis/invoicedesk/pkg/db"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr           string
	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBSlowThreshold   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ViewCacheTTL  time.Duration

	AutoMigrate bool
	SeedOnStart bool

	// ConfigFile is the file viper read from, empty when running on env only.
	ConfigFile string

	source *viper.Viper
}

// Load loads configuration from environment variables, the .env file and an
// optional invoicedesk.yml.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("invoicedesk")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/invoicedesk")
	v.AddConfigPath(".")

	// database.host <-> DATABASE_HOST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.service", "invoicedesk")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("environment", EnvDevelopment)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("cors.allowed.origins", "http://localhost:3000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.type", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "invoicedesk")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max.idle.conn", 5)
	v.SetDefault("database.max.open.conn", 20)
	v.SetDefault("database.conn.max.lifetime", 1800)
	v.SetDefault("database.conn.max.idle.time", 300)
	v.SetDefault("database.slow.threshold", "200ms")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("view.cache.ttl", "5m")

	v.SetDefault("auto.migrate", true)
	v.SetDefault("seed.on.start", false)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		AppName:            strings.TrimSpace(v.GetString("app.service")),
		AppVersion:         strings.TrimSpace(v.GetString("app.version")),
		Environment:        strings.ToLower(strings.TrimSpace(v.GetString("environment"))),
		HTTPAddr:           strings.TrimSpace(v.GetString("http.addr")),
		CORSAllowedOrigins: parseList(v.GetString("cors.allowed.origins")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		DBType:             strings.ToLower(strings.TrimSpace(v.GetString("database.type"))),
		DBHost:             v.GetString("database.host"),
		DBPort:             v.GetString("database.port"),
		DBName:             v.GetString("database.name"),
		DBUser:             v.GetString("database.user"),
		DBPassword:         v.GetString("database.password"),
		DBSSLMode:          v.GetString("database.sslmode"),
		DBMaxIdleConn:      v.GetInt("database.max.idle.conn"),
		DBMaxOpenConn:      v.GetInt("database.max.open.conn"),
		DBConnMaxLifetime:  v.GetInt("database.conn.max.lifetime"),
		DBConnMaxIdleTime:  v.GetInt("database.conn.max.idle.time"),
		DBSlowThreshold:    v.GetDuration("database.slow.threshold"),
		RedisAddr:          strings.TrimSpace(v.GetString("redis.addr")),
		RedisPassword:      v.GetString("redis.password"),
		RedisDB:            v.GetInt("redis.db"),
		ViewCacheTTL:       v.GetDuration("view.cache.ttl"),
		AutoMigrate:        v.GetBool("auto.migrate"),
		SeedOnStart:        v.GetBool("seed.on.start"),
		ConfigFile:         v.ConfigFileUsed(),
		source:             v,
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Database returns the persistence settings consumed by pkg/db.
func (c Config) Database() db.Config {
	return db.Config{
		Type:            c.DBType,
		Host:            c.DBHost,
		Port:            c.DBPort,
		Name:            c.DBName,
		User:            c.DBUser,
		Password:        c.DBPassword,
		SSLMode:         c.DBSSLMode,
		MaxIdleConn:     c.DBMaxIdleConn,
		MaxOpenConn:     c.DBMaxOpenConn,
		ConnMaxLifetime: time.Duration(c.DBConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(c.DBConnMaxIdleTime) * time.Second,
		SlowThreshold:   c.DBSlowThreshold,
	}
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
