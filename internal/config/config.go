package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig selects the driver store implementation.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns URL when set, otherwise a key/value DSN built from the parts.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// bindings maps viper keys to the environment variables that set them.
var bindings = map[string]string{
	"server.port":          "PORT",
	"server.read_timeout":  "SERVER_READ_TIMEOUT",
	"server.write_timeout": "SERVER_WRITE_TIMEOUT",
	"store.driver":         "STORE_DRIVER",
	"database.url":         "DATABASE_URL",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.user":        "DB_USER",
	"database.password":    "DB_PASSWORD",
	"database.name":        "DB_NAME",
	"database.sslmode":     "DB_SSLMODE",
	"redis.enabled":        "REDIS_ENABLED",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"newrelic.enabled":     "NEW_RELIC_ENABLED",
	"newrelic.license_key": "NEW_RELIC_LICENSE_KEY",
	"newrelic.app_name":    "NEW_RELIC_APP_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3333")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("store.driver", StorePostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "drivers")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("newrelic.enabled", false)
	v.SetDefault("newrelic.license_key", "")
	v.SetDefault("newrelic.app_name", "driver-bot-api")
}

// Load reads configuration from the environment and, when path is not
// empty, from a config file. Environment variables take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		NewRelic: NewRelicConfig{
			AppName:    v.GetString("newrelic.app_name"),
			LicenseKey: v.GetString("newrelic.license_key"),
			Enabled:    v.GetBool("newrelic.enabled"),
		},
	}

	switch cfg.Store.Driver {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}
