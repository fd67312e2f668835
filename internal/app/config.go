package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/partners/internal/storage/postgres"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"

	envPrefix = "PARTNERS"
)

// Config описывает настройки запуска partnerctl.
type Config struct {
	StorageDriver       string
	Postgres            postgres.ConnConfig
	PostgresDSN         string
	PostgresAutoMigrate bool
	SeedDemoData        bool
	LogLevel            string
	OperationTimeout    time.Duration
}

// DefaultConfig возвращает конфигурацию локального запуска.
func DefaultConfig() Config {
	return Config{
		StorageDriver:       StorageDriverMemory,
		Postgres:            postgres.DefaultConnConfig(),
		PostgresAutoMigrate: true,
		SeedDemoData:        true,
		LogLevel:            "info",
		OperationTimeout:    10 * time.Second,
	}
}

// LoadConfig читает конфигурацию.
// Приоритет: переменные окружения PARTNERS_*, файл path (если задан), значения по умолчанию.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
		Postgres: postgres.ConnConfig{
			Host:           v.GetString("postgres.host"),
			Port:           v.GetInt("postgres.port"),
			User:           v.GetString("postgres.user"),
			Password:       v.GetString("postgres.password"),
			Database:       v.GetString("postgres.database"),
			Charset:        v.GetString("postgres.charset"),
			SSLMode:        v.GetString("postgres.sslmode"),
			ConnectTimeout: v.GetDuration("postgres.connect_timeout"),
			PoolSize:       v.GetInt("postgres.pool_size"),
		},
		PostgresDSN:         strings.TrimSpace(v.GetString("postgres.dsn")),
		PostgresAutoMigrate: v.GetBool("postgres.auto_migrate"),
		SeedDemoData:        v.GetBool("storage.seed_demo_data"),
		LogLevel:            v.GetString("log.level"),
		OperationTimeout:    v.GetDuration("operation_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.driver", d.StorageDriver)
	v.SetDefault("storage.seed_demo_data", d.SeedDemoData)
	v.SetDefault("postgres.host", d.Postgres.Host)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.user", d.Postgres.User)
	v.SetDefault("postgres.password", d.Postgres.Password)
	v.SetDefault("postgres.database", d.Postgres.Database)
	v.SetDefault("postgres.charset", d.Postgres.Charset)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("postgres.connect_timeout", d.Postgres.ConnectTimeout)
	v.SetDefault("postgres.pool_size", d.Postgres.PoolSize)
	v.SetDefault("postgres.dsn", d.PostgresDSN)
	v.SetDefault("postgres.auto_migrate", d.PostgresAutoMigrate)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("operation_timeout", d.OperationTimeout)
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			if err := c.Postgres.Validate(); err != nil {
				return fmt.Errorf("invalid postgres config: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.OperationTimeout < 0 {
		return errors.New("operation timeout must be non-negative")
	}
	return nil
}
