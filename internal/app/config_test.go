package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverMemory, cfg.StorageDriver)
	}
	if !cfg.PostgresAutoMigrate {
		t.Error("expected PostgresAutoMigrate to be true")
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("unexpected postgres address %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if cfg.Postgres.PoolSize != 0 {
		t.Errorf("expected no pooling by default, got pool size %d", cfg.Postgres.PoolSize)
	}
	if cfg.OperationTimeout <= 0 {
		t.Error("expected OperationTimeout to be > 0")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverMemory, cfg.StorageDriver)
	}
	if cfg.Postgres.ConnectTimeout != 5*time.Second {
		t.Errorf("expected connect timeout 5s, got %s", cfg.Postgres.ConnectTimeout)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.yaml")
	content := []byte(`
storage:
  driver: postgres
postgres:
  host: db.internal
  port: 6432
  database: crm
  pool_size: 4
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PARTNERS_POSTGRES_PASSWORD", "from-env")
	t.Setenv("PARTNERS_POSTGRES_PORT", "7432")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverPostgres, cfg.StorageDriver)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Database != "crm" || cfg.Postgres.PoolSize != 4 {
		t.Errorf("file values not applied: %+v", cfg.Postgres)
	}
	if cfg.Postgres.Port != 7432 {
		t.Errorf("env must override file port, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.Password != "from-env" {
		t.Errorf("expected password from env, got %q", cfg.Postgres.Password)
	}
	if cfg.Postgres.User != "partners" {
		t.Errorf("expected default user, got %q", cfg.Postgres.User)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "memory", mutate: func(*Config) {}},
		{name: "postgres with conn config", mutate: func(c *Config) { c.StorageDriver = StorageDriverPostgres }},
		{name: "postgres with dsn only", mutate: func(c *Config) {
			c.StorageDriver = StorageDriverPostgres
			c.Postgres.Host = ""
			c.PostgresDSN = "postgres://u:p@localhost/db"
		}},
		{name: "postgres without host", mutate: func(c *Config) {
			c.StorageDriver = StorageDriverPostgres
			c.Postgres.Host = ""
		}, wantErr: true},
		{name: "unsupported driver", mutate: func(c *Config) { c.StorageDriver = "sqlite" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.OperationTimeout = -time.Second }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
