package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AppPort:    "8080",
		DBDriver:   "mysql",
		MySQLHost:  "localhost",
		MySQLPort:  "3306",
		MySQLDB:    "paylite",
		MySQLUser:  "paylite",
		RedisAddr:  "localhost:6379",
		IdempTTL:   time.Minute,
		JWTSecret:  "0123456789abcdef",
		TokenTTL:   time.Hour,
		BcryptCost: 10,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8080" || c.DBDriver != "mysql" || c.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.IdempTTL != 5*time.Minute || c.TokenTTL != 24*time.Hour || c.PaymentDelay != time.Second {
		t.Fatalf("unexpected duration defaults: %+v", c)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL", "30s")
	t.Setenv("PAYMENT_DELAY", "0s")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9090" || c.DBDriver != "sqlite" || c.RedisDB != 3 {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.IdempTTL != 30*time.Second || c.PaymentDelay != 0 {
		t.Fatalf("durations not applied: %+v", c)
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "app_port: \"7070\"\njwt_secret: from-file-secret-123\nlog_format: console\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_FORMAT", "json")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "7070" || c.JWTSecret != "from-file-secret-123" {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.LogFormat != "json" {
		t.Fatalf("env should win over file, got %q", c.LogFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "notaport" }, "MYSQL_PORT"},
		{"postgres without dsn", func(c *Config) { c.DBDriver = "postgres" }, "POSTGRES_DSN"},
		{"sqlite ok", func(c *Config) { c.DBDriver = "sqlite"; c.SQLitePath = ":memory:" }, ""},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "unsupported"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"bcrypt cost", func(c *Config) { c.BcryptCost = 2 }, "BCRYPT_COST"},
		{"negative delay", func(c *Config) { c.LoanDelay = -time.Second }, "delays"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := validConfig()
	if got := c.DSN(); !strings.HasPrefix(got, "paylite:@tcp(localhost:3306)/paylite?") {
		t.Fatalf("mysql dsn = %q", got)
	}
	c.DBDriver, c.PostgresDSN = "postgres", "postgres://x"
	if c.DSN() != "postgres://x" {
		t.Fatalf("postgres dsn = %q", c.DSN())
	}
	c.DBDriver, c.SQLitePath = "sqlite", "/tmp/p.db"
	if c.DSN() != "/tmp/p.db" {
		t.Fatalf("sqlite dsn = %q", c.DSN())
	}
}
