package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func isolate(t *testing.T) {
	t.Helper()
	prev := EnvPath
	EnvPath = t.TempDir()
	t.Cleanup(func() { EnvPath = prev })
}

func TestLoadDBConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("LoadDBConfig: %v", err)
	}
	if cfg.Driver != DriverPostgres || cfg.Port != 5432 || cfg.ConnMaxLifeTime != 30 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	want := "host=postgres user=marketplace password=marketplace dbname=marketplace_db port=5432 sslmode=disable TimeZone=Asia/Kolkata"
	if cfg.DSN() != want {
		t.Fatalf("DSN = %q", cfg.DSN())
	}
}

func TestLoadDBConfig_EnvOverridesAndDriverCheck(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("DB_SQLITE_PATH", "/tmp/m.db")

	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("LoadDBConfig: %v", err)
	}
	if cfg.Driver != DriverSQLite || cfg.SQLitePath != "/tmp/m.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("DB_DRIVER", "oracle")
	if _, err := LoadDBConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadAppConfig_RequiresSecret(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadAppConfig(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "short")
	if _, err := LoadAppConfig(); err == nil {
		t.Fatalf("expected error for a short JWT_SECRET")
	}
}

func TestLoadAppConfig_FromEnvFile(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "")
	env := "JWT_SECRET=" + testSecret + "\nOTP_TTL_MIN=5\nLOG_LEVEL=debug\nAPP_TIMEZONE=UTC\n"
	if err := os.WriteFile(filepath.Join(EnvPath, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.OTPTTL() != 5*time.Minute || cfg.JWTTTL() != 24*time.Hour {
		t.Fatalf("ttl otp=%s jwt=%s", cfg.OTPTTL(), cfg.JWTTTL())
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("level = %s", cfg.SlogLevel())
	}
	if cfg.GRPCAddr != ":50051" || cfg.NotifyExchange != "marketplace.notifications" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("Location = %v, %v", loc, err)
	}
}

func TestAppConfig_RejectsUnknownTimezone(t *testing.T) {
	cfg := &AppConfig{JWTSecret: testSecret, OTPTTLMin: 10, OTPMaxAttempts: 5, Timezone: "Mars/Olympus"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
