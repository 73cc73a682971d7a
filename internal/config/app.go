package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds everything except the database settings.
type AppConfig struct {
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTTTLMin int    `mapstructure:"JWT_TTL_MIN"`

	OTPTTLMin      int `mapstructure:"OTP_TTL_MIN"`
	OTPMaxAttempts int `mapstructure:"OTP_MAX_ATTEMPTS"`

	AMQPURL        string `mapstructure:"AMQP_URL"`
	NotifyExchange string `mapstructure:"NOTIFY_EXCHANGE"`

	OTPPurgeSchedule      string `mapstructure:"OTP_PURGE_SCHEDULE"`
	BookingCodeMaxRetries int    `mapstructure:"BOOKING_CODE_MAX_RETRIES"`

	// Часовой пояс, в котором заданы рабочие часы исполнителей.
	Timezone string `mapstructure:"APP_TIMEZONE"`
}

func setAppDefaults(v *viper.Viper) {
	v.SetDefault("GRPC_ADDR", ":50051")
	v.SetDefault("HTTP_ADDR", ":9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL_MIN", 24*60)
	v.SetDefault("OTP_TTL_MIN", 10)
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("NOTIFY_EXCHANGE", "marketplace.notifications")
	v.SetDefault("OTP_PURGE_SCHEDULE", "@every 15m")
	v.SetDefault("BOOKING_CODE_MAX_RETRIES", 5)
	v.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
}

// LoadAppConfig reads the service settings from the environment.
func LoadAppConfig() (*AppConfig, error) {
	v := newViper()
	setAppDefaults(v)
	if err := readEnvFile(v); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}
	if c.OTPTTLMin <= 0 || c.OTPMaxAttempts <= 0 {
		return errors.New("OTP_TTL_MIN and OTP_MAX_ATTEMPTS must be positive")
	}
	if c.BookingCodeMaxRetries <= 0 {
		c.BookingCodeMaxRetries = 1
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves APP_TIMEZONE; empty means UTC.
func (c *AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c *AppConfig) JWTTTL() time.Duration { return time.Duration(c.JWTTTLMin) * time.Minute }
func (c *AppConfig) OTPTTL() time.Duration { return time.Duration(c.OTPTTLMin) * time.Minute }

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
