package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the Xum Ayron bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Bot       BotConfig       `mapstructure:"bot" validate:"required"`
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db" validate:"required"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Export    ExportConfig    `mapstructure:"export"`
}

// BotConfig configures the Telegram transport and the admin secret.
type BotConfig struct {
	Token         string        `mapstructure:"token" validate:"required"`
	AdminPassword string        `mapstructure:"admin_password" validate:"required"`
	Mode          string        `mapstructure:"mode"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP surface (metrics, health).
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DBConfig configures the PostgreSQL connection.
type DBConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LoggerConfig configures structured logging output.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// BroadcastConfig configures broadcast fan-out pacing and the activity window.
type BroadcastConfig struct {
	RatePerSecond    float64 `mapstructure:"rate_per_second" validate:"gte=0"`
	ActiveWindowDays int     `mapstructure:"active_window_days" validate:"gte=1"`
}

// RateLimitConfig configures inbound per-user rate limits.
type RateLimitConfig struct {
	PerUserLimit  int           `mapstructure:"per_user_limit" validate:"gte=1"`
	PerUserWindow time.Duration `mapstructure:"per_user_window"`
}

// ExportConfig configures where generated files are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// DSN returns a PostgreSQL connection string based on config values.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}
