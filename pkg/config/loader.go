// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration for the current APP_ENV from ./configs, overlays
// environment variables, validates the result, and returns it together with
// the viper instance so callers can watch for file changes.
func Load() (*Config, *viper.Viper, error) {
	return LoadFrom("./configs")
}

// LoadFrom behaves like Load but reads the per-environment YAML file from dir.
func LoadFrom(dir string) (*Config, *viper.Viper, error) {
	// missing env files are fine; real deployments set variables directly
	_ = godotenv.Load(".env.local", ".env")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, env+".yaml"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = env
	applyDefaults(&cfg)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, v, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Timeout <= 0 {
		cfg.Bot.Timeout = 10 * time.Second
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.DB.SSLMode == "" {
		cfg.DB.SSLMode = "disable"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "text"
	}
	if cfg.Broadcast.RatePerSecond <= 0 {
		cfg.Broadcast.RatePerSecond = 20
	}
	if cfg.Broadcast.ActiveWindowDays <= 0 {
		cfg.Broadcast.ActiveWindowDays = 90
	}
	if cfg.RateLimit.PerUserLimit <= 0 {
		cfg.RateLimit.PerUserLimit = 20
	}
	if cfg.RateLimit.PerUserWindow <= 0 {
		cfg.RateLimit.PerUserWindow = 10 * time.Second
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
}
