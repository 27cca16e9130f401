package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads the logger section whenever the config file changes on disk
// and hands it to onChange. Only logging settings are hot-reloadable; the bot
// credential, admin secret, and DB settings require a restart.
func Watch(v *viper.Viper, log *slog.Logger, onChange func(LoggerConfig)) {
	if v == nil || onChange == nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if log != nil {
			log.Info("config file changed", slog.String("file", e.Name), slog.String("op", e.Op.String()))
		}

		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			if log != nil {
				log.Error("failed to reload config", slog.Any("error", err))
			}
			return
		}

		onChange(cfg.Logger)
	})
	v.WatchConfig()
}
