package observability

import (
	"github.com/danmuck/nbtarray/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global logger for a binary and returns it tagged
// with the app name.
func InitLogger(app string, cfg logging.Config) zerolog.Logger {
	logging.ApplyEnvOverrides(&cfg)
	logger := logging.New(cfg).With().Str("app", app).Logger()
	zerolog.SetGlobalLevel(cfg.Level)
	log.Logger = logger
	return logger
}
