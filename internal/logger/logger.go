package logger

import (
	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/config"
)

// New builds the process logger: JSON at info level in production,
// human-readable with debug output everywhere else. Every entry carries
// the environment name.
func New(cfg *config.Config) (*zap.Logger, error) {
	build := zap.NewDevelopment
	if cfg.Env == "production" {
		build = zap.NewProduction
	}

	log, err := build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("env", cfg.Env)), nil
}
