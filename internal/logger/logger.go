package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/config"
)

// New returns a production logger for env=production and a development
// logger otherwise. Verbose enables debug output in production too.
func New(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if cfg.Env == "production" {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		return zc.Build()
	}

	zc := zap.NewDevelopmentConfig()
	if !verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zc.Build()
}
