// Package providers contains the dependency injection providers of the API.
package providers

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/config"
	"github.com/comitanigiacomo/dailypulse/internal/logger"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
)

const shutdownTimeout = 5 * time.Second

func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

func ProvideLogger(i do.Injector) (*log.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	l := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	if !cfg.DotEnvLoaded {
		l.Debug("no .env file found, using environment only")
	}
	l.Info("starting DailyPulse",
		"environment", cfg.Env,
		"log_level", cfg.LogLevel,
		"port", cfg.Port,
	)

	return l, nil
}

func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
