package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/di"
)

// @title DailyPulse API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Critical: failed to start DailyPulse: %v\n", err)
		os.Exit(1)
	}

	logger := do.MustInvoke[*log.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("stop signal received, shutting down")

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", "err", err)
	}

	logger.Info("server stopped gracefully")
}
