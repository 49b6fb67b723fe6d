// Package di wires the API together with samber/do.
package di

import (
	"github.com/charmbracelet/log"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/config"
	"github.com/comitanigiacomo/dailypulse/internal/di/providers"
)

func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage
	do.Provide(injector, providers.ProvideDatabase)
	do.Provide(injector, providers.ProvideRedis)
	do.Provide(injector, providers.ProvideDocumentStore)
	do.Provide(injector, providers.ProvideImageUploader)

	// Auth and remote adapter
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideAuthProvider)
	do.Provide(injector, providers.ProvideRemoteClient)

	// Repositories and use-cases
	do.Provide(injector, providers.ProvideHabitsRepository)
	do.Provide(injector, providers.ProvidePostsRepository)
	do.Provide(injector, providers.ProvideUserRepository)
	do.Provide(injector, providers.ProvideHabitsUseCases)
	do.Provide(injector, providers.ProvidePostsUseCases)
	do.Provide(injector, providers.ProvideUserUseCases)

	// Workers
	do.Provide(injector, providers.ProvideReminderWorker)

	// Server
	do.Provide(injector, providers.ProvideRouter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap starts the reminder worker and the HTTP server. Everything they
// depend on is built on the way.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*log.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ReminderHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
