package providers

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/auth"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/remote"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/repository"
	"github.com/comitanigiacomo/dailypulse/internal/config"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/core/workers"
)

func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	store := do.MustInvoke[domain.DocumentStore](i)

	return auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, store), nil
}

func ProvideAuthProvider(i do.Injector) (*auth.Provider, error) {
	store := do.MustInvoke[domain.DocumentStore](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	return auth.NewRequestScopedProvider(store, tokens), nil
}

func ProvideRemoteClient(i do.Injector) (*remote.Client, error) {
	store := do.MustInvoke[domain.DocumentStore](i)
	provider := do.MustInvoke[*auth.Provider](i)
	logger := do.MustInvoke[*log.Logger](i)

	return remote.NewClient(store, provider, remote.WithLogger(logger)), nil
}

func ProvideHabitsRepository(i do.Injector) (domain.HabitsRepository, error) {
	return repository.NewRemoteHabitsRepository(do.MustInvoke[*remote.Client](i)), nil
}

func ProvidePostsRepository(i do.Injector) (domain.PostsRepository, error) {
	return repository.NewRemotePostsRepository(do.MustInvoke[*remote.Client](i)), nil
}

func ProvideUserRepository(i do.Injector) (domain.UserRepository, error) {
	return repository.NewRemoteUserRepository(do.MustInvoke[*remote.Client](i)), nil
}

func ProvideHabitsUseCases(i do.Injector) (*usecases.HabitsUseCases, error) {
	return usecases.NewHabitsUseCases(
		do.MustInvoke[domain.HabitsRepository](i),
		do.MustInvoke[domain.PostsRepository](i),
	), nil
}

func ProvidePostsUseCases(i do.Injector) (*usecases.PostsUseCases, error) {
	return usecases.NewPostsUseCases(
		do.MustInvoke[domain.PostsRepository](i),
		do.MustInvoke[domain.ImageUploader](i),
	), nil
}

func ProvideUserUseCases(i do.Injector) (*usecases.UserUseCases, error) {
	return usecases.NewUserUseCases(do.MustInvoke[domain.UserRepository](i)), nil
}

// ReminderHandle runs the daily reminder worker until shutdown.
type ReminderHandle struct {
	*workers.ReminderWorker
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ReminderHandle) Shutdown() error {
	h.cancel()
	return nil
}

func ProvideReminderWorker(i do.Injector) (*ReminderHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)
	client := do.MustInvoke[*remote.Client](i)
	habits := do.MustInvoke[*usecases.HabitsUseCases](i)

	worker := workers.NewReminderWorker(
		client,
		habits.GetHabits,
		workers.NewLogNotifier(logger),
		workers.ReminderConfig{
			Hour:     cfg.ReminderHour,
			Retry:    cfg.ReminderRetry,
			Location: cfg.ReminderLocation,
		},
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	return &ReminderHandle{ReminderWorker: worker, cancel: cancel}, nil
}
