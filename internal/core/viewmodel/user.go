package viewmodel

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
)

// UserViewModel backs the sign-in, sign-up and profile screens.
type UserViewModel struct {
	uc       *usecases.UserUseCases
	scope    *Scope
	user     contentLoader[domain.User]
	save     saveMachine
	messages *Messages
	logger   *log.Logger
}

// NewUserViewModel loads the current user; without a session the content
// ends in LoadFailed.
func NewUserViewModel(ctx context.Context, uc *usecases.UserUseCases, logger *log.Logger) *UserViewModel {
	logger = logger.WithPrefix("user")
	scope := NewScope(ctx, logger)

	vm := &UserViewModel{
		uc:       uc,
		scope:    scope,
		user:     newContentLoader[domain.User](scope),
		save:     newSaveMachine(scope, logger),
		messages: NewMessages(),
		logger:   logger,
	}
	vm.Refresh()
	return vm
}

func (vm *UserViewModel) User() *Observable[ContentState[domain.User]] { return vm.user.state }
func (vm *UserViewModel) SaveState() *Observable[SaveState]            { return vm.save.state }
func (vm *UserViewModel) Messages() *Messages                          { return vm.messages }

func (vm *UserViewModel) Refresh() {
	vm.user.load("current user", vm.uc.GetCurrentUser.Execute)
}

func (vm *UserViewModel) SignIn(email, password string) bool {
	return submit(vm.save, "sign in", func(ctx context.Context) domain.Result[domain.Session] {
		return vm.uc.SignIn.Execute(ctx, email, password)
	}, func(domain.Session) { vm.Refresh() })
}

func (vm *UserViewModel) SignUp(email, password, name string) bool {
	return submit(vm.save, "sign up", func(ctx context.Context) domain.Result[string] {
		return vm.uc.SignUp.Execute(ctx, email, password, name)
	}, nil)
}

// Logout ends the session and reloads the user, which then fails.
func (vm *UserViewModel) Logout() bool {
	return vm.scope.Launch("logout", func(ctx context.Context) {
		res := guarded(ctx, vm.uc.Logout.Execute)
		if err := res.Err(); err != nil {
			vm.logger.Warn("logout failed", "err", err)
			vm.scope.apply(func() { vm.messages.Emit("Failed to log out: " + err.Message) })
			return
		}
		vm.Refresh()
	})
}

func (vm *UserViewModel) ResetSaveState() {
	vm.save.reset()
}

func (vm *UserViewModel) Wait() {
	vm.scope.Wait()
}

func (vm *UserViewModel) Close() {
	vm.scope.Close()
	vm.messages.close()
	vm.user.state.close()
	vm.save.state.close()
}
