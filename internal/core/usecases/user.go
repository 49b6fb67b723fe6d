package usecases

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

type SignIn struct {
	repo domain.UserRepository
}

func NewSignIn(repo domain.UserRepository) *SignIn {
	return &SignIn{repo: repo}
}

func (u *SignIn) Execute(ctx context.Context, email, password string) domain.Result[domain.Session] {
	return u.repo.SignIn(ctx, email, password)
}

type SignUp struct {
	repo domain.UserRepository
}

func NewSignUp(repo domain.UserRepository) *SignUp {
	return &SignUp{repo: repo}
}

func (u *SignUp) Execute(ctx context.Context, email, password, name string) domain.Result[string] {
	return u.repo.SignUp(ctx, email, password, name)
}

type Logout struct {
	repo domain.UserRepository
}

func NewLogout(repo domain.UserRepository) *Logout {
	return &Logout{repo: repo}
}

func (u *Logout) Execute(ctx context.Context) domain.Result[struct{}] {
	return u.repo.Logout(ctx)
}

type GetCurrentUser struct {
	repo domain.UserRepository
}

func NewGetCurrentUser(repo domain.UserRepository) *GetCurrentUser {
	return &GetCurrentUser{repo: repo}
}

func (u *GetCurrentUser) Execute(ctx context.Context) domain.Result[domain.User] {
	return u.repo.CurrentUser(ctx)
}

type UserUseCases struct {
	SignIn         *SignIn
	SignUp         *SignUp
	Logout         *Logout
	GetCurrentUser *GetCurrentUser
}

func NewUserUseCases(repo domain.UserRepository) *UserUseCases {
	return &UserUseCases{
		SignIn:         NewSignIn(repo),
		SignUp:         NewSignUp(repo),
		Logout:         NewLogout(repo),
		GetCurrentUser: NewGetCurrentUser(repo),
	}
}
