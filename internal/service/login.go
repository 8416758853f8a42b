package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/lib/chain"
	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/repository"
)

// Authenticator signs a user in with email and password.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.AuthResult, error)
}

type LoginService struct {
	profiles repository.ProfileStore
	auth     Authenticator
}

func NewLoginService(profiles repository.ProfileStore, auth Authenticator) *LoginService {
	return &LoginService{profiles: profiles, auth: auth}
}

type loginState struct {
	username string
	password string

	profile *models.Profile
	result  *models.AuthResult
}

// Login resolves the username to a profile, refuses inactive accounts and
// then authenticates with the profile's email.
//
// The client only ever sees one of three 401 messages; the underlying cause
// is logged.
func (s *LoginService) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	state := &loginState{username: username, password: password}

	err := chain.Run(ctx, state,
		chain.Step[loginState]{Name: "resolve-identity", Run: s.resolveIdentity},
		chain.Step[loginState]{Name: "check-active", Run: s.checkActive},
		chain.Step[loginState]{Name: "authenticate", Run: s.authenticate},
	)
	if err != nil {
		return nil, err
	}

	return state.result, nil
}

func (s *LoginService) resolveIdentity(ctx context.Context, state *loginState) error {
	profile, err := s.profiles.FindProfileByUsername(ctx, state.username)
	if err != nil || profile == nil {
		event := zerolog.Ctx(ctx).Error()
		if err == nil || errors.Is(err, repository.ErrProfileNotFound) {
			event = zerolog.Ctx(ctx).Warn()
		}
		event.Err(err).Str("username", state.username).Msg("profile lookup failed")
		return errs.NewUserNotFoundError()
	}

	state.profile = profile
	return nil
}

func (s *LoginService) checkActive(ctx context.Context, state *loginState) error {
	if !state.profile.Active() {
		zerolog.Ctx(ctx).Warn().Str("username", state.username).Msg("inactive profile tried to sign in")
		return errs.NewInactiveAccountError()
	}
	return nil
}

func (s *LoginService) authenticate(ctx context.Context, state *loginState) error {
	result, err := s.auth.SignInWithPassword(ctx, state.profile.Email, state.password)
	if err != nil || !result.HasSession() {
		zerolog.Ctx(ctx).Warn().Err(err).Str("username", state.username).Msg("sign-in rejected")
		return errs.NewInvalidCredentialsError()
	}

	state.result = result
	return nil
}
