// Package services holds the client's application services: sign-in and
// session housekeeping, and offline-aware submission of user actions.
package services

import (
	"context"
	"fmt"

	"github.com/nyaysetu/nyaysetu-client/internal/client/api"
	"github.com/nyaysetu/nyaysetu-client/internal/client/session"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
)

// AuthAPI is the subset of api.Auth the service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, r api.Registration) error
	Me(ctx context.Context) (*session.User, error)
}

// HealthAPI is satisfied by api.System.
type HealthAPI interface {
	Health(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist token and user.
//   - Register: create an account; does not sign in.
//   - Logout: destroy the local session.
//   - Current: the signed-in user, or common.ErrNoSession.
//   - Refresh: re-read the user from the backend and store it.
//   - Claims: what the stored token says about itself (unverified).
//   - Ping: backend liveness.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*session.User, error)
	Register(ctx context.Context, r api.Registration) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*session.User, error)
	Refresh(ctx context.Context) (*session.User, error)
	Claims(ctx context.Context) (session.Claims, error)
	Ping(ctx context.Context) error
}

type authService struct {
	auth     AuthAPI
	health   HealthAPI
	sessions *session.Store
}

func NewAuthService(auth AuthAPI, health HealthAPI, sessions *session.Store) AuthService {
	return &authService{auth: auth, health: health, sessions: sessions}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*session.User, error) {
	res, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.sessions.Save(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	u := res.User
	return &u, nil
}

func (a *authService) Register(ctx context.Context, r api.Registration) error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrInvalidArgument)
	}
	return a.auth.Register(ctx, r)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*session.User, error) {
	return a.sessions.User(ctx)
}

func (a *authService) Refresh(ctx context.Context) (*session.User, error) {
	token, ok := a.sessions.Token(ctx)
	if !ok {
		return nil, common.ErrNoSession
	}
	u, err := a.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.Save(ctx, token, *u); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

func (a *authService) Claims(ctx context.Context) (session.Claims, error) {
	token, ok := a.sessions.Token(ctx)
	if !ok {
		return session.Claims{}, common.ErrNoSession
	}
	return session.Inspect(token)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.health.Health(ctx)
}
