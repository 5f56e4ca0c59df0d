package api

import (
	"context"
	"net/http"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/session"
)

type Auth struct {
	d Doer
}

type LoginResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (a Auth) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := httpclient.JSON{Value: map[string]string{"email": email, "password": password}}
	if err := call(ctx, a.d, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a Auth) Register(ctx context.Context, r Registration) error {
	return call(ctx, a.d, http.MethodPost, "/api/auth/register", httpclient.JSON{Value: r}, nil)
}

func (a Auth) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := call(ctx, a.d, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
