// Package session owns the Session Credential: the bearer token and the
// signed-in user's identity record, persisted in the client's KV store.
//
// The HTTP client only ever reads the token, through CredentialProvider.
// Writes happen in the auth flow (login/logout).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

// User is the identity record stored next to the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// CredentialProvider supplies the bearer token for outgoing requests.
// ok is false when no usable token exists.
type CredentialProvider interface {
	Token(ctx context.Context) (token string, ok bool)
}

// SanitizeToken trims raw and rejects the values that mean "no token":
// the empty string and the stringified-null artifacts "null" and "undefined".
func SanitizeToken(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	switch t {
	case "", "null", "undefined":
		return "", false
	}
	return t, true
}

// Static is a fixed token, for tests and service accounts.
type Static string

func (s Static) Token(context.Context) (string, bool) {
	return SanitizeToken(string(s))
}

// Store is the default CredentialProvider, backed by the persistent KV store.
type Store struct {
	kv  kvstore.Store
	log logging.Logger
}

var _ CredentialProvider = (*Store)(nil)

func NewStore(kv kvstore.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: kv, log: log.With("component", "session")}
}

// Token reads the current token. A storage failure is logged and treated
// as "no token" so that requests proceed unauthenticated.
func (s *Store) Token(ctx context.Context) (string, bool) {
	raw, err := s.kv.Get(ctx, common.TokenKey)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			s.log.Warn(ctx, "token read failed", "error", err)
		}
		return "", false
	}
	return SanitizeToken(raw)
}

// User returns the stored identity record, or common.ErrNoSession.
func (s *Store) User(ctx context.Context) (*User, error) {
	raw, err := s.kv.Get(ctx, common.UserKey)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return nil, common.ErrNoSession
		}
		return nil, err
	}
	if _, ok := SanitizeToken(raw); !ok {
		return nil, common.ErrNoSession
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

// Save persists token and user together.
func (s *Store) Save(ctx context.Context, token string, u User) error {
	t, ok := SanitizeToken(token)
	if !ok {
		return fmt.Errorf("%w: empty session token", common.ErrInvalidArgument)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.kv.SetMany(ctx, map[string]string{
		common.TokenKey: t,
		common.UserKey:  string(b),
	})
}

// Clear destroys the session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, common.TokenKey, common.UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Active reports whether a usable token is stored.
func (s *Store) Active(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// IsNoSession reports whether err means nobody is signed in.
func IsNoSession(err error) bool {
	return errors.Is(err, common.ErrNoSession)
}
