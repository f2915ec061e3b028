// Package auth wraps the external identity provider. The provider owns sign-in
// and token minting; this package only carries the resulting bearer token and
// decodes display identity out of it.
package auth

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenSource supplies the current bearer token for outgoing requests.
// Implementations may refresh tokens under the hood; callers treat every
// Token call as potentially remote and pass their context through.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token, as supplied by configuration or an
// external login flow that already completed.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	return s.token, nil
}

// User is the display identity attached to a session. All fields are optional;
// the provider decides which claims it mints.
type User struct {
	Subject string
	Name    string
	Email   string
	Photo   string
}

// Session is the nullable identity consumed by clients and views. A nil source
// (or an empty token) means anonymous: requests go out without credentials and
// actions that require an identity are refused locally.
type Session struct {
	source TokenSource
}

func NewSession(source TokenSource) *Session {
	return &Session{source: source}
}

// Anonymous returns a session with no identity.
func Anonymous() *Session {
	return &Session{}
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Session) Token(ctx context.Context) (string, error) {
	if s == nil || s.source == nil {
		return "", nil
	}
	return s.source.Token(ctx)
}

// SignedIn reports whether the session currently holds a token.
func (s *Session) SignedIn(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// CurrentUser decodes the display identity from the bearer token's claims.
// The token is NOT verified here: verification is the server's job, the client
// only needs the claims for display.
func (s *Session) CurrentUser(ctx context.Context) (*User, error) {
	raw, err := s.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain token: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	user := &User{}
	if sub, ok := token.Subject(); ok {
		user.Subject = sub
	}
	// Optional display claims; absence is not an error.
	_ = token.Get("name", &user.Name)
	_ = token.Get("email", &user.Email)
	_ = token.Get("picture", &user.Photo)
	return user, nil
}
