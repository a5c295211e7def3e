// Package session holds the client's record of the authenticated user: the
// bearer token and the identity decoded from it. The session is the only
// state shared between screens; it is mutated exclusively by login, logout
// and restore, all of which are user-gesture driven.
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/cookieshop/storefront/gate"
	errs "github.com/cookieshop/storefront/internal/errors"
)

// State is the session lifecycle phase.
type State string

const (
	// StateUninitialized means Restore has not run yet
	StateUninitialized State = "uninitialized"
	// StateAuthenticated means a token is held and an identity is decoded
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated means there is no usable token
	StateUnauthenticated State = "unauthenticated"
)

// AuthAPI is the slice of the backend the session needs: the login and
// registration endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, secret string) (token string, err error)
	Register(ctx context.Context, email, secret string) error
}

// Session pairs the bearer token with the identity decoded from its payload.
// Invariant: the identity is non-nil iff the token is non-empty iff the
// state is StateAuthenticated.
type Session struct {
	authAPI AuthAPI
	store   Store
	log     zerolog.Logger

	state    State
	token    string
	identity *Identity
}

// Option modifies a Session at construction time.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New creates an uninitialized session. Call Restore to pick up a persisted
// token, or Login to authenticate.
func New(authAPI AuthAPI, store Store, options ...Option) (*Session, error) {
	if authAPI == nil {
		return nil, errors.New("[session.New] authAPI is required")
	}
	if store == nil {
		return nil, errors.New("[session.New] store is required")
	}

	s := &Session{
		authAPI: authAPI,
		store:   store,
		log:     zerolog.Nop(),
		state:   StateUninitialized,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

var _ gate.Session = (*Session)(nil)

// Restore loads a previously persisted token, the page-load analog. A
// missing or malformed token leaves the session unauthenticated and requires
// a fresh login; it is never an error worth surfacing.
func (s *Session) Restore() {
	token, err := s.store.Get(TokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session store unreadable")
		s.clear()
		return
	}
	if token == "" {
		s.clear()
		return
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		s.log.Warn().Err(err).Msg("persisted token is malformed, discarding")
		if err := s.store.Delete(TokenKey); err != nil {
			s.log.Warn().Err(err).Msg("could not remove malformed token")
		}
		s.clear()
		return
	}

	s.state = StateAuthenticated
	s.token = token
	s.identity = identity
	s.log.Debug().Str("email", identity.Email).Msg("session restored")
}

// Login authenticates against the backend and, on success, stores the token
// and the identity decoded from it. On failure the session is left exactly
// as it was and the error carries the user-facing message.
func (s *Session) Login(ctx context.Context, email, secret string) error {
	token, err := s.authAPI.Login(ctx, email, secret)
	if err != nil {
		return errs.Wrapf(err, "login")
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		// The backend accepted the credentials but returned something the
		// client cannot read. Treat as unauthenticated and require re-login.
		return errs.Wrapf(err, "decode login token")
	}

	s.state = StateAuthenticated
	s.token = token
	s.identity = identity

	if err := s.store.Set(TokenKey, token); err != nil {
		// The session itself is valid; it just won't survive a restart.
		s.log.Warn().Err(err).Msg("could not persist token")
	}
	s.log.Info().Str("email", identity.Email).Msg("logged in")
	return nil
}

// Register creates a new account. It does not authenticate; the caller is
// expected to route to the login screen afterwards.
func (s *Session) Register(ctx context.Context, email, secret string) error {
	if err := s.authAPI.Register(ctx, email, secret); err != nil {
		return errs.Wrapf(err, "register")
	}
	return nil
}

// Logout clears the token and identity unconditionally.
func (s *Session) Logout() {
	if err := s.store.Delete(TokenKey); err != nil {
		s.log.Warn().Err(err).Msg("could not remove persisted token")
	}
	s.clear()
	s.log.Info().Msg("logged out")
}

func (s *Session) clear() {
	s.state = StateUnauthenticated
	s.token = ""
	s.identity = nil
}

// State returns the lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Authenticated reports whether a decoded identity is present.
func (s *Session) Authenticated() bool {
	return s.state == StateAuthenticated
}

// Token returns the raw bearer token, or an empty string.
func (s *Session) Token() string {
	return s.token
}

// Identity returns the decoded identity, or nil when unauthenticated.
func (s *Session) Identity() *Identity {
	return s.identity
}

// HasRole reports whether a decoded identity exists and its role set
// contains the given role. It is false for every role after logout.
func (s *Session) HasRole(role gate.Role) bool {
	return s.identity.HasRole(role)
}

// TokenSource exposes the session's current token as an oauth2.TokenSource
// for the HTTP transport. The source reads the live session on every call,
// so a login or logout takes effect on the next request.
func (s *Session) TokenSource() oauth2.TokenSource {
	return tokenSource{session: s}
}

type tokenSource struct {
	session *Session
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: ts.session.token, TokenType: "Bearer"}, nil
}
