// Package services holds the client-side application state: the session
// (tokens, profile, the authenticated request wrapper) and the
// transactions store that borrows it.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/moneyflow/internal/client/client"
	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
)

// ErrNoSession is returned for protected actions attempted while logged out.
var ErrNoSession = errors.New("no active session")

const (
	defaultLoginFailed    = "Login failed"
	defaultRegisterFailed = "Registration failed"
)

// Navigator moves the front-end to another route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

type noopNavigator struct{}

func (noopNavigator) Navigate(context.Context, string) {}

// Session owns the current user and bearer tokens.
//
// A Session built with a nil token store never touches durable storage and
// Initialize is a no-op for it.
type Session struct {
	client client.Client
	tokens metadata.Repository
	nav    Navigator
	log    logging.Logger

	// boot serializes Initialize so later callers wait for the restore.
	boot sync.Mutex

	mu            sync.RWMutex
	user          *models.User
	accessToken   string
	refreshToken  string
	authenticated bool
	initialized   bool

	lastLogin    *models.AuthResult
	lastRegister *models.AuthResult
}

// NewSession wires a Session. nav and log may be nil.
func NewSession(c client.Client, tokens metadata.Repository, nav Navigator, log logging.Logger) *Session {
	if nav == nil {
		nav = noopNavigator{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{client: c, tokens: tokens, nav: nav, log: log}
}

// SetNavigator replaces the navigator. Front-ends that are built after the
// session use it to close the loop.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nav == nil {
		nav = noopNavigator{}
	}
	s.nav = nav
}

func (s *Session) navigator() Navigator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns a copy of the cached profile, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LastLoginResult is the outcome of the most recent Login call.
func (s *Session) LastLoginResult() *models.AuthResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLogin
}

// LastRegisterResult is the outcome of the most recent Register call.
func (s *Session) LastRegisterResult() *models.AuthResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRegister
}

// AccessTokenExpiry reads the exp claim of the access token without
// verifying its signature. ok is false when there is no token or no claim.
func (s *Session) AccessTokenExpiry() (exp time.Time, ok bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Do runs op with the current access token. On an Unauthorized failure it
// refreshes once and runs op once more with the new token; if the refresh
// fails the session is logged out and the original error returned. Other
// failures are returned as is.
func (s *Session) Do(ctx context.Context, op func(ctx context.Context, accessToken string) error) error {
	return s.do(ctx, op, true)
}

func (s *Session) do(ctx context.Context, op func(ctx context.Context, accessToken string) error, forceLogout bool) error {
	err := op(ctx, s.AccessToken())
	if err == nil || client.KindOf(err) != client.KindUnauthorized {
		return err
	}

	if !s.RefreshTokens(ctx) {
		if forceLogout {
			if lerr := s.Logout(ctx); lerr != nil {
				s.log.Warn(ctx, "forced logout incomplete", "error", lerr)
			}
		}
		return err
	}

	return op(ctx, s.AccessToken())
}

// Authenticator runs operations that need a bearer token. *Session is the
// implementation.
type Authenticator interface {
	Do(ctx context.Context, op func(ctx context.Context, accessToken string) error) error
}

// WithAuth is Do for operations that produce a value.
func WithAuth[T any](ctx context.Context, a Authenticator, op func(ctx context.Context, accessToken string) (T, error)) (T, error) {
	var out T
	err := a.Do(ctx, func(ctx context.Context, token string) error {
		v, err := op(ctx, token)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Login exchanges credentials for tokens, persists them and loads the
// profile. Failures are reported in the result; prior state is kept.
func (s *Session) Login(ctx context.Context, email, password string) models.AuthResult {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		res := failureResult(err, defaultLoginFailed)
		s.remember(&s.lastLogin, res)
		return res
	}

	s.mu.Lock()
	s.accessToken = resp.Access
	s.refreshToken = resp.Refresh
	s.authenticated = true
	s.mu.Unlock()

	s.persist(ctx, map[string][]byte{
		metadata.KeyAuthToken:    []byte(resp.Access),
		metadata.KeyRefreshToken: []byte(resp.Refresh),
	})

	if err := s.FetchUser(ctx); err != nil {
		s.log.Warn(ctx, "profile fetch after login failed", "error", err)
	}

	res := models.AuthResult{Success: true, Message: resp.Message}
	s.remember(&s.lastLogin, res)
	return res
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) models.AuthResult {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "registration failed", "email", req.Email, "error", err)
		res := models.AuthResult{Message: defaultRegisterFailed}
		if p := client.PayloadOf(err); p != nil {
			if p.Message != "" {
				res.Message = p.Message
			}
			res.FieldErrors = p.FieldErrors()
		}
		s.remember(&s.lastRegister, res)
		return res
	}

	res := models.AuthResult{Success: true, Message: resp.Message}
	s.remember(&s.lastRegister, res)
	return res
}

func failureResult(err error, fallback string) models.AuthResult {
	res := models.AuthResult{Message: fallback}
	p := client.PayloadOf(err)
	if p == nil {
		res.Error = err.Error()
		return res
	}
	if p.Message != "" {
		res.Message = p.Message
	}
	res.Error = p.ErrorText()
	res.FieldErrors = p.FieldErrors()
	return res
}

func (s *Session) remember(slot **models.AuthResult, res models.AuthResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*slot = &res
}

// Logout revokes the refresh token on a best-effort basis, clears the
// session and navigates to the login route. The returned error only
// reports a failure to wipe durable storage.
func (s *Session) Logout(ctx context.Context) error {
	if refresh := s.RefreshToken(); refresh != "" {
		err := s.do(ctx, func(ctx context.Context, token string) error {
			return s.client.Logout(ctx, token, refresh)
		}, false)
		if err != nil {
			s.log.Warn(ctx, "logout call failed", "error", err)
		}
	}

	err := s.Clear(ctx)
	s.navigator().Navigate(ctx, routes.Login)
	return err
}

// FetchUser loads the profile. With no access token it does nothing.
//
// A failure through the wrapper gets one more explicit refresh and one
// retry; a failed refresh logs out. Whatever happens after that is
// returned to the caller.
func (s *Session) FetchUser(ctx context.Context) error {
	if s.AccessToken() == "" {
		return nil
	}

	err := s.loadUser(ctx, true)
	if err == nil {
		return nil
	}
	s.log.Warn(ctx, "fetch user failed", "error", err)

	if !s.IsAuthenticated() {
		// the wrapper already gave up and logged out
		return err
	}

	if !s.RefreshTokens(ctx) {
		if lerr := s.Logout(ctx); lerr != nil {
			s.log.Warn(ctx, "logout after failed refresh incomplete", "error", lerr)
		}
		return err
	}

	if err := s.loadUser(ctx, false); err != nil {
		s.log.Error(ctx, "fetch user retry failed", "error", err)
		return fmt.Errorf("fetch user: %w", err)
	}
	return nil
}

func (s *Session) loadUser(ctx context.Context, wrapped bool) error {
	var (
		user *models.User
		err  error
	)
	if wrapped {
		user, err = WithAuth(ctx, s, func(ctx context.Context, token string) (*models.User, error) {
			return s.client.Me(ctx, token)
		})
	} else {
		user, err = s.client.Me(ctx, s.AccessToken())
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// RefreshTokens trades the refresh token for a new access token. It
// returns false, leaving state untouched, when there is no refresh token
// or the call fails.
func (s *Session) RefreshTokens(ctx context.Context) bool {
	refresh := s.RefreshToken()
	if refresh == "" {
		return false
	}

	access, err := s.client.Refresh(ctx, refresh)
	if err != nil {
		s.log.Warn(ctx, "token refresh failed", "error", err)
		return false
	}
	if access == "" {
		s.log.Warn(ctx, "token refresh returned no access token")
		return false
	}

	s.mu.Lock()
	s.accessToken = access
	s.authenticated = true
	s.mu.Unlock()

	s.persist(ctx, map[string][]byte{metadata.KeyAuthToken: []byte(access)})
	return true
}

// Initialize restores tokens from durable storage and loads the profile.
// Only the first call does any work, and a session that already holds
// tokens in memory is left alone.
//
// Concurrent callers block until the first bootstrap has finished, so none
// of them sees a half-restored session.
func (s *Session) Initialize(ctx context.Context) error {
	s.boot.Lock()
	defer s.boot.Unlock()

	s.mu.Lock()
	if s.initialized || s.tokens == nil {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	if s.accessToken != "" && s.refreshToken != "" {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	access, err := s.tokens.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	refresh, err := s.tokens.Get(ctx, metadata.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if len(access) == 0 || len(refresh) == 0 {
		return nil
	}

	s.mu.Lock()
	s.accessToken = string(access)
	s.refreshToken = string(refresh)
	s.authenticated = true
	s.mu.Unlock()

	if err := s.FetchUser(ctx); err != nil {
		s.log.Warn(ctx, "profile fetch on startup failed", "error", err)
	}
	return nil
}

// Clear forgets the user and tokens and removes them from durable storage.
// In-memory state is always reset.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.authenticated = false
	s.mu.Unlock()

	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Delete(ctx, metadata.KeyAuthToken, metadata.KeyRefreshToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) persist(ctx context.Context, values map[string][]byte) {
	if s.tokens == nil {
		return
	}
	if err := s.tokens.SetAll(ctx, values); err != nil {
		s.log.Warn(ctx, "failed to persist tokens", "error", err)
	}
}
