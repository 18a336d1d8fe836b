// Package session owns the authentication lifecycle: the durable token
// slots and the identity of the signed-in user.
package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/taskboard-client/internal/constants"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/gateway"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/normalize"
	"github.com/yukikurage/taskboard-client/internal/notify"
	"github.com/yukikurage/taskboard-client/internal/validation"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Outcome tells the UI where to go after an auth action. Navigating is the
// caller's job.
type Outcome struct {
	Redirect string
	User     *models.User
}

// Manager is the session state machine.
type Manager struct {
	mu      sync.RWMutex
	state   State
	user    *models.User
	pending int

	vault  *Vault
	auth   gateway.AuthGateway
	users  gateway.UserGateway
	sink   notify.Sink
	logger log.FieldLogger
	now    func() time.Time
}

// NewManager creates a Manager and subscribes it to token revocations so a
// 401 anywhere drops the identity.
func NewManager(vault *Vault, auth gateway.AuthGateway, users gateway.UserGateway, sink notify.Sink, logger log.FieldLogger) *Manager {
	if sink == nil {
		sink = notify.Discard
	}
	m := &Manager{
		vault:  vault,
		auth:   auth,
		users:  users,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
	vault.OnRevoke(m.dropIdentity)
	return m
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading reports whether a login, logout or restore is in flight. It is
// advisory; overlapping calls are not rejected.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending > 0
}

// CurrentUser returns a copy of the signed-in user.
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Login authenticates with creds, stores the token and loads the profile.
// On failure the session is Anonymous and the stored token is left as it was.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) (Outcome, error) {
	if err := validation.Struct(creds); err != nil {
		notify.Error(m.sink, apierrors.MessageOf(err))
		return Outcome{}, err
	}

	m.begin(Authenticating)
	defer m.end()

	payload, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.reportRejected(err)
		m.transition(Anonymous, nil)
		m.logger.WithError(err).Warn("Login failed")
		return Outcome{}, err
	}

	access, refresh := normalize.Tokens(payload)
	if access == "" {
		err := apierrors.Rejected("Login response did not include a token")
		m.reportRejected(err)
		m.transition(Anonymous, nil)
		return Outcome{}, err
	}
	if err := m.vault.Save(ctx, access, refresh); err != nil {
		m.transition(Anonymous, nil)
		return Outcome{}, err
	}

	user, err := m.fetchProfile(ctx)
	if err != nil {
		m.teardown(ctx)
		m.logger.WithError(err).Warn("Failed to load profile after login")
		return Outcome{}, err
	}

	m.transition(Authenticated, user)
	m.logger.WithField("user_id", user.ID).Info("Session authenticated")
	return Outcome{Redirect: constants.RouteHome, User: copyUser(user)}, nil
}

// Register creates an account. It does not sign the caller in.
func (m *Manager) Register(ctx context.Context, creds models.Credentials) (Outcome, error) {
	if err := validation.Struct(creds); err != nil {
		notify.Error(m.sink, apierrors.MessageOf(err))
		return Outcome{}, err
	}

	if _, err := m.auth.Register(ctx, creds); err != nil {
		m.reportRejected(err)
		return Outcome{}, err
	}

	notify.Success(m.sink, constants.MessageRegistered)
	return Outcome{Redirect: constants.RouteLogin}, nil
}

// Logout asks the server to invalidate the token, then clears the local
// session whatever the server said.
func (m *Manager) Logout(ctx context.Context) Outcome {
	m.begin(m.State())
	defer m.end()

	if err := m.auth.Logout(ctx); err != nil {
		m.logger.WithError(err).Warn("Remote logout failed")
	}
	m.teardown(ctx)
	m.logger.Info("Session closed")
	return Outcome{Redirect: constants.RouteLogin}
}

// RestoreSession verifies a stored token against the server. Any failure
// clears both token slots and leaves the session Anonymous.
func (m *Manager) RestoreSession(ctx context.Context) error {
	token := m.vault.AccessToken(ctx)
	if token == "" {
		m.transition(Anonymous, nil)
		return nil
	}

	m.begin(Authenticating)
	defer m.end()

	if m.expired(token) {
		m.teardown(ctx)
		m.logger.Info("Stored token expired")
		return apierrors.ErrUnauthorized
	}

	user, err := m.fetchProfile(ctx)
	if err != nil {
		m.teardown(ctx)
		m.logger.WithError(err).Warn("Failed to restore session")
		return err
	}

	m.transition(Authenticated, user)
	m.logger.WithField("user_id", user.ID).Info("Session restored")
	return nil
}

// Refresh trades the stored refresh token for a new access token.
func (m *Manager) Refresh(ctx context.Context) error {
	refresh := m.vault.RefreshToken(ctx)
	if refresh == "" {
		return apierrors.ErrNotAuthenticated
	}

	payload, err := m.auth.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	access, rotated := normalize.Tokens(payload)
	if access == "" {
		return apierrors.Rejected("Refresh response did not include a token")
	}
	return m.vault.Save(ctx, access, rotated)
}

// UploadAvatar sends a new profile picture and patches the current user
// with whatever the server returned.
func (m *Manager) UploadAvatar(ctx context.Context, filename string, content io.Reader) (models.User, error) {
	if m.State() != Authenticated {
		return models.User{}, apierrors.ErrNotAuthenticated
	}

	rec, err := m.users.UploadAvatar(ctx, filename, content)
	if err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, apierrors.ErrNotAuthenticated
	}
	patched := normalize.MergeUser(*m.user, rec)
	m.user = &patched
	return patched, nil
}

// Guard decides where a navigation to path should land. It returns "" when
// the navigation may proceed.
func (m *Manager) Guard(ctx context.Context, path string, requiresAuth bool) string {
	hasToken := m.vault.AccessToken(ctx) != ""
	switch {
	case requiresAuth && !hasToken:
		return constants.RouteLogin
	case hasToken && isAuthPage(path):
		return constants.RouteHome
	}
	return ""
}

func isAuthPage(path string) bool {
	path = strings.TrimRight(path, "/")
	return path == constants.RouteLogin || path == constants.RouteRegister
}

func (m *Manager) fetchProfile(ctx context.Context) (*models.User, error) {
	rec, err := m.users.Me(ctx)
	if err != nil {
		return nil, err
	}
	user := normalize.User(rec)
	return &user, nil
}

// expired reports whether token is a JWT whose exp claim has passed. Opaque
// tokens are never considered expired here.
func (m *Manager) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(m.now())
}

// reportRejected shows errors the transport did not already announce.
func (m *Manager) reportRejected(err error) {
	if errors.Is(err, apierrors.ErrRejected) {
		notify.Error(m.sink, apierrors.MessageOf(err))
	}
}

func (m *Manager) teardown(ctx context.Context) {
	if err := m.vault.Clear(ctx); err != nil {
		m.logger.WithError(err).Error("Failed to clear stored tokens")
	}
	m.transition(Anonymous, nil)
}

func (m *Manager) dropIdentity() {
	m.transition(Anonymous, nil)
	m.logger.Info("Session revoked by server")
}

func (m *Manager) transition(state State, user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
}

func (m *Manager) begin(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending++
	m.state = state
}

func (m *Manager) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending--
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}
