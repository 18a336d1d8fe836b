package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:", logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	return NewAuthService(repository.NewUserRepository(db), repository.NewTokenRepository(db), "service-secret")
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newAuthService(t)

	user, err := s.Register(RegisterInput{Username: " Ada ", Email: "ADA@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "ada", *user.Username)
	assert.Equal(t, "ada@example.com", *user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	for _, login := range []string{"ada", "Ada@Example.com"} {
		got, err := s.Login(login, "supersecret")
		require.NoError(t, err, login)
		assert.Equal(t, user.ID, got.ID)
	}

	_, err = s.Login("ada", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("nobody", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	s := newAuthService(t)
	_, err := s.Register(RegisterInput{Email: "taken@example.com", Password: "supersecret"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"no login", RegisterInput{Password: "supersecret"}, ErrLoginRequired},
		{"short password", RegisterInput{Username: "shorty", Password: "12345"}, ErrPasswordTooShort},
		{"taken email", RegisterInput{Email: "TAKEN@example.com", Password: "supersecret"}, ErrLoginTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_ParseToken(t *testing.T) {
	s := newAuthService(t)
	pair, err := s.IssueTokens("user-1")
	require.NoError(t, err)

	claims, err := s.ParseToken(pair.AccessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = s.ParseToken(pair.AccessToken, constants.TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(nil, nil, "other-secret")
	_, err = other.ParseToken(pair.AccessToken, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(constants.AccessTokenTTL + time.Minute) }
	_, err = s.ParseToken(pair.AccessToken, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RevokeAndRefresh(t *testing.T) {
	s := newAuthService(t)
	pair, err := s.IssueTokens("user-1")
	require.NoError(t, err)

	rotated, err := s.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = s.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := s.ParseToken(rotated.AccessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	require.NoError(t, s.Revoke(claims))
	require.NoError(t, s.Revoke(claims))

	_, err = s.ParseToken(rotated.AccessToken, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
