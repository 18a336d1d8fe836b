package services

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrLoginTaken           = errors.New("email or username already registered")
	ErrLoginRequired        = errors.New("email or username is required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrInvalidToken         = errors.New("invalid or expired token")
)

// Claims are the JWT claims issued by AuthService.
type Claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	secret    []byte
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, secret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		secret:    []byte(secret),
		now:       time.Now,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Register creates a new user.
func (s *AuthService) Register(input RegisterInput) (*database.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" && email == "" {
		return nil, ErrLoginRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	for _, login := range []string{email, username} {
		if login == "" {
			continue
		}
		if _, err := s.userRepo.FindByLogin(login); err == nil {
			return nil, ErrLoginTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check login: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &database.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     optional(username),
		Email:        optional(email),
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(login, password string) (*database.User, error) {
	user, err := s.userRepo.FindByLogin(login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueTokens signs a new access and refresh token for userID.
func (s *AuthService) IssueTokens(userID string) (TokenPair, error) {
	access, err := s.sign(userID, constants.TokenTypeAccess, constants.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(userID, constants.TokenTypeRefresh, constants.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: constants.AccessTokenTTL}, nil
}

func (s *AuthService) sign(userID, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    constants.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken verifies a token of the given type and that it was not revoked.
func (s *AuthService) ParseToken(raw, typ string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Type != typ {
		return nil, ErrInvalidToken
	}

	revoked, err := s.tokenRepo.IsRevoked(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh rotates a refresh token into a new token pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := s.ParseToken(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Revoke(claims); err != nil {
		return TokenPair{}, err
	}
	return s.IssueTokens(claims.Subject)
}

// Revoke invalidates the token described by claims.
func (s *AuthService) Revoke(claims *Claims) error {
	expiresAt := s.now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokenRepo.Revoke(claims.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*database.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// SetAvatar records a new avatar for the user and returns the updated user.
func (s *AuthService) SetAvatar(userID, filename string) (*database.User, error) {
	avatar := "/uploads/avatars/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	if err := s.userRepo.UpdateAvatar(userID, avatar); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return s.GetUser(userID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
