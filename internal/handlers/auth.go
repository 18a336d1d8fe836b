package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/dto"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/middleware"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      log.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger log.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"omitempty,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

func (r credentialsRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToUserDTO(*user), "User registered successfully")
}

// LoginLegacy authenticates on /users/login. It answers with the bare access
// token and reports bad credentials as a 200 flagged success=false.
func (h *AuthHandler) LoginLegacy(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.RejectedOK(c, err.Error())
			return
		}
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, pair.AccessToken, "Login successful")
}

// Login authenticates on /auth/login and answers with a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.login(req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, toTokenDTO(pair), "Login successful")
}

func (h *AuthHandler) login(req credentialsRequest) (services.TokenPair, error) {
	user, err := h.authService.Login(req.login(), req.Password)
	if err != nil {
		return services.TokenPair{}, err
	}
	h.logger.WithField("user_id", user.ID).Info("auth.login")
	return h.authService.IssueTokens(user.ID)
}

// Logout revokes the presented access token, if any.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, ok := middleware.BearerToken(c); ok {
		if claims, err := h.authService.ParseToken(raw, constants.TokenTypeAccess); err == nil {
			if err := h.authService.Revoke(claims); err != nil {
				apierrors.InternalError(c, "Failed to logout")
				return
			}
		}
	}

	respond(c, http.StatusOK, nil, "Logged out successfully")
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, toTokenDTO(pair), "")
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ProfileDTO{User: dto.ToUserDTO(*user)}, "")
}

// UploadAvatar stores a new avatar for the authenticated user.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		apierrors.BadRequest(c, "avatar file is required")
		return
	}
	if file.Size > constants.MaxAvatarSize {
		apierrors.BadRequest(c, fmt.Sprintf("Avatar must be at most %d bytes", constants.MaxAvatarSize))
		return
	}

	user, err := h.authService.SetAvatar(userID, file.Filename)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserDTO(*user), "Avatar updated")
}

func toTokenDTO(pair services.TokenPair) dto.TokenDTO {
	return dto.TokenDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrLoginRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrLoginTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
