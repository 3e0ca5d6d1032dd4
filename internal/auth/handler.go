// File: internal/auth/handler.go
package auth

import (
	"net/http"
	"strings"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/middleware"
	"streamhub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	cfg          *config.Config
	oauthService *OAuthService
	userService  user.Service
	logger       *zap.Logger
}

// NewHandler creates a new auth Handler.
func NewHandler(cfg *config.Config, oauthService *OAuthService, userService user.Service, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:          cfg,
		oauthService: oauthService,
		userService:  userService,
		logger:       logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google/login", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.GET("/me", authMW, h.me)
	}
}

func (h *Handler) googleLogin(c *gin.Context) {
	url, state, err := h.oauthService.GetGoogleLoginURL()
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.setStateCookie(c, state)
	common.RespondOK(c, "Redirect to this URL to continue with Google.", LoginURLResponse{URL: url})
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing 'code' query parameter."))
		return
	}

	expectedState, err := c.Cookie(h.cfg.OAuthStateCookieName)
	if err != nil {
		expectedState = ""
	}
	h.clearStateCookie(c)

	result, err := h.oauthService.HandleGoogleCallback(c.Request.Context(), code, c.Query("state"), expectedState)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.logger.Info("Login completed",
		zap.String("userID", result.User.ID),
		zap.Bool("isNew", result.IsNew))
	common.RespondOK(c, "Login successful.", result)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	usr, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Authenticated user retrieved successfully.", user.ToUserResponse(usr))
}

func (h *Handler) setStateCookie(c *gin.Context, state string) {
	c.SetSameSite(parseSameSite(h.cfg.OAuthCookieSameSite))
	c.SetCookie(
		h.cfg.OAuthStateCookieName,
		state,
		h.cfg.OAuthCookieMaxAgeMinutes*60,
		"/",
		h.cfg.OAuthCookieDomain,
		h.cfg.OAuthCookieSecure,
		h.cfg.OAuthCookieHTTPOnly,
	)
}

func (h *Handler) clearStateCookie(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cfg.OAuthCookieSameSite))
	c.SetCookie(
		h.cfg.OAuthStateCookieName,
		"",
		-1,
		"/",
		h.cfg.OAuthCookieDomain,
		h.cfg.OAuthCookieSecure,
		h.cfg.OAuthCookieHTTPOnly,
	)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
