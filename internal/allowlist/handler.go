// File: internal/allowlist/handler.go
package allowlist

import (
	"errors"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the registration allow list.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new allow-list Handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("AllowlistHandler"),
	}
}

// RegisterRoutes sets up the routes for allow-list management. All routes are
// admin-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	emails := router.Group("/approved-emails")
	emails.Use(authMW, adminMW)
	{
		emails.GET("", h.listApprovedEmails)
		emails.POST("", h.addApprovedEmail)
	}
}

func (h *Handler) listApprovedEmails(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Approved emails retrieved successfully.", entries)
}

func (h *Handler) addApprovedEmail(c *gin.Context) {
	var req AddApprovedEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		}
		return
	}

	entry, err := h.service.Add(c.Request.Context(), req, middleware.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Email approved successfully.", entry)
}
