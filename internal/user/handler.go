// File: internal/user/handler.go
package user

import (
	"errors"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests related to users.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user Handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterRoutes sets up the routes for user operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	users := router.Group("/users")
	users.Use(authMW)
	{
		users.GET("/me", h.getMe)
		users.GET("/:id", h.getUserByID)
		users.PATCH("/:id", adminMW, h.updateUser)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	usr, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) getUserByID(c *gin.Context) {
	targetID := c.Param("id")
	requesterID := middleware.GetUserIDFromContext(c)
	requesterRole := middleware.GetUserRoleFromContext(c)

	if targetID != requesterID && requesterRole != common.RoleAdmin {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You can only view your own profile."))
		return
	}

	usr, err := h.service.GetByID(c.Request.Context(), targetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) updateUser(c *gin.Context) {
	targetID := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		}
		return
	}

	usr, err := h.service.Update(c.Request.Context(), targetID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.logger.Info("User updated", zap.String("userID", targetID))
	common.RespondOK(c, "User updated successfully.", ToUserResponse(usr))
}
