// File: internal/streamer/handler.go
package streamer

import (
	"errors"
	"strconv"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests related to streamer profiles and status.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new streamer Handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("StreamerHandler"),
	}
}

// RegisterRoutes sets up the routes for streamer operations. Listing and
// status reads are public; writes require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	streamers := router.Group("/streamers")
	{
		streamers.GET("", h.listStreamers)
		streamers.GET("/:id", h.getStreamer)
		streamers.GET("/:id/status", h.getStatus)

		streamers.POST("", authMW, h.createProfile)
		streamers.PATCH("/:id", authMW, h.updateProfile)
		streamers.PUT("/:id/status", authMW, h.upsertStatus)
	}
}

func (h *Handler) listStreamers(c *gin.Context) {
	profiles, err := h.service.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Streamers retrieved successfully.", profiles)
}

func (h *Handler) getStreamer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	profile, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Streamer retrieved successfully.", profile)
}

func (h *Handler) getStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	status, err := h.service.GetStatus(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Stream status retrieved successfully.", status)
}

func (h *Handler) createProfile(c *gin.Context) {
	var req CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	profile, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Streamer profile created successfully.", profile)
}

func (h *Handler) updateProfile(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if !h.authorizeOwnerOrAdmin(c, id) {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Streamer profile updated successfully.", profile)
}

func (h *Handler) upsertStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if !h.authorizeOwnerOrAdmin(c, id) {
		return
	}

	var req UpdateStreamStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.service.UpsertStatus(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Stream status updated successfully.", status)
}

// authorizeOwnerOrAdmin ensures the profile exists and the caller owns it or
// is an admin. It writes the error response itself and reports whether to
// proceed. This is the single existence check on the write path.
func (h *Handler) authorizeOwnerOrAdmin(c *gin.Context, profileID uint) bool {
	profile, err := h.service.GetByID(c.Request.Context(), profileID)
	if err != nil {
		common.RespondWithError(c, err)
		return false
	}
	if middleware.GetUserRoleFromContext(c) == common.RoleAdmin {
		return true
	}
	if profile.UserID != middleware.GetUserIDFromContext(c) {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You can only modify your own streamer profile."))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid streamer ID format."))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		}
		return false
	}
	return true
}
