// File: internal/news/handler.go
package news

import (
	"errors"
	"strconv"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests related to news articles.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new news Handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("NewsHandler"),
	}
}

// RegisterRoutes sets up the routes for news operations. Published reads are
// public; everything else is admin-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	newsGroup := router.Group("/news")
	{
		newsGroup.GET("", h.listPublished)
		newsGroup.GET("/search", h.search)
		newsGroup.GET("/slug/:slug", h.getBySlug)

		newsGroup.GET("/:id", authMW, adminMW, h.getByID)
		newsGroup.POST("", authMW, adminMW, h.create)
		newsGroup.PATCH("/:id", authMW, adminMW, h.update)
		newsGroup.DELETE("/:id", authMW, adminMW, h.delete)
	}
}

func (h *Handler) listPublished(c *gin.Context) {
	articles, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News retrieved successfully.", articles)
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing 'q' query parameter."))
		return
	}
	page, pageSize := common.GetPaginationParams(c)

	docs, total, err := h.service.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Search completed successfully.", gin.H{
		"results":   docs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *Handler) getBySlug(c *gin.Context) {
	article, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News article retrieved successfully.", article)
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	article, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News article retrieved successfully.", article)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	article, err := h.service.Create(c.Request.Context(), middleware.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "News article created successfully.", article)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	article, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "News article updated successfully.", article)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid article ID format."))
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
}
