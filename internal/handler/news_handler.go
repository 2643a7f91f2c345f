package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

type newsService interface {
	ListPublished(ctx context.Context) ([]models.PublishedNews, error)
	GetPublished(ctx context.Context, idOrSlug string) (*models.PublishedNews, error)
	Create(ctx context.Context, identity models.Identity, req dto.CreateNewsRequest) (*models.News, error)
	Update(ctx context.Context, identity models.Identity, id string, req dto.UpdateNewsRequest) (*models.News, error)
	Delete(ctx context.Context, identity models.Identity, id string) error
}

// NewsHandler exposes news endpoints.
type NewsHandler struct {
	service newsService
}

// NewNewsHandler constructs the handler.
func NewNewsHandler(svc newsService) *NewsHandler {
	return &NewsHandler{service: svc}
}

// List godoc
// @Summary List published news
// @Tags News
// @Produce json
// @Success 200 {array} models.PublishedNews
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	items, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get published article
// @Description Look up a published article by id or slug
// @Tags News
// @Produce json
// @Param id path string true "Article id or slug"
// @Success 200 {object} models.PublishedNews
// @Failure 404 {object} response.ErrorBody
// @Router /news/{id} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	item, err := h.service.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create article
// @Description Teachers create drafts; administrators publish immediately
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateNewsRequest true "Article"
// @Success 200 {object} models.News
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateNewsRequest
	if !bindJSON(c, &req, "invalid news payload") {
		return
	}

	news, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, news)
}

// Update godoc
// @Summary Update article
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article id"
// @Param payload body dto.UpdateNewsRequest true "Fields to change"
// @Success 200 {object} models.News
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /news/{id} [put]
func (h *NewsHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateNewsRequest
	if !bindJSON(c, &req, "invalid news payload") {
		return
	}

	news, err := h.service.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, news)
}

// Delete godoc
// @Summary Delete article
// @Tags News
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article id"
// @Success 200 {object} response.MessageBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Article removed")
}
