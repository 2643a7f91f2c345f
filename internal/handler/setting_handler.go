package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

type settingService interface {
	Get(ctx context.Context, identity models.Identity) (*models.Setting, error)
	Update(ctx context.Context, identity models.Identity, req dto.UpdateSettingsRequest) (*models.Setting, error)
}

// SettingHandler exposes the school settings document.
type SettingHandler struct {
	service settingService
}

// NewSettingHandler constructs the handler.
func NewSettingHandler(svc settingService) *SettingHandler {
	return &SettingHandler{service: svc}
}

// Get godoc
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Setting
// @Failure 404 {object} response.ErrorBody
// @Router /settings [get]
func (h *SettingHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	setting, err := h.service.Get(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, setting)
}

// Update godoc
// @Summary Update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} models.Setting
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req, "invalid settings payload") {
		return
	}
	setting, err := h.service.Update(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, setting)
}
