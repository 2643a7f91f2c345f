package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, identity models.Identity) (*dto.DashboardStats, error)
}

// DashboardHandler serves dashboard endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Dashboard counts
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStats
// @Failure 401 {object} response.ErrorBody
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
