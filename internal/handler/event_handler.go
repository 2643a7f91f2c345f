package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, identity models.Identity, req dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, identity models.Identity, id string, req dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, identity models.Identity, id string) error
}

// EventHandler exposes calendar endpoints.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs the handler.
func NewEventHandler(svc eventService) *EventHandler {
	return &EventHandler{service: svc}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, events)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateEventRequest true "Event"
// @Success 200 {object} models.Event
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !bindJSON(c, &req, "invalid event payload") {
		return
	}

	event, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event id"
// @Param payload body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} models.Event
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !bindJSON(c, &req, "invalid event payload") {
		return
	}

	event, err := h.service.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, event)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event id"
// @Success 200 {object} response.MessageBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Event removed")
}
