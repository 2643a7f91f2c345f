package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

type eventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// EventService manages the school calendar.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EventService{repo: repo, validator: validate, logger: logger}
}

// List returns every event ordered by date.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list events")
	}
	return events, nil
}

// Create stores an event created by the caller.
func (s *EventService) Create(ctx context.Context, identity models.Identity, req dto.CreateEventRequest) (*models.Event, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindEvent), policy.ActionCreate).Err(); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Time = strings.TrimSpace(req.Time)
	req.Location = strings.TrimSpace(req.Location)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	if err := rejectBlank("description", &req.Description); err != nil {
		return nil, err
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		CreatedBy:   identity.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Internal(err, "failed to create event")
	}
	return event, nil
}

// Update applies the supplied fields to an event.
func (s *EventService) Update(ctx context.Context, identity models.Identity, id string, req dto.UpdateEventRequest) (*models.Event, error) {
	req.Title = trimmed(req.Title)
	req.Time = trimmed(req.Time)
	req.Location = trimmed(req.Location)
	for _, f := range []struct {
		name  string
		value *string
	}{{"title", req.Title}, {"description", req.Description}, {"time", req.Time}, {"location", req.Location}} {
		if err := rejectBlank(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Event not found", "failed to load event")
	}
	if err := policy.Evaluate(identity, policy.Event(event.CreatedBy), policy.ActionUpdate).Err(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, lookupError(err, "Event not found", "failed to update event")
	}
	return event, nil
}

// Delete removes an event. When two deletes race, the loser gets NOT_FOUND.
func (s *EventService) Delete(ctx context.Context, identity models.Identity, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "Event not found", "failed to load event")
	}
	if err := policy.Evaluate(identity, policy.Event(event.CreatedBy), policy.ActionDelete).Err(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, event.ID); err != nil {
		return lookupError(err, "Event not found", "failed to delete event")
	}
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be RFC3339 or YYYY-MM-DD")
}
