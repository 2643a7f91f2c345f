package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/brightminds-api/internal/models"
)

// EventRepository persists calendar events.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(ColEvents)}
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := insertOne(ctx, r.col, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// FindByID returns an event.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return findOne[models.Event](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// List returns all events ordered by date ascending.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	events, err := findMany[models.Event](ctx, r.col, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update replaces the stored event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return replaceByID(ctx, r.col, event.ID, event)
}

// Delete hard-deletes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// CountUpcoming counts events dated at or after now.
func (r *EventRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: now}}}})
	if err != nil {
		return 0, fmt.Errorf("count upcoming events: %w", err)
	}
	return n, nil
}
