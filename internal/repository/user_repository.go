package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/brightminds-api/internal/models"
)

// UserRepository provides database access for accounts.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(ColUsers)}
}

// Create inserts a user. ErrDuplicate signals an existing email.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := insertOne(ctx, r.col, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns a user by email address, compared case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}})
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	users, err := findMany[models.User](ctx, r.col, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdatePassword stores a new hash and sets the must-change flag.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error {
	res, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "must_change_password", Value: mustChange},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}})
	if err != nil {
		return fmt.Errorf("update password: %w", wrapError(err))
	}
	return matched(res)
}

// Delete hard-deletes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// CountByRole counts users holding role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}
