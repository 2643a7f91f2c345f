package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
)

// SettingRepository stores the singleton settings document under models.SettingID.
type SettingRepository struct {
	col *mongo.Collection
}

// NewSettingRepository constructs the repository.
func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{col: db.Collection(ColSettings)}
}

// Get returns the settings document.
func (r *SettingRepository) Get(ctx context.Context) (*models.Setting, error) {
	return findOne[models.Setting](ctx, r.col, bson.D{{Key: "_id", Value: models.SettingID}})
}

// EnsureDefaults inserts defaults when no settings document exists and leaves
// an existing one untouched. It reports whether a document was created.
func (r *SettingRepository) EnsureDefaults(ctx context.Context, defaults models.Setting, now time.Time) (bool, error) {
	insert := defaultFields(defaults, now, nil)
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: models.SettingID}},
		bson.D{{Key: "$setOnInsert", Value: insert}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("ensure settings: %w", wrapError(err))
	}
	return res.UpsertedCount > 0, nil
}

// Upsert applies the supplied fields in one atomic write, creating the
// document from defaults when absent, and returns the result.
func (r *SettingRepository) Upsert(ctx context.Context, req dto.UpdateSettingsRequest, defaults models.Setting, updatedBy string, now time.Time) (*models.Setting, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Setting
	err := r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: models.SettingID}}, settingsUpdate(req, defaults, updatedBy, now), opts).Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", wrapError(err))
	}
	return &out, nil
}

// settingsUpdate builds the upsert document: supplied fields go to $set, the
// remaining defaults to $setOnInsert. No path appears in both.
func settingsUpdate(req dto.UpdateSettingsRequest, defaults models.Setting, updatedBy string, now time.Time) bson.D {
	set := bson.D{
		{Key: "updated_by", Value: updatedBy},
		{Key: "updated_at", Value: now},
	}
	provided := map[string]struct{}{}
	add := func(key string, value *string) {
		if value != nil {
			set = append(set, bson.E{Key: key, Value: *value})
			provided[key] = struct{}{}
		}
	}
	add("school_name", req.SchoolName)
	add("email", req.Email)
	add("phone", req.Phone)
	add("address", req.Address)
	add("website", req.Website)

	update := bson.D{{Key: "$set", Value: set}}
	if onInsert := defaultFields(defaults, now, provided); len(onInsert) > 0 {
		update = append(update, bson.E{Key: "$setOnInsert", Value: onInsert})
	}
	return update
}

// defaultFields lists insert-only values, skipping keys that are also $set to
// avoid conflicting update paths.
func defaultFields(defaults models.Setting, now time.Time, skip map[string]struct{}) bson.D {
	all := bson.D{
		{Key: "school_name", Value: defaults.SchoolName},
		{Key: "email", Value: defaults.Email},
		{Key: "phone", Value: defaults.Phone},
		{Key: "address", Value: defaults.Address},
		{Key: "website", Value: defaults.Website},
		{Key: "created_at", Value: now},
	}
	if skip == nil {
		return append(all, bson.E{Key: "updated_at", Value: now})
	}
	out := bson.D{}
	for _, e := range all {
		if _, ok := skip[e.Key]; !ok {
			out = append(out, e)
		}
	}
	return out
}
