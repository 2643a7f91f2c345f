package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/brightminds-api/internal/models"
)

// NewsRepository persists news articles.
type NewsRepository struct {
	col *mongo.Collection
}

// NewNewsRepository constructs the repository.
func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{col: db.Collection(ColNews)}
}

// Create inserts an article.
func (r *NewsRepository) Create(ctx context.Context, news *models.News) error {
	if err := insertOne(ctx, r.col, news); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// FindByID returns an article regardless of its publication state.
func (r *NewsRepository) FindByID(ctx context.Context, id string) (*models.News, error) {
	return findOne[models.News](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// FindPublished returns a published article addressed by id or slug, joined
// with its author's name.
func (r *NewsRepository) FindPublished(ctx context.Context, idOrSlug string) (*models.PublishedNews, error) {
	match := bson.D{
		{Key: "is_published", Value: true},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "_id", Value: idOrSlug}},
			bson.D{{Key: "slug", Value: idOrSlug}},
		}},
	}
	items, err := r.aggregatePublished(ctx, match, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// ListPublished returns published articles, most recent first.
func (r *NewsRepository) ListPublished(ctx context.Context) ([]models.PublishedNews, error) {
	return r.aggregatePublished(ctx, bson.D{{Key: "is_published", Value: true}}, 0)
}

func (r *NewsRepository) aggregatePublished(ctx context.Context, match bson.D, limit int64) ([]models.PublishedNews, error) {
	cursor, err := r.col.Aggregate(ctx, publishedPipeline(match, limit))
	if err != nil {
		return nil, fmt.Errorf("list published news: %w", wrapError(err))
	}
	items, err := decodeAll[models.PublishedNews](ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("decode published news: %w", err)
	}
	return items, nil
}

// publishedPipeline filters by match, orders newest first and joins the
// author's name as author_name ("" when the author no longer exists).
func publishedPipeline(match bson.D, limit int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ColUsers},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author_doc"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "author_name", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$author_doc.name", 0}}},
				"",
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "author_doc", Value: 0}}}},
	)
}

// Update replaces the stored article with news.
func (r *NewsRepository) Update(ctx context.Context, news *models.News) error {
	return replaceByID(ctx, r.col, news.ID, news)
}

// Delete hard-deletes an article.
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// CountPublished counts published articles.
func (r *NewsRepository) CountPublished(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "is_published", Value: true}})
	if err != nil {
		return 0, fmt.Errorf("count published news: %w", err)
	}
	return n, nil
}
