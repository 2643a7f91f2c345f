package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

type newsRepository interface {
	Create(ctx context.Context, news *models.News) error
	FindByID(ctx context.Context, id string) (*models.News, error)
	FindPublished(ctx context.Context, idOrSlug string) (*models.PublishedNews, error)
	ListPublished(ctx context.Context) ([]models.PublishedNews, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id string) error
}

// NewsService manages news articles.
type NewsService struct {
	repo      newsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNewsService constructs the service.
func NewNewsService(repo newsRepository, validate *validator.Validate, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NewsService{repo: repo, validator: validate, logger: logger}
}

// ListPublished returns published articles, newest first.
func (s *NewsService) ListPublished(ctx context.Context) ([]models.PublishedNews, error) {
	items, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list news")
	}
	return items, nil
}

// GetPublished returns one published article by id or slug.
func (s *NewsService) GetPublished(ctx context.Context, idOrSlug string) (*models.PublishedNews, error) {
	item, err := s.repo.FindPublished(ctx, strings.TrimSpace(idOrSlug))
	if err != nil {
		return nil, lookupError(err, "Article not found", "failed to load article")
	}
	return item, nil
}

// Create stores an article authored by the caller. Articles by administrators
// are published immediately; everything else starts as a draft.
func (s *NewsService) Create(ctx context.Context, identity models.Identity, req dto.CreateNewsRequest) (*models.News, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindNews), policy.ActionCreate).Err(); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid news payload")
	}
	if err := rejectBlank("content", &req.Content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	category := req.Category
	if category == "" {
		category = models.NewsCategoryGeneral
	}

	news := &models.News{
		ID:          id,
		Title:       req.Title,
		Slug:        newsSlug(req.Title, id),
		Content:     req.Content,
		AuthorID:    identity.ID,
		ImageURL:    req.ImageURL,
		Category:    category,
		IsPublished: policy.Evaluate(identity, policy.News(identity.ID), policy.ActionPublish).Allowed,
		PublishedAt: now,
		Tags:        cleanTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, news); err != nil {
		return nil, appErrors.Internal(err, "failed to create article")
	}

	s.logger.Info("news created",
		zap.String("news_id", news.ID),
		zap.String("author", identity.ID),
		zap.Bool("published", news.IsPublished),
	)
	return news, nil
}

// Update applies the supplied fields. Publication state only changes for
// administrators; for anyone else isPublished is ignored.
func (s *NewsService) Update(ctx context.Context, identity models.Identity, id string, req dto.UpdateNewsRequest) (*models.News, error) {
	req.Title = trimmed(req.Title)
	req.ImageURL = trimmed(req.ImageURL)
	if err := rejectBlank("title", req.Title); err != nil {
		return nil, err
	}
	if err := rejectBlank("content", req.Content); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid news payload")
	}

	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Article not found", "failed to load article")
	}
	if err := policy.Evaluate(identity, policy.News(news.AuthorID), policy.ActionUpdate).Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.ImageURL != nil {
		news.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		news.Category = *req.Category
	}
	if req.Tags != nil {
		news.Tags = cleanTags(req.Tags)
	}
	if req.IsPublished != nil && policy.Evaluate(identity, policy.News(news.AuthorID), policy.ActionPublish).Allowed {
		if *req.IsPublished && !news.IsPublished {
			news.PublishedAt = now
		}
		news.IsPublished = *req.IsPublished
	}
	news.UpdatedAt = now

	if err := s.repo.Update(ctx, news); err != nil {
		return nil, lookupError(err, "Article not found", "failed to update article")
	}
	return news, nil
}

// Delete removes an article owned by the caller, or any article for an administrator.
func (s *NewsService) Delete(ctx context.Context, identity models.Identity, id string) error {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "Article not found", "failed to load article")
	}
	if err := policy.Evaluate(identity, policy.News(news.AuthorID), policy.ActionDelete).Err(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, news.ID); err != nil {
		return lookupError(err, "Article not found", "failed to delete article")
	}
	s.logger.Info("news deleted", zap.String("news_id", news.ID), zap.String("deleted_by", identity.ID))
	return nil
}

// newsSlug derives a URL slug from the title. The id prefix keeps slugs of
// identically titled articles distinct.
func newsSlug(title, id string) string {
	suffix := strings.SplitN(id, "-", 2)[0]
	base := slug.Make(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
