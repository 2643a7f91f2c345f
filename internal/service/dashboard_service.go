package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

type roleCounter interface {
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

type publishedNewsCounter interface {
	CountPublished(ctx context.Context) (int64, error)
}

type upcomingEventCounter interface {
	CountUpcoming(ctx context.Context, now time.Time) (int64, error)
}

// DashboardService aggregates counts for the admin landing page.
type DashboardService struct {
	users  roleCounter
	news   publishedNewsCounter
	events upcomingEventCounter
	logger *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(users roleCounter, news publishedNewsCounter, events upcomingEventCounter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{users: users, news: news, events: events, logger: logger}
}

// Stats runs the four counts concurrently. The counts are independent reads
// and are not a consistent snapshot.
func (s *DashboardService) Stats(ctx context.Context, identity models.Identity) (*dto.DashboardStats, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindDashboard), policy.ActionRead).Err(); err != nil {
		return nil, err
	}

	var stats dto.DashboardStats
	now := time.Now().UTC()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalStudents, err = s.users.CountByRole(gctx, models.RoleStudent)
		return err
	})
	g.Go(func() (err error) {
		stats.FacultyMembers, err = s.users.CountByRole(gctx, models.RoleTeacher)
		return err
	})
	g.Go(func() (err error) {
		stats.NewsArticles, err = s.news.CountPublished(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingEvents, err = s.events.CountUpcoming(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to load dashboard stats")
	}
	return &stats, nil
}
