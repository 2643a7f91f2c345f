package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

type settingRepository interface {
	Get(ctx context.Context) (*models.Setting, error)
	EnsureDefaults(ctx context.Context, defaults models.Setting, now time.Time) (bool, error)
	Upsert(ctx context.Context, req dto.UpdateSettingsRequest, defaults models.Setting, updatedBy string, now time.Time) (*models.Setting, error)
}

// SettingService exposes the singleton school settings document.
type SettingService struct {
	repo      settingRepository
	validator *validator.Validate
	logger    *zap.Logger
	defaults  models.Setting
}

// NewSettingService constructs the service.
func NewSettingService(repo settingRepository, validate *validator.Validate, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingService{repo: repo, validator: validate, logger: logger, defaults: models.DefaultSetting()}
}

// EnsureInitialized creates the settings document with defaults if it does
// not exist. Repeated calls leave an existing document untouched.
func (s *SettingService) EnsureInitialized(ctx context.Context) error {
	created, err := s.repo.EnsureDefaults(ctx, s.defaults, time.Now().UTC())
	if err != nil {
		return appErrors.Internal(err, "failed to initialize settings")
	}
	if created {
		s.logger.Info("default settings created")
	}
	return nil
}

// Get returns the settings for any authenticated caller.
func (s *SettingService) Get(ctx context.Context, identity models.Identity) (*models.Setting, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindSettings), policy.ActionRead).Err(); err != nil {
		return nil, err
	}
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, lookupError(err, "Settings not found", "failed to load settings")
	}
	return setting, nil
}

// Update writes the supplied fields in one upsert and records the caller.
func (s *SettingService) Update(ctx context.Context, identity models.Identity, req dto.UpdateSettingsRequest) (*models.Setting, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindSettings), policy.ActionUpdate).Err(); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no settings fields supplied")
	}
	req.SchoolName = trimmed(req.SchoolName)
	if err := rejectBlank("schoolName", req.SchoolName); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid settings payload")
	}

	setting, err := s.repo.Upsert(ctx, req, s.defaults, identity.ID, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Internal(err, "failed to update settings")
	}
	s.logger.Info("settings updated", zap.String("updated_by", identity.ID))
	return setting, nil
}
