package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	"github.com/noah-isme/brightminds-api/internal/repository"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
	"github.com/noah-isme/brightminds-api/pkg/export"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// UserConfig tunes administrator-provisioned accounts.
type UserConfig struct {
	DefaultPassword string
}

// UserService handles user management workflows.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	cfg       UserConfig
	csv       csvRenderer
	pdf       pdfRenderer
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, cfg UserConfig) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// List returns every user. Password hashes never leave the service because
// models.User does not serialise them.
func (s *UserService) List(ctx context.Context, identity models.Identity) ([]models.User, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindUser), policy.ActionList).Err(); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// Create provisions an account with the configured default password. The
// account must change it on first use.
func (s *UserService) Create(ctx context.Context, identity models.Identity, req dto.CreateUserRequest) (*models.User, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindUser), policy.ActionCreate).Err(); err != nil {
		return nil, err
	}

	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid create user payload")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.Internal(err, "failed to check email uniqueness")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               req.Role,
		Department:         strings.TrimSpace(req.Department),
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.ErrDuplicateEmail
		}
		return nil, appErrors.Internal(err, "failed to create user")
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("created_by", identity.ID),
	)
	return user, nil
}

// Delete removes a user. Administrators cannot remove themselves and only a
// superadmin may remove another administrator.
func (s *UserService) Delete(ctx context.Context, identity models.Identity, id string) error {
	if err := policy.Evaluate(identity, policy.User(id, ""), policy.ActionDelete).Err(); err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "User not found", "failed to load user")
	}

	if err := policy.Evaluate(identity, policy.User(target.ID, target.Role), policy.ActionDelete).Err(); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return lookupError(err, "User not found", "failed to delete user")
	}

	s.logger.Info("user deleted", zap.String("user_id", target.ID), zap.String("deleted_by", identity.ID))
	return nil
}

// Export renders the user roster as CSV or PDF.
func (s *UserService) Export(ctx context.Context, identity models.Identity, format dto.ExportFormat) (*dto.UserExport, error) {
	if err := policy.Evaluate(identity, policy.Collection(policy.KindUser), policy.ActionExport).Err(); err != nil {
		return nil, err
	}
	if format == "" {
		format = dto.ExportFormatCSV
	}
	if format != dto.ExportFormatCSV && format != dto.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}

	data := rosterDataset(users)
	stamp := time.Now().UTC().Format("20060102")

	var (
		content     []byte
		contentType string
	)
	switch format {
	case dto.ExportFormatPDF:
		content, err = s.pdf.Render(data)
		contentType = "application/pdf"
	default:
		content, err = s.csv.Render(data)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}

	return &dto.UserExport{
		Filename:    fmt.Sprintf("users-%s.%s", stamp, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func rosterDataset(users []models.User) export.Dataset {
	rows := make([]export.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, export.Row{
			"name":       u.Name,
			"email":      u.Email,
			"role":       string(u.Role),
			"department": u.Department,
			"created":    u.CreatedAt.Format("2006-01-02"),
		})
	}
	return export.Dataset{
		Title: "User Roster",
		Columns: []export.Column{
			{Key: "name", Title: "Name", Width: 2},
			{Key: "email", Title: "Email", Width: 3},
			{Key: "role", Title: "Role"},
			{Key: "department", Title: "Department", Width: 2},
			{Key: "created", Title: "Created"},
		},
		Rows: rows,
	}
}
