package dto

import "github.com/noah-isme/brightminds-api/internal/models"

// CreateUserRequest is used by administrators to provision accounts.
type CreateUserRequest struct {
	Name       string          `json:"name" validate:"required,max=120"`
	Email      string          `json:"email" validate:"required,email"`
	Role       models.UserRole `json:"role" validate:"required,oneof=student teacher admin superadmin"`
	Department string          `json:"department" validate:"omitempty,max=120"`
}

// ExportFormat enumerates supported roster formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// UserExport is a rendered roster file.
type UserExport struct {
	Filename    string
	ContentType string
	Content     []byte
}
