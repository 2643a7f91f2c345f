package dto

import "github.com/noah-isme/brightminds-api/internal/models"

// CreateNewsRequest is the payload for publishing or drafting an article.
type CreateNewsRequest struct {
	Title    string              `json:"title" validate:"required,max=200"`
	Content  string              `json:"content" validate:"required"`
	ImageURL string              `json:"imageUrl" validate:"omitempty,url"`
	Category models.NewsCategory `json:"category" validate:"omitempty,oneof=general academic sports events achievements"`
	Tags     []string            `json:"tags" validate:"omitempty,dive,max=40"`
}

// UpdateNewsRequest carries a partial update. Absent fields are left unchanged.
type UpdateNewsRequest struct {
	Title       *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string              `json:"content" validate:"omitempty,min=1"`
	ImageURL    *string              `json:"imageUrl" validate:"omitempty,url"`
	Category    *models.NewsCategory `json:"category" validate:"omitempty,oneof=general academic sports events achievements"`
	Tags        []string             `json:"tags" validate:"omitempty,dive,max=40"`
	IsPublished *bool                `json:"isPublished"`
}
