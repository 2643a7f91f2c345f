package models

import "time"

// NewsCategory classifies an article.
type NewsCategory string

const (
	NewsCategoryGeneral      NewsCategory = "general"
	NewsCategoryAcademic     NewsCategory = "academic"
	NewsCategorySports       NewsCategory = "sports"
	NewsCategoryEvents       NewsCategory = "events"
	NewsCategoryAchievements NewsCategory = "achievements"
)

// News is an article stored in the news collection. AuthorID references users._id.
type News struct {
	ID          string       `bson:"_id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Slug        string       `bson:"slug" json:"slug"`
	Content     string       `bson:"content" json:"content"`
	AuthorID    string       `bson:"author" json:"author"`
	ImageURL    string       `bson:"image_url" json:"imageUrl"`
	Category    NewsCategory `bson:"category" json:"category"`
	IsPublished bool         `bson:"is_published" json:"isPublished"`
	PublishedAt time.Time    `bson:"published_at" json:"publishedAt"`
	Tags        []string     `bson:"tags" json:"tags"`
	CreatedAt   time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updatedAt"`
}

// PublishedNews is a public listing row joined with the author's display name.
type PublishedNews struct {
	News       `bson:",inline"`
	AuthorName string `bson:"author_name" json:"authorName"`
}
