package models

import "time"

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// PostModel is a blog post.
type PostModel struct {
	Base
	Title         string     `json:"title"          gorm:"not null"`
	Slug          string     `json:"slug"           gorm:"uniqueIndex;not null"`
	Text          string     `json:"text"           gorm:"type:longtext"` // markdown source
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Status        PostStatus `json:"status"         gorm:"default:'draft';index"`
	PublishedAt   *time.Time `json:"published_at"`
	AuthorID      string     `json:"author_id"      gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }
