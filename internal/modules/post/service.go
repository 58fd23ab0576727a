package post

import (
	"bytes"
	"errors"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/modules/webhook"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"github.com/toolsite/core/internal/pkg/slugify"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	hooks    *webhook.Service
	markdown goldmark.Markdown
}

func NewService(db *gorm.DB, hooks *webhook.Service) *Service {
	return &Service{
		db:    db,
		hooks: hooks,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

type CreatePostRequest struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug"`
	Text          string `json:"text"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
}

type UpdatePostRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Text          *string `json:"text"`
	Excerpt       *string `json:"excerpt"`
	FeaturedImage *string `json:"featured_image"`
}

// PostResponse carries the stored post plus the rendered HTML body.
type PostResponse struct {
	models.PostModel
	HTML string `json:"html,omitempty"`
}

// Render converts the markdown source to HTML.
func (s *Service) Render(p *models.PostModel) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(p.Text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) List(q pagination.Query, publishedOnly bool) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).Order("created_at DESC")
	if publishedOnly {
		tx = tx.Where("status = ?", models.PostPublished).Order("published_at DESC")
	}
	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) Create(req *CreatePostRequest, authorID string) (*models.PostModel, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify.Make(req.Title)
	}
	post := models.PostModel{
		Title:         req.Title,
		Slug:          slug,
		Text:          req.Text,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        models.PostDraft,
		AuthorID:      authorID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) Update(id string, req *UpdatePostRequest) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if len(updates) > 0 {
		if err := s.db.Model(post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Publish moves a draft to published, stamping published_at on the first
// publication only. Republishing an already-published post is a no-op.
func (s *Service) Publish(id string) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}
	if post.Status == models.PostPublished {
		return post, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"status": models.PostPublished}
	if post.PublishedAt == nil {
		updates["published_at"] = now
	}
	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	post.Status = models.PostPublished
	if post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	if s.hooks != nil {
		s.hooks.Emit(webhook.EventPostPublished, map[string]interface{}{
			"id":    post.ID,
			"title": post.Title,
			"slug":  post.Slug,
		})
	}
	return post, nil
}

func (s *Service) Unpublish(id string) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}
	if err := s.db.Model(post).Update("status", models.PostDraft).Error; err != nil {
		return nil, err
	}
	post.Status = models.PostDraft
	return post, nil
}

func (s *Service) Delete(id string) error {
	post, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return gorm.ErrRecordNotFound
	}
	return s.db.Delete(post).Error
}
