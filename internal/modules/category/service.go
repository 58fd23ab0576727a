package category

import (
	"errors"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/slugify"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// CategoryWithCount pairs a category with the number of approved tools in it.
type CategoryWithCount struct {
	models.CategoryModel
	ToolCount int64 `json:"tool_count"`
}

func (s *Service) List() ([]CategoryWithCount, error) {
	var categories []models.CategoryModel
	if err := s.db.Order("`order` ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	out := make([]CategoryWithCount, 0, len(categories))
	for _, cat := range categories {
		var count int64
		err := s.db.Model(&models.ToolModel{}).
			Joins("JOIN tool_categories tc ON tc.tool_model_id = tools.id").
			Where("tc.category_model_id = ? AND tools.approved = ?", cat.ID, true).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryWithCount{CategoryModel: cat, ToolCount: count})
	}
	return out, nil
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(req *CreateCategoryRequest) (*models.CategoryModel, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify.Make(req.Name)
	}
	cat := models.CategoryModel{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Update(id string, req *UpdateCategoryRequest) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if len(updates) > 0 {
		if err := s.db.Model(cat).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	cat, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return gorm.ErrRecordNotFound
	}
	if err := s.db.Model(cat).Association("Tools").Clear(); err != nil {
		return err
	}
	return s.db.Delete(cat).Error
}
