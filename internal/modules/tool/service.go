package tool

import (
	"errors"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/modules/webhook"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	hooks *webhook.Service
	log   *zap.Logger
}

func NewService(db *gorm.DB, hooks *webhook.Service, log *zap.Logger) *Service {
	return &Service{db: db, hooks: hooks, log: log.Named("tool")}
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.ToolModel, response.Pagination, error) {
	tx := s.db.Model(&models.ToolModel{}).
		Preload("Categories").Preload("Tags").
		Order("featured DESC, created_at DESC")

	if filter.Approved != nil {
		tx = tx.Where("tools.approved = ?", *filter.Approved)
	}
	if filter.Featured != nil {
		tx = tx.Where("tools.featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("tools.name LIKE ? OR tools.description LIKE ?", like, like)
	}
	if filter.CategorySlug != "" {
		tx = tx.Joins("JOIN tool_categories tc ON tc.tool_model_id = tools.id").
			Joins("JOIN categories ON categories.id = tc.category_model_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.TagSlug != "" {
		tx = tx.Joins("JOIN tool_tags tt ON tt.tool_model_id = tools.id").
			Joins("JOIN tags ON tags.id = tt.tag_model_id").
			Where("tags.slug = ?", filter.TagSlug)
	}

	var tools []models.ToolModel
	pag, err := pagination.Paginate(tx, q, &tools)
	return tools, pag, err
}

func (s *Service) GetByID(id string) (*models.ToolModel, error) {
	var tool models.ToolModel
	err := s.db.Preload("Categories").Preload("Tags").First(&tool, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

func (s *Service) Create(req *CreateToolRequest) (*models.ToolModel, error) {
	tool := models.ToolModel{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Favicon:     req.Favicon,
		Screenshots: models.StringArray(req.Screenshots),
		Features:    models.StringArray(req.Features),
	}
	if req.Approved != nil {
		tool.Approved = *req.Approved
	}
	if req.Featured != nil {
		tool.Featured = *req.Featured
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tool).Error; err != nil {
			return err
		}
		return s.replaceAssociations(tx, &tool, req.CategoryIDs, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.GetByID(tool.ID)
	if err != nil {
		return nil, err
	}
	s.emit(webhook.EventToolAdded, created)
	return created, nil
}

func (s *Service) Update(id string, req *UpdateToolRequest) (*models.ToolModel, error) {
	tool, err := s.GetByID(id)
	if err != nil || tool == nil {
		return tool, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Favicon != nil {
		updates["favicon"] = *req.Favicon
	}
	if req.Screenshots != nil {
		updates["screenshots"] = models.StringArray(*req.Screenshots)
	}
	if req.Features != nil {
		updates["features"] = models.StringArray(*req.Features)
	}
	if req.Approved != nil {
		updates["approved"] = *req.Approved
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(tool).Updates(updates).Error; err != nil {
				return err
			}
		}
		var cats, tags []string
		if req.CategoryIDs != nil {
			cats = *req.CategoryIDs
		}
		if req.TagIDs != nil {
			tags = *req.TagIDs
		}
		if req.CategoryIDs != nil || req.TagIDs != nil {
			return s.replaceAssociationsPartial(tx, tool, req.CategoryIDs != nil, cats, req.TagIDs != nil, tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.emit(webhook.EventToolUpdated, updated)
	return updated, nil
}

func (s *Service) Delete(id string) error {
	tool, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if tool == nil {
		return gorm.ErrRecordNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tool).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(tool).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(tool).Error
	})
	if err != nil {
		return err
	}

	if s.hooks != nil {
		s.hooks.Emit(webhook.EventToolDeleted, map[string]interface{}{
			"id":   tool.ID,
			"name": tool.Name,
			"url":  tool.URL,
		})
	}
	return nil
}

// SetApproved flips the review flag; approving emits tool_added so
// subscribers hear about tools entering the public catalog.
func (s *Service) SetApproved(id string, approved bool) (*models.ToolModel, error) {
	tool, err := s.GetByID(id)
	if err != nil || tool == nil {
		return tool, err
	}
	if err := s.db.Model(tool).Update("approved", approved).Error; err != nil {
		return nil, err
	}
	tool.Approved = approved
	if approved {
		s.emit(webhook.EventToolAdded, tool)
	}
	return tool, nil
}

func (s *Service) SetFeatured(id string, featured bool) (*models.ToolModel, error) {
	tool, err := s.GetByID(id)
	if err != nil || tool == nil {
		return tool, err
	}
	if err := s.db.Model(tool).Update("featured", featured).Error; err != nil {
		return nil, err
	}
	tool.Featured = featured
	s.emit(webhook.EventToolUpdated, tool)
	return tool, nil
}

func (s *Service) emit(event string, tool *models.ToolModel) {
	if s.hooks == nil || tool == nil {
		return
	}
	s.hooks.Emit(event, map[string]interface{}{
		"id":          tool.ID,
		"name":        tool.Name,
		"description": tool.Description,
		"url":         tool.URL,
	})
}

func (s *Service) replaceAssociations(tx *gorm.DB, tool *models.ToolModel, categoryIDs, tagIDs []string) error {
	return s.replaceAssociationsPartial(tx, tool, true, categoryIDs, true, tagIDs)
}

func (s *Service) replaceAssociationsPartial(tx *gorm.DB, tool *models.ToolModel, setCats bool, categoryIDs []string, setTags bool, tagIDs []string) error {
	if setCats {
		var cats []models.CategoryModel
		if len(categoryIDs) > 0 {
			if err := tx.Find(&cats, "id IN ?", categoryIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(tool).Association("Categories").Replace(cats); err != nil {
			return err
		}
	}
	if setTags {
		var tags []models.TagModel
		if len(tagIDs) > 0 {
			if err := tx.Find(&tags, "id IN ?", tagIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(tool).Association("Tags").Replace(tags); err != nil {
			return err
		}
	}
	return nil
}
