package tag

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

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

func (s *Service) List() ([]models.TagModel, error) {
	var tags []models.TagModel
	err := s.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *Service) GetByID(id string) (*models.TagModel, error) {
	var tag models.TagModel
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (s *Service) Create(req *CreateTagRequest) (*models.TagModel, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify.Make(req.Name)
	}
	tag := models.TagModel{Name: req.Name, Slug: slug}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreateByNames resolves tag names to rows, creating missing ones.
// Used by the bulk importer.
func (s *Service) GetOrCreateByNames(tx *gorm.DB, names []string) ([]models.TagModel, error) {
	out := make([]models.TagModel, 0, len(names))
	for _, name := range names {
		var tag models.TagModel
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.TagModel{Name: name, Slug: slugify.Make(name)}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

func (s *Service) Delete(id string) error {
	tag, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return gorm.ErrRecordNotFound
	}
	if err := s.db.Exec("DELETE FROM tool_tags WHERE tag_model_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(tag).Error
}
