package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/modules/tag"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Row is one tool record in an uploaded import file.
type Row struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Favicon     string   `json:"favicon"`
	Screenshots []string `json:"screenshots"`
	Features    []string `json:"features"`
	Tags        []string `json:"tags"`
	Approved    bool     `json:"approved"`
}

type Service struct {
	db   *gorm.DB
	tags *tag.Service
	log  *zap.Logger
}

func NewService(db *gorm.DB, tags *tag.Service, log *zap.Logger) *Service {
	return &Service{db: db, tags: tags, log: log.Named("importer")}
}

// Run inserts a batch of rows as tools, recording the whole run as an
// ImportTaskModel. Row failures are collected per row and never abort the
// run; duplicate URLs are reported, not overwritten.
func (s *Service) Run(filename string, rows []Row) (*models.ImportTaskModel, error) {
	task := models.ImportTaskModel{Filename: filename, Status: "pending"}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	var importErrors []map[string]interface{}
	successCount := 0
	for i, row := range rows {
		if err := s.importRow(&row); err != nil {
			importErrors = append(importErrors, map[string]interface{}{
				"row":   i + 1,
				"name":  row.Name,
				"url":   row.URL,
				"error": err.Error(),
			})
			continue
		}
		successCount++
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        "completed",
		"total_count":   len(rows),
		"success_count": successCount,
		"error_count":   len(importErrors),
		"errors":        importErrors,
		"completed_at":  now,
	}
	if err := s.db.Model(&task).Updates(updates).Error; err != nil {
		return nil, err
	}

	task.Status = "completed"
	task.TotalCount = len(rows)
	task.SuccessCount = successCount
	task.ErrorCount = len(importErrors)
	task.Errors = importErrors
	task.CompletedAt = &now

	s.log.Info("import finished",
		zap.String("filename", filename),
		zap.Int("total", len(rows)),
		zap.Int("errors", len(importErrors)))
	return &task, nil
}

func (s *Service) importRow(row *Row) error {
	if strings.TrimSpace(row.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(row.URL) == "" {
		return errors.New("url is required")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ToolModel{}).Where("url = ?", row.URL).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("duplicate url %s", row.URL)
		}

		tool := models.ToolModel{
			Name:        row.Name,
			URL:         row.URL,
			Description: row.Description,
			Favicon:     row.Favicon,
			Screenshots: models.StringArray(row.Screenshots),
			Features:    models.StringArray(row.Features),
			Approved:    row.Approved,
		}
		if err := tx.Create(&tool).Error; err != nil {
			return err
		}

		if len(row.Tags) > 0 {
			tags, err := s.tags.GetOrCreateByNames(tx, row.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&tool).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) List(q pagination.Query) ([]models.ImportTaskModel, response.Pagination, error) {
	tx := s.db.Model(&models.ImportTaskModel{}).Order("created_at DESC")
	var tasks []models.ImportTaskModel
	pag, err := pagination.Paginate(tx, q, &tasks)
	return tasks, pag, err
}

func (s *Service) GetByID(id string) (*models.ImportTaskModel, error) {
	var task models.ImportTaskModel
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}
