package scraper

import (
	"context"
	"errors"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs scrape tasks and owns their lifecycle in the store.
type Service struct {
	db        *gorm.DB
	extractor *Extractor
	log       *zap.Logger
}

func NewService(db *gorm.DB, extractor *Extractor, log *zap.Logger) *Service {
	return &Service{db: db, extractor: extractor, log: log.Named("scraper")}
}

// Scrape records the attempt as a ScrapeTask, runs the extractor and moves
// the task to exactly one terminal state. The returned task reflects the
// final row; on extraction failure the error is returned alongside it.
//
// Concurrent scrapes of the same URL create independent tasks; tasks are
// not deduplicated by URL.
func (s *Service) Scrape(ctx context.Context, url string) (*models.ScrapeTaskModel, *ToolMetadata, error) {
	task := models.ScrapeTaskModel{URL: url, Status: models.ScrapePending}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, nil, err
	}

	if err := s.transition(&task, map[string]interface{}{"status": models.ScrapeRunning}); err != nil {
		return nil, nil, err
	}

	meta, err := s.extractor.Extract(ctx, url)
	now := time.Now()
	if err != nil {
		s.log.Warn("scrape failed", zap.String("url", url), zap.Error(err))
		if updateErr := s.transition(&task, map[string]interface{}{
			"status":        models.ScrapeFailed,
			"error_message": err.Error(),
			"completed_at":  now,
		}); updateErr != nil {
			return &task, nil, updateErr
		}
		return &task, nil, err
	}

	result := map[string]interface{}{
		"title":       meta.Title,
		"description": meta.Description,
		"favicon":     meta.Favicon,
		"screenshots": meta.Screenshots,
		"features":    meta.Features,
		"url":         url,
		"scraped_at":  now.UTC().Format(time.RFC3339),
	}
	if err := s.transition(&task, map[string]interface{}{
		"status":       models.ScrapeCompleted,
		"result":       result,
		"completed_at": now,
	}); err != nil {
		return &task, meta, err
	}

	s.log.Info("scrape completed", zap.String("url", url), zap.String("task_id", task.ID))
	return &task, meta, nil
}

func (s *Service) transition(task *models.ScrapeTaskModel, updates map[string]interface{}) error {
	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return err
	}
	if v, ok := updates["status"].(models.ScrapeStatus); ok {
		task.Status = v
	}
	if v, ok := updates["error_message"].(string); ok {
		task.ErrorMessage = v
	}
	if v, ok := updates["result"].(map[string]interface{}); ok {
		task.Result = v
	}
	if v, ok := updates["completed_at"].(time.Time); ok {
		task.CompletedAt = &v
	}
	return nil
}

func (s *Service) ListTasks(q pagination.Query, status *models.ScrapeStatus) ([]models.ScrapeTaskModel, response.Pagination, error) {
	tx := s.db.Model(&models.ScrapeTaskModel{}).Order("created_at DESC")
	if status != nil {
		tx = tx.Where("status = ?", *status)
	}
	var items []models.ScrapeTaskModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetTaskByID(id string) (*models.ScrapeTaskModel, error) {
	var task models.ScrapeTaskModel
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// PurgeTerminalBefore removes completed/failed tasks created before cutoff.
func (s *Service) PurgeTerminalBefore(cutoff time.Time) (int64, error) {
	result := s.db.Unscoped().
		Where("status IN ?", []models.ScrapeStatus{models.ScrapeCompleted, models.ScrapeFailed}).
		Where("created_at < ?", cutoff).
		Delete(&models.ScrapeTaskModel{})
	return result.RowsAffected, result.Error
}
