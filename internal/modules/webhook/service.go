package webhook

import (
	"errors"
	"net/http"
	"time"

	"github.com/toolsite/core/internal/config"
	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages webhook subscriptions and their delivery journal.
type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	client        *http.Client
	maxConcurrent int
}

func NewService(db *gorm.DB, cfg config.WebhookConfig, log *zap.Logger) *Service {
	return &Service{
		db:  db,
		log: log.Named("webhook"),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		maxConcurrent: cfg.MaxConcurrent,
	}
}

func (s *Service) List(q pagination.Query) ([]models.WebhookModel, response.Pagination, error) {
	tx := s.db.Model(&models.WebhookModel{}).Order("created_at DESC")
	var hooks []models.WebhookModel
	pag, err := pagination.Paginate(tx, q, &hooks)
	return hooks, pag, err
}

func (s *Service) GetByID(id string) (*models.WebhookModel, error) {
	var hook models.WebhookModel
	if err := s.db.First(&hook, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hook, nil
}

func (s *Service) Create(req *CreateWebhookRequest) (*models.WebhookModel, error) {
	hook := models.WebhookModel{
		Name:   req.Name,
		URL:    req.URL,
		Events: normalizeEvents(req.Events),
		Active: true,
		Secret: req.Secret,
	}
	if req.Active != nil {
		hook.Active = *req.Active
	}
	if err := s.db.Create(&hook).Error; err != nil {
		return nil, err
	}
	return &hook, nil
}

func (s *Service) Update(id string, req *UpdateWebhookRequest) (*models.WebhookModel, error) {
	hook, err := s.GetByID(id)
	if err != nil || hook == nil {
		return hook, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Events != nil {
		updates["events"] = models.StringArray(normalizeEvents(*req.Events))
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Secret != nil {
		updates["secret"] = *req.Secret
	}

	if len(updates) > 0 {
		if err := s.db.Model(hook).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	hook, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if hook == nil {
		return gorm.ErrRecordNotFound
	}
	if err := s.db.Where("hook_id = ?", id).Delete(&models.WebhookEventModel{}).Error; err != nil {
		return err
	}
	return s.db.Delete(hook).Error
}

// ListEvents returns the delivery journal, newest first, optionally scoped
// to a single hook.
func (s *Service) ListEvents(q pagination.Query, hookID string) ([]models.WebhookEventModel, response.Pagination, error) {
	tx := s.db.Model(&models.WebhookEventModel{}).Order("timestamp DESC")
	if hookID != "" {
		tx = tx.Where("hook_id = ?", hookID)
	}
	var events []models.WebhookEventModel
	pag, err := pagination.Paginate(tx, q, &events)
	return events, pag, err
}

func (s *Service) ClearEventsByHookID(hookID string) error {
	return s.db.Where("hook_id = ?", hookID).Delete(&models.WebhookEventModel{}).Error
}
