package subscriber

import (
	"errors"
	"strings"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/modules/webhook"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"gorm.io/gorm"
)

var ErrInvalidEmail = errors.New("invalid email address")

type Service struct {
	db    *gorm.DB
	hooks *webhook.Service
}

func NewService(db *gorm.DB, hooks *webhook.Service) *Service {
	return &Service{db: db, hooks: hooks}
}

// Subscribe adds an email to the list. Subscribing an email that previously
// unsubscribed re-activates the existing row instead of failing on the
// unique index.
func (s *Service) Subscribe(email string, tags []string) (*models.SubscriberModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return nil, ErrInvalidEmail
	}

	var sub models.SubscriberModel
	err := s.db.Where("email = ?", email).First(&sub).Error
	switch {
	case err == nil:
		if sub.Active {
			return &sub, nil
		}
		updates := map[string]interface{}{
			"active":          true,
			"unsubscribed_at": nil,
		}
		if len(tags) > 0 {
			updates["tags"] = models.StringArray(tags)
		}
		if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
			return nil, err
		}
		sub.Active = true
		sub.UnsubscribedAt = nil
		return &sub, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.SubscriberModel{Email: email, Active: true, Tags: models.StringArray(tags)}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, err
		}
		if s.hooks != nil {
			s.hooks.Emit(webhook.EventSubscriberAdded, map[string]interface{}{
				"id":    sub.ID,
				"email": sub.Email,
			})
		}
		return &sub, nil
	default:
		return nil, err
	}
}

func (s *Service) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var sub models.SubscriberModel
	if err := s.db.Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	now := time.Now()
	return s.db.Model(&sub).Updates(map[string]interface{}{
		"active":          false,
		"unsubscribed_at": now,
	}).Error
}

func (s *Service) List(q pagination.Query, activeOnly bool) ([]models.SubscriberModel, response.Pagination, error) {
	tx := s.db.Model(&models.SubscriberModel{}).Order("created_at DESC")
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}
	var subs []models.SubscriberModel
	pag, err := pagination.Paginate(tx, q, &subs)
	return subs, pag, err
}

func (s *Service) Delete(id string) error {
	var sub models.SubscriberModel
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	return s.db.Delete(&sub).Error
}
