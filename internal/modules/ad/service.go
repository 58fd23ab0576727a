package ad

import (
	"errors"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateAdRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content" binding:"required"`
	URL       string     `json:"url"`
	Position  string     `json:"position" binding:"required"`
	Size      string     `json:"size"`
	Priority  int        `json:"priority"`
	Active    *bool      `json:"active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type UpdateAdRequest struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	URL       *string    `json:"url"`
	Position  *string    `json:"position"`
	Size      *string    `json:"size"`
	Priority  *int       `json:"priority"`
	Active    *bool      `json:"active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// AdStats aggregates click activity for one ad.
type AdStats struct {
	AdID         string                `json:"ad_id"`
	Title        string                `json:"title"`
	TotalClicks  int64                 `json:"total_clicks"`
	RecentClicks []models.AdClickModel `json:"recent_clicks"`
}

// ActiveForPosition returns ads visible right now at a position, highest
// priority first. An ad is visible when active and now falls inside its
// [start_date, end_date] window; nil bounds are open-ended.
func (s *Service) ActiveForPosition(position string, now time.Time) ([]models.AdModel, error) {
	var ads []models.AdModel
	err := s.db.
		Where("position = ? AND active = ?", position, true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("priority DESC, created_at DESC").
		Find(&ads).Error
	return ads, err
}

func (s *Service) List(q pagination.Query) ([]models.AdModel, response.Pagination, error) {
	tx := s.db.Model(&models.AdModel{}).Order("created_at DESC")
	var ads []models.AdModel
	pag, err := pagination.Paginate(tx, q, &ads)
	return ads, pag, err
}

func (s *Service) GetByID(id string) (*models.AdModel, error) {
	var ad models.AdModel
	if err := s.db.First(&ad, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

func (s *Service) Create(req *CreateAdRequest) (*models.AdModel, error) {
	ad := models.AdModel{
		Title:     req.Title,
		Content:   req.Content,
		URL:       req.URL,
		Position:  req.Position,
		Size:      req.Size,
		Priority:  req.Priority,
		Active:    true,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Active != nil {
		ad.Active = *req.Active
	}
	if err := s.db.Create(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *Service) Update(id string, req *UpdateAdRequest) (*models.AdModel, error) {
	ad, err := s.GetByID(id)
	if err != nil || ad == nil {
		return ad, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if len(updates) > 0 {
		if err := s.db.Model(ad).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	ad, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if ad == nil {
		return gorm.ErrRecordNotFound
	}
	if err := s.db.Where("ad_id = ?", id).Delete(&models.AdClickModel{}).Error; err != nil {
		return err
	}
	return s.db.Delete(ad).Error
}

// RecordClick stores one click against an ad.
func (s *Service) RecordClick(adID, ip, userAgent, referrer string) error {
	ad, err := s.GetByID(adID)
	if err != nil {
		return err
	}
	if ad == nil {
		return gorm.ErrRecordNotFound
	}
	click := models.AdClickModel{
		AdID:      adID,
		IP:        ip,
		UserAgent: userAgent,
		Referrer:  referrer,
	}
	return s.db.Create(&click).Error
}

// StatsFor returns the click count and the most recent clicks for one ad.
func (s *Service) StatsFor(adID string) (*AdStats, error) {
	ad, err := s.GetByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, nil
	}

	stats := AdStats{AdID: ad.ID, Title: ad.Title, RecentClicks: []models.AdClickModel{}}
	if err := s.db.Model(&models.AdClickModel{}).Where("ad_id = ?", adID).Count(&stats.TotalClicks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("ad_id = ?", adID).Order("created_at DESC").Limit(20).Find(&stats.RecentClicks).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeactivateExpired flips off ads whose end_date has passed. Run from cron.
func (s *Service) DeactivateExpired(now time.Time) (int64, error) {
	result := s.db.Model(&models.AdModel{}).
		Where("active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Update("active", false)
	return result.RowsAffected, result.Error
}
