package submission

import (
	"errors"
	"fmt"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/modules/tool"
	"github.com/toolsite/core/internal/modules/webhook"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrAlreadyReviewed rejects a second review of the same submission.
var ErrAlreadyReviewed = errors.New("submission already reviewed")

type Service struct {
	db    *gorm.DB
	tools *tool.Service
	hooks *webhook.Service
}

func NewService(db *gorm.DB, tools *tool.Service, hooks *webhook.Service) *Service {
	return &Service{db: db, tools: tools, hooks: hooks}
}

type SubmitRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
}

type ReviewRequest struct {
	Note string `json:"note"`
}

// Submit records a tool suggestion from the public form.
func (s *Service) Submit(req *SubmitRequest) (*models.SubmissionModel, error) {
	sub := models.SubmissionModel{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Locale:      req.Locale,
		Status:      models.SubmissionPending,
	}
	if sub.Locale == "" {
		sub.Locale = "en"
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}

	if s.hooks != nil {
		s.hooks.Emit(webhook.EventToolSubmitted, map[string]interface{}{
			"id":   sub.ID,
			"name": sub.Name,
			"url":  sub.URL,
		})
	}
	return &sub, nil
}

func (s *Service) List(q pagination.Query, status *models.SubmissionStatus) ([]models.SubmissionModel, response.Pagination, error) {
	tx := s.db.Model(&models.SubmissionModel{}).Order("created_at DESC")
	if status != nil {
		tx = tx.Where("status = ?", *status)
	}
	var subs []models.SubmissionModel
	pag, err := pagination.Paginate(tx, q, &subs)
	return subs, pag, err
}

func (s *Service) GetByID(id string) (*models.SubmissionModel, error) {
	var sub models.SubmissionModel
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Approve accepts a pending submission and creates an unapproved catalog
// entry from it for further curation.
func (s *Service) Approve(id, reviewerID string, req *ReviewRequest) (*models.SubmissionModel, error) {
	sub, err := s.GetByID(id)
	if err != nil || sub == nil {
		return sub, err
	}
	if sub.Status != models.SubmissionPending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReviewed, sub.Status)
	}

	if _, err := s.tools.Create(&tool.CreateToolRequest{
		Name:        sub.Name,
		URL:         sub.URL,
		Description: sub.Description,
	}); err != nil {
		return nil, fmt.Errorf("create tool from submission: %w", err)
	}

	if err := s.db.Model(sub).Updates(map[string]interface{}{
		"status":      models.SubmissionApproved,
		"review_note": req.Note,
		"reviewed_by": reviewerID,
	}).Error; err != nil {
		return nil, err
	}
	sub.Status = models.SubmissionApproved
	sub.ReviewNote = req.Note
	sub.ReviewedBy = reviewerID
	return sub, nil
}

func (s *Service) Reject(id, reviewerID string, req *ReviewRequest) (*models.SubmissionModel, error) {
	sub, err := s.GetByID(id)
	if err != nil || sub == nil {
		return sub, err
	}
	if sub.Status != models.SubmissionPending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReviewed, sub.Status)
	}

	if err := s.db.Model(sub).Updates(map[string]interface{}{
		"status":      models.SubmissionRejected,
		"review_note": req.Note,
		"reviewed_by": reviewerID,
	}).Error; err != nil {
		return nil, err
	}
	sub.Status = models.SubmissionRejected
	sub.ReviewNote = req.Note
	sub.ReviewedBy = reviewerID
	return sub, nil
}

func (s *Service) Delete(id string) error {
	sub, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return gorm.ErrRecordNotFound
	}
	return s.db.Delete(sub).Error
}
