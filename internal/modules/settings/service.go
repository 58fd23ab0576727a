package settings

import (
	"encoding/json"
	"errors"

	"github.com/toolsite/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// publicKeys is the whitelist of settings readable without authentication.
var publicKeys = map[string]bool{
	"site_name":        true,
	"site_description": true,
	"site_logo":        true,
	"social_links":     true,
	"footer_text":      true,
	"seo":              true,
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the decoded value for key, or nil when unset.
func (s *Service) Get(key string) (interface{}, error) {
	var row models.SettingModel
	if err := s.db.First(&row, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var value interface{}
	if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key, JSON-encoded, inserting or updating in place.
func (s *Service) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	row := models.SettingModel{Key: key, Value: string(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}

func (s *Service) Delete(key string) error {
	return s.db.Where("`key` = ?", key).Delete(&models.SettingModel{}).Error
}

// All returns every setting decoded into a map.
func (s *Service) All() (map[string]interface{}, error) {
	var rows []models.SettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		var value interface{}
		if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
			// tolerate legacy plain-string rows
			value = row.Value
		}
		out[row.Key] = value
	}
	return out, nil
}

// Public returns only whitelisted settings for the unauthenticated site.
func (s *Service) Public() (map[string]interface{}, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(publicKeys))
	for key, value := range all {
		if publicKeys[key] {
			out[key] = value
		}
	}
	return out, nil
}

// IsPublic reports whether key may be read without authentication.
func IsPublic(key string) bool {
	return publicKeys[key]
}
