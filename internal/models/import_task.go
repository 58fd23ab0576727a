package models

import "time"

// ImportTaskModel tracks a bulk tool import and its per-row outcomes.
type ImportTaskModel struct {
	Base
	Filename     string                   `json:"filename"      gorm:"not null"`
	Status       string                   `json:"status"        gorm:"default:'pending';index"` // pending | completed | failed
	TotalCount   int                      `json:"total_count"`
	SuccessCount int                      `json:"success_count"`
	ErrorCount   int                      `json:"error_count"`
	Errors       []map[string]interface{} `json:"errors"        gorm:"serializer:json;type:longtext"`
	CompletedAt  *time.Time               `json:"completed_at"`
}

func (ImportTaskModel) TableName() string { return "import_tasks" }
