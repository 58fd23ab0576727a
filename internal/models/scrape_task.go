package models

import "time"

// ScrapeStatus is the lifecycle state of a scrape task.
// Transitions go pending, running, then completed or failed; a task never
// revisits running and the terminal transition happens exactly once.
type ScrapeStatus string

const (
	ScrapePending   ScrapeStatus = "pending"
	ScrapeRunning   ScrapeStatus = "running"
	ScrapeCompleted ScrapeStatus = "completed"
	ScrapeFailed    ScrapeStatus = "failed"
)

// ScrapeTaskModel records one metadata-scrape attempt against a URL.
type ScrapeTaskModel struct {
	Base
	URL          string                 `json:"url"           gorm:"not null"`
	Status       ScrapeStatus           `json:"status"        gorm:"default:'pending';index"`
	Result       map[string]interface{} `json:"result"        gorm:"serializer:json;type:longtext"`
	ErrorMessage string                 `json:"error_message" gorm:"type:text"`
	CompletedAt  *time.Time             `json:"completed_at"`
}

func (ScrapeTaskModel) TableName() string { return "scrape_tasks" }
