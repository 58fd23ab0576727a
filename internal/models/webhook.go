package models

import "time"

// WebhookModel defines an outbound webhook subscription.
// It is eligible for an event E iff Active is true and Events contains E.
type WebhookModel struct {
	Base
	Name   string      `json:"name"   gorm:"not null"`
	URL    string      `json:"url"    gorm:"not null"`
	Events StringArray `json:"events" gorm:"type:longtext"`
	Active bool        `json:"active" gorm:"default:true;index"`
	Secret string      `json:"-"`

	EventLogs []WebhookEventModel `json:"event_logs,omitempty" gorm:"foreignKey:HookID"`
}

func (WebhookModel) TableName() string { return "webhooks" }

// WebhookEventModel is the audit trail of webhook deliveries.
type WebhookEventModel struct {
	Base
	HookID    string                 `json:"hook_id"   gorm:"index;not null"`
	Event     string                 `json:"event"     gorm:"not null"`
	Headers   map[string]interface{} `json:"headers"   gorm:"serializer:json"`
	Payload   string                 `json:"payload"   gorm:"type:longtext"`
	Response  map[string]interface{} `json:"response"  gorm:"serializer:json;type:longtext"`
	Success   bool                   `json:"success"`
	Status    int                    `json:"status"`
	Timestamp time.Time              `json:"timestamp" gorm:"index"`
}

func (WebhookEventModel) TableName() string { return "webhook_events" }
