package models

import "time"

// SubscriberModel is a newsletter subscription.
type SubscriberModel struct {
	Base
	Email          string      `json:"email"           gorm:"uniqueIndex;not null"`
	Active         bool        `json:"active"          gorm:"default:true;index"`
	Tags           StringArray `json:"tags"            gorm:"type:longtext"`
	UnsubscribedAt *time.Time  `json:"unsubscribed_at"`
}

func (SubscriberModel) TableName() string { return "subscribers" }
