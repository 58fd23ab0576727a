package models

import "time"

// AdModel is an advertising placement shown on the public site.
type AdModel struct {
	Base
	Title     string     `json:"title"      gorm:"not null"`
	Content   string     `json:"content"    gorm:"type:text;not null"`
	URL       string     `json:"url"`
	Position  string     `json:"position"   gorm:"index;not null"` // e.g. "home_top", "sidebar"
	Size      string     `json:"size"`
	Priority  int        `json:"priority"   gorm:"default:0"`
	Active    bool       `json:"active"     gorm:"default:true;index"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Clicks []AdClickModel `json:"-" gorm:"foreignKey:AdID"`
}

func (AdModel) TableName() string { return "ads" }

// AdClickModel records a single click on an ad.
type AdClickModel struct {
	Base
	AdID      string `json:"ad_id"      gorm:"index;not null"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent" gorm:"type:text"`
	Referrer  string `json:"referrer"`
}

func (AdClickModel) TableName() string { return "ad_clicks" }
