package models

// SettingModel is a generic key-value store for site configuration.
type SettingModel struct {
	ID    uint   `json:"-"     gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key"   gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:longtext"` // JSON-encoded value
}

func (SettingModel) TableName() string { return "site_settings" }
