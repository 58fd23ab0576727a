package models

import "time"

// UserModel is a console user. Role is an opaque string; "admin" gates the
// management API.
type UserModel struct {
	Base
	Name          string     `json:"name"            gorm:"not null"`
	Email         string     `json:"email"           gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"               gorm:"not null"` // bcrypt hash
	Avatar        string     `json:"avatar"`
	Role          string     `json:"role"            gorm:"default:'user';index"`
	Active        bool       `json:"active"          gorm:"default:true"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
