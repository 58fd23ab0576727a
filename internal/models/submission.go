package models

// SubmissionStatus is the review state of a user-submitted tool.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// SubmissionModel holds tools submitted through the public form, awaiting review.
type SubmissionModel struct {
	Base
	Name        string           `json:"name"        gorm:"not null"`
	URL         string           `json:"url"         gorm:"index;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Locale      string           `json:"locale"      gorm:"default:'en'"`
	Status      SubmissionStatus `json:"status"      gorm:"default:'pending';index"`
	ReviewNote  string           `json:"review_note"`
	ReviewedBy  string           `json:"reviewed_by"`
}

func (SubmissionModel) TableName() string { return "user_tools" }
