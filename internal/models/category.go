package models

// CategoryModel groups tools by topic.
type CategoryModel struct {
	Base
	Name        string `json:"name"  gorm:"uniqueIndex;not null"`
	Slug        string `json:"slug"  gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"default:0"`

	Tools []ToolModel `json:"tools,omitempty" gorm:"many2many:tool_categories"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel is a free-form label attached to tools.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }
