package models

// ToolModel is a catalog entry for an AI tool.
type ToolModel struct {
	Base
	Name        string      `json:"name"        gorm:"index;not null"`
	Description string      `json:"description" gorm:"type:text"`
	URL         string      `json:"url"         gorm:"uniqueIndex;not null"`
	Favicon     string      `json:"favicon"`
	Screenshots StringArray `json:"screenshots" gorm:"type:longtext"`
	Features    StringArray `json:"features"    gorm:"type:longtext"`
	Approved    bool        `json:"approved"    gorm:"default:false;index"`
	Featured    bool        `json:"featured"    gorm:"default:false;index"`
	SubmittedBy string      `json:"submitted_by"`

	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:tool_categories"`
	Tags       []TagModel      `json:"tags,omitempty"       gorm:"many2many:tool_tags"`
}

func (ToolModel) TableName() string { return "tools" }
