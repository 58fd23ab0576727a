package tool

import (
	"time"

	"github.com/toolsite/core/internal/models"
)

type CreateToolRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	URL         string   `json:"url" binding:"required"`
	Favicon     string   `json:"favicon"`
	Screenshots []string `json:"screenshots"`
	Features    []string `json:"features"`
	Approved    *bool    `json:"approved"`
	Featured    *bool    `json:"featured"`
	CategoryIDs []string `json:"category_ids"`
	TagIDs      []string `json:"tag_ids"`
}

type UpdateToolRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	Favicon     *string   `json:"favicon"`
	Screenshots *[]string `json:"screenshots"`
	Features    *[]string `json:"features"`
	Approved    *bool     `json:"approved"`
	Featured    *bool     `json:"featured"`
	CategoryIDs *[]string `json:"category_ids"`
	TagIDs      *[]string `json:"tag_ids"`
}

// ListFilter narrows tool queries. Zero values mean "no constraint".
type ListFilter struct {
	CategorySlug string
	TagSlug      string
	Featured     *bool
	Approved     *bool
	Search       string
}

type ToolResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Favicon     string     `json:"favicon"`
	Screenshots []string   `json:"screenshots"`
	Features    []string   `json:"features"`
	Approved    bool       `json:"approved"`
	Featured    bool       `json:"featured"`
	Categories  []NamedRef `json:"categories"`
	Tags        []NamedRef `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toResponse(m *models.ToolModel) ToolResponse {
	resp := ToolResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		URL:         m.URL,
		Favicon:     m.Favicon,
		Screenshots: m.Screenshots,
		Features:    m.Features,
		Approved:    m.Approved,
		Featured:    m.Featured,
		Categories:  make([]NamedRef, 0, len(m.Categories)),
		Tags:        make([]NamedRef, 0, len(m.Tags)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, c := range m.Categories {
		resp.Categories = append(resp.Categories, NamedRef{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	for _, t := range m.Tags {
		resp.Tags = append(resp.Tags, NamedRef{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	if resp.Screenshots == nil {
		resp.Screenshots = []string{}
	}
	if resp.Features == nil {
		resp.Features = []string{}
	}
	return resp
}
