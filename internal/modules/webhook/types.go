package webhook

import (
	"strings"
	"time"

	"github.com/toolsite/core/internal/models"
)

// Event names emitted by the application's own modules.
const (
	EventToolAdded       = "tool_added"
	EventToolUpdated     = "tool_updated"
	EventToolDeleted     = "tool_deleted"
	EventToolSubmitted   = "tool_submitted"
	EventSubscriberAdded = "subscriber_added"
	EventPostPublished   = "post_published"
)

type CreateWebhookRequest struct {
	Name   string   `json:"name" binding:"required"`
	URL    string   `json:"url" binding:"required"`
	Events []string `json:"events"`
	Active *bool    `json:"active"`
	Secret string   `json:"secret"`
}

type UpdateWebhookRequest struct {
	Name   *string   `json:"name"`
	URL    *string   `json:"url"`
	Events *[]string `json:"events"`
	Active *bool     `json:"active"`
	Secret *string   `json:"secret"`
}

type DispatchRequest struct {
	Event string                 `json:"event" binding:"required"`
	Data  map[string]interface{} `json:"data"`
}

// DeliveryResult describes the outcome of one webhook delivery attempt.
type DeliveryResult struct {
	WebhookID   string `json:"webhook_id"`
	WebhookName string `json:"webhook_name"`
	Status      int    `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
	Success     bool   `json:"success"`
}

type WebhookResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Active    bool      `json:"active"`
	HasSecret bool      `json:"has_secret"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(m *models.WebhookModel) WebhookResponse {
	return WebhookResponse{
		ID:        m.ID,
		Name:      m.Name,
		URL:       m.URL,
		Events:    m.Events,
		Active:    m.Active,
		HasSecret: m.Secret != "",
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// normalizeEvents trims, lowercases and deduplicates event names, preserving
// first-seen order. An empty list falls back to ["tool_added"].
func normalizeEvents(events []string) []string {
	seen := make(map[string]struct{}, len(events))
	out := make([]string, 0, len(events))
	for _, e := range events {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	if len(out) == 0 {
		return []string{EventToolAdded}
	}
	return out
}
