package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/toolsite/core/internal/models"
	"go.uber.org/zap"
)

const (
	userAgent       = "ToolSite-Webhook/1.0"
	signatureHeader = "X-Webhook-Signature"

	// responseBodyLimit bounds what we journal from subscriber responses.
	responseBodyLimit = 4 << 10
)

// Sign computes the hex HMAC-SHA256 of payload under secret.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Dispatch delivers event to every active webhook subscribed to it and
// returns one result per selected hook, in selection order. Individual
// delivery failures never abort the batch.
func (s *Service) Dispatch(ctx context.Context, event string, data map[string]interface{}) ([]DeliveryResult, error) {
	var hooks []models.WebhookModel
	if err := s.db.Where("active = ?", true).Order("created_at ASC").Find(&hooks).Error; err != nil {
		return nil, err
	}

	subscribed := make([]models.WebhookModel, 0, len(hooks))
	for _, hook := range hooks {
		if hook.Events.Contains(event) {
			subscribed = append(subscribed, hook)
		}
	}

	results := s.deliverAll(ctx, subscribed, event, data)
	for i := range subscribed {
		s.journal(&subscribed[i], event, data, &results[i])
	}
	return results, nil
}

// Emit dispatches event in the background. Errors are logged, not returned;
// application flows never block on or fail from webhook delivery.
func (s *Service) Emit(event string, data map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Dispatch(ctx, event, data); err != nil {
			s.log.Error("background dispatch failed", zap.String("event", event), zap.Error(err))
		}
	}()
}

// deliverAll fans out deliveries with bounded concurrency. The result slice
// is index-aligned with hooks.
func (s *Service) deliverAll(ctx context.Context, hooks []models.WebhookModel, event string, data map[string]interface{}) []DeliveryResult {
	results := make([]DeliveryResult, len(hooks))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for i := range hooks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.deliver(ctx, &hooks[i], event, data)
		}(i)
	}
	wg.Wait()
	return results
}

func (s *Service) deliver(ctx context.Context, hook *models.WebhookModel, event string, data map[string]interface{}) DeliveryResult {
	result := DeliveryResult{WebhookID: hook.ID, WebhookName: hook.Name}

	payload, err := json.Marshal(map[string]interface{}{
		"event":      event,
		"data":       data,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"webhook_id": hook.ID,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook.URL, bytes.NewReader(payload))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if hook.Secret != "" {
		req.Header.Set(signatureHeader, "sha256="+Sign(hook.Secret, payload))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		s.log.Warn("delivery failed",
			zap.String("hook", hook.Name), zap.String("event", event), zap.Error(err))
		return result
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, responseBodyLimit))

	result.Status = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Success = true
	} else {
		result.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return result
}

func (s *Service) journal(hook *models.WebhookModel, event string, data map[string]interface{}, result *DeliveryResult) {
	payload, _ := json.Marshal(data)
	entry := models.WebhookEventModel{
		HookID:  hook.ID,
		Event:   event,
		Payload: string(payload),
		Headers: map[string]interface{}{
			"Content-Type": "application/json",
			"User-Agent":   userAgent,
		},
		Response: map[string]interface{}{
			"status": result.Status,
			"error":  result.Error,
		},
		Success:   result.Success,
		Status:    result.Status,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error("journal write failed", zap.String("hook", hook.ID), zap.Error(err))
	}
}

// Redispatch re-delivers a journaled event to its original hook.
func (s *Service) Redispatch(ctx context.Context, eventID string) (*DeliveryResult, error) {
	var entry models.WebhookEventModel
	if err := s.db.First(&entry, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	hook, err := s.GetByID(entry.HookID)
	if err != nil {
		return nil, err
	}
	if hook == nil {
		return nil, fmt.Errorf("webhook %s no longer exists", entry.HookID)
	}

	var data map[string]interface{}
	if entry.Payload != "" {
		if err := json.Unmarshal([]byte(entry.Payload), &data); err != nil {
			return nil, fmt.Errorf("decode journaled payload: %w", err)
		}
	}

	result := s.deliver(ctx, hook, entry.Event, data)
	s.journal(hook, entry.Event, data, &result)
	return &result, nil
}
