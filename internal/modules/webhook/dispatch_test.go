package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolsite/core/internal/models"
	"go.uber.org/zap"
)

func testService(maxConcurrent int) *Service {
	return &Service{
		log:           zap.NewNop(),
		client:        &http.Client{Timeout: 5 * time.Second},
		maxConcurrent: maxConcurrent,
	}
}

type capturedRequest struct {
	Signature string
	UserAgent string
	Body      []byte
}

func captureServer(t *testing.T, status int, out chan<- capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		out <- capturedRequest{
			Signature: r.Header.Get("X-Webhook-Signature"),
			UserAgent: r.UserAgent(),
			Body:      body,
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDeliverPayloadAndHeaders(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	srv := captureServer(t, http.StatusOK, captured)

	hook := models.WebhookModel{Name: "primary", URL: srv.URL, Secret: "s3cret"}
	hook.ID = "hook-1"

	result := testService(4).deliver(context.Background(), &hook, "tool_added", map[string]interface{}{"name": "Acme"})
	require.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "hook-1", result.WebhookID)
	assert.Equal(t, "primary", result.WebhookName)

	req := <-captured
	assert.Equal(t, "ToolSite-Webhook/1.0", req.UserAgent)

	var payload struct {
		Event     string                 `json:"event"`
		Data      map[string]interface{} `json:"data"`
		Timestamp string                 `json:"timestamp"`
		WebhookID string                 `json:"webhook_id"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	assert.Equal(t, "tool_added", payload.Event)
	assert.Equal(t, "Acme", payload.Data["name"])
	assert.Equal(t, "hook-1", payload.WebhookID)
	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err)

	// the signature must verify against the exact bytes that were sent
	assert.Equal(t, "sha256="+Sign("s3cret", req.Body), req.Signature)
}

func TestDeliverUnsignedWithoutSecret(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	srv := captureServer(t, http.StatusNoContent, captured)

	hook := models.WebhookModel{Name: "open", URL: srv.URL}
	result := testService(4).deliver(context.Background(), &hook, "tool_added", nil)
	require.True(t, result.Success)

	req := <-captured
	assert.Empty(t, req.Signature)
}

func TestDeliverNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	hook := models.WebhookModel{Name: "broken", URL: srv.URL}
	result := testService(4).deliver(context.Background(), &hook, "tool_added", nil)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, "HTTP 500: Internal Server Error", result.Error)
}

func TestDeliverAllOneResultPerHookAndIsolation(t *testing.T) {
	okCalls := int32(0)
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&okCalls, 1)
	}))
	defer okSrv.Close()

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadSrv.URL
	deadSrv.Close()

	hooks := []models.WebhookModel{
		{Name: "alpha", URL: okSrv.URL},
		{Name: "dead", URL: deadURL},
		{Name: "beta", URL: okSrv.URL},
	}
	for i := range hooks {
		hooks[i].ID = hooks[i].Name
	}

	results := testService(2).deliverAll(context.Background(), hooks, "tool_updated", map[string]interface{}{"id": "t1"})
	require.Len(t, results, 3)

	// results stay aligned with the hook order even with concurrent delivery
	assert.Equal(t, "alpha", results[0].WebhookID)
	assert.Equal(t, "dead", results[1].WebhookID)
	assert.Equal(t, "beta", results[2].WebhookID)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success)
	assert.Equal(t, int32(2), atomic.LoadInt32(&okCalls))
}

func TestDeliverAllEmpty(t *testing.T) {
	results := testService(2).deliverAll(context.Background(), nil, "tool_added", nil)
	assert.Empty(t, results)
}

func TestSignDeterministic(t *testing.T) {
	payload := []byte(`{"event":"tool_added"}`)
	first := Sign("secret", payload)
	second := Sign("secret", payload)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, Sign("other", payload))
}
