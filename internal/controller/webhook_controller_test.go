package controller_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tg-assist-be/internal/controller"
	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/pkg/dedupe"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversation struct {
	events []*dto.InboundEvent
	err    error
}

func (f *fakeConversation) HandleEvent(_ context.Context, event *dto.InboundEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newWebhookApp(secret string) (*fiber.App, *fakeConversation) {
	conversation := &fakeConversation{}
	ctrl := controller.NewWebhookController(conversation, dedupe.NewGuard(nil), secret, nopLogger{})

	app := fiber.New()
	ctrl.RegisterRoutes(app.Group("/api"))
	return app, conversation
}

func postUpdate(app *fiber.App, body, secret string) (*http.Response, error) {
	req := httptest.NewRequest("POST", "/api/webhook/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	return app.Test(req)
}

const validUpdate = `{"update_id":1,"message":{"chat":{"id":42},"text":"/start"}}`

func TestWebhookDispatchesEvent(t *testing.T) {
	app, conversation := newWebhookApp("")

	resp, err := postUpdate(app, validUpdate, "")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, conversation.events, 1)
	assert.Equal(t, int64(42), conversation.events[0].ChatID)
	assert.Equal(t, "/start", conversation.events[0].Command)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	app, conversation := newWebhookApp("expected-secret")

	resp, err := postUpdate(app, validUpdate, "wrong")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, conversation.events)

	resp, err = postUpdate(app, validUpdate, "expected-secret")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, conversation.events, 1)
}

func TestWebhookAcknowledgesMalformedBody(t *testing.T) {
	app, conversation := newWebhookApp("")

	resp, err := postUpdate(app, `{not json`, "")
	require.NoError(t, err)

	// Telegram retries non-200 responses, so garbage is still acknowledged
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, conversation.events)
}

func TestWebhookIgnoresUnhandledUpdate(t *testing.T) {
	app, conversation := newWebhookApp("")

	resp, err := postUpdate(app, `{"update_id":2}`, "")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, conversation.events)
}

func TestWebhookAcknowledgesHandlerFailure(t *testing.T) {
	app, conversation := newWebhookApp("")
	conversation.err = errors.New("downstream broken")

	resp, err := postUpdate(app, validUpdate, "")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, conversation.events, 1)
}
