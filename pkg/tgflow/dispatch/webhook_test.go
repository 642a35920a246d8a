package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
)

func newTestWebhook() (*Webhook, *recorder) {
	el, rec := newTestLoop()
	el.Text(func(ctx context.Context, msg *Text) { rec.add("text") })
	return el.Webhook("https://bot.example.com/updates", 8443), rec
}

func serve(w *Webhook, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp := httptest.NewRecorder()
	w.ServeHTTP(resp, req)
	return resp
}

const webhookUpdate = `{
	"update_id": 10,
	"message": {"message_id": 1, "date": 0, "chat": {"id": 42, "type": "private"}, "text": "hi"}
}`

func TestWebhookAcceptance(t *testing.T) {
	t.Run("conforming POST dispatches and returns empty 200", func(t *testing.T) {
		wh, rec := newTestWebhook()

		resp := serve(wh, http.MethodPost, "/updates", "application/json", webhookUpdate)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.Code)
		}
		if resp.Body.Len() != 0 {
			t.Errorf("expected an empty body, got %q", resp.Body.String())
		}
		assertEvents(t, rec, []string{"before", "text", "after"})
	})

	t.Run("path comes from the public URL", func(t *testing.T) {
		el, _ := newTestLoop()
		wh := el.Webhook("https://bot.example.com/updates", 8443)
		if wh.path != "/updates" {
			t.Errorf("expected path /updates, got %q", wh.path)
		}

		wh = el.Webhook("https://bot.example.com", 8443)
		if wh.path != "/" {
			t.Errorf("expected path /, got %q", wh.path)
		}
	})

	t.Run("wrong method gets 200 without dispatch", func(t *testing.T) {
		wh, rec := newTestWebhook()

		resp := serve(wh, http.MethodGet, "/updates", "application/json", webhookUpdate)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.Code)
		}
		assertEvents(t, rec, nil)
	})

	t.Run("wrong path gets 200 without dispatch", func(t *testing.T) {
		wh, rec := newTestWebhook()

		resp := serve(wh, http.MethodPost, "/other", "application/json", webhookUpdate)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.Code)
		}
		assertEvents(t, rec, nil)
	})

	t.Run("wrong content type gets 200 without dispatch", func(t *testing.T) {
		wh, rec := newTestWebhook()

		resp := serve(wh, http.MethodPost, "/updates", "text/plain", webhookUpdate)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.Code)
		}
		assertEvents(t, rec, nil)
	})

	t.Run("malformed JSON fails that request only", func(t *testing.T) {
		wh, rec := newTestWebhook()

		resp := serve(wh, http.MethodPost, "/updates", "application/json", `{"update_id": `)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.Code)
		}
		assertEvents(t, rec, nil)

		// The next well-formed request is served normally.
		resp = serve(wh, http.MethodPost, "/updates", "application/json", webhookUpdate)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200 after a malformed request, got %d", resp.Code)
		}
		assertEvents(t, rec, []string{"before", "text", "after"})
	})

	t.Run("unknown update kind still dispatches", func(t *testing.T) {
		el, rec := newTestLoop()
		el.Unhandled(func(ctx context.Context, u *Unhandled) { rec.add("unhandled") })
		wh := el.Webhook("https://bot.example.com/updates", 8443)

		resp := serve(wh, http.MethodPost, "/updates", "application/json",
			`{"update_id": 11, "future_thing": {}}`)
		if resp.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.Code)
		}
		assertEvents(t, rec, []string{"before", "unhandled", "after"})
	})
}

func TestWebhookBuilderOptions(t *testing.T) {
	el := NewEventLoop(bot.New("TOKEN"))
	wh := el.Webhook("https://bot.example.com/hook", 8443).
		BindTo("127.0.0.1").
		Path("/custom").
		MaxConnections(40)

	if wh.bindAddr != "127.0.0.1" {
		t.Errorf("expected bind address 127.0.0.1, got %q", wh.bindAddr)
	}
	if wh.path != "/custom" {
		t.Errorf("expected path /custom, got %q", wh.path)
	}
	if wh.maxConnections != 40 {
		t.Errorf("expected max connections 40, got %d", wh.maxConnections)
	}
}
