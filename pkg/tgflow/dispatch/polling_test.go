package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
)

// pollServer scripts getUpdates responses and records what the driver
// sent.
type pollServer struct {
	mu        sync.Mutex
	responses []string
	requests  []map[string]any
	done      chan struct{}
}

func (s *pollServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/deleteWebhook":
			io.WriteString(w, `{"ok":true,"result":true}`)
		case "/botTOKEN/setMyCommands":
			io.WriteString(w, `{"ok":true,"result":true}`)
		case "/botTOKEN/getUpdates":
			body, _ := io.ReadAll(r.Body)
			var req map[string]any
			if err := json.Unmarshal(body, &req); err != nil {
				t.Errorf("getUpdates body is not JSON: %v", err)
			}

			s.mu.Lock()
			s.requests = append(s.requests, req)
			var resp string
			if len(s.responses) > 0 {
				resp = s.responses[0]
				s.responses = s.responses[1:]
			} else {
				resp = `{"ok":true,"result":[]}`
			}
			if len(s.responses) == 0 {
				select {
				case <-s.done:
				default:
					close(s.done)
				}
			}
			s.mu.Unlock()

			io.WriteString(w, resp)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}
}

func (s *pollServer) recorded() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.requests...)
}

func runPolling(t *testing.T, script []string, configure func(*EventLoop, *Polling)) *pollServer {
	t.Helper()

	server := &pollServer{responses: script, done: make(chan struct{})}
	srv := httptest.NewServer(server.handler(t))
	t.Cleanup(srv.Close)

	el := NewEventLoop(bot.New("TOKEN", bot.WithAPIURL(srv.URL)))
	polling := el.Polling().PollInterval(time.Millisecond)
	if configure != nil {
		configure(el, polling)
	}

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- polling.Start(ctx) }()

	select {
	case <-server.done:
	case <-time.After(10 * time.Second):
		t.Fatal("polling never drained the scripted responses")
	}
	cancel()

	select {
	case err := <-finished:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop on cancellation")
	}

	return server
}

func TestPollingOffsetTracking(t *testing.T) {
	var mu sync.Mutex
	var handled []int64

	batch := `{"ok":true,"result":[
		{"update_id": 10, "message": {"message_id": 1, "date": 0, "chat": {"id": 42, "type": "private"}, "text": "a"}},
		{"update_id": 11, "message": {"message_id": 2, "date": 0, "chat": {"id": 42, "type": "private"}, "text": "b"}}
	]}`

	server := runPolling(t, []string{batch, `{"ok":true,"result":[]}`},
		func(el *EventLoop, p *Polling) {
			el.BeforeUpdate(func(ctx context.Context, u *Update) {
				mu.Lock()
				handled = append(handled, u.UpdateID)
				mu.Unlock()
			})
		})

	requests := server.recorded()
	if len(requests) < 2 {
		t.Fatalf("expected at least 2 getUpdates calls, got %d", len(requests))
	}

	if _, present := requests[0]["offset"]; present {
		t.Errorf("first call must not carry an offset, got %v", requests[0]["offset"])
	}
	if got := requests[1]["offset"]; got != float64(12) {
		t.Errorf("expected offset 12 after the batch, got %v", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 || handled[0] != 10 || handled[1] != 11 {
		t.Errorf("expected updates 10, 11 dispatched in order, got %v", handled)
	}
}

func TestPollingRetryAfter(t *testing.T) {
	var mu sync.Mutex
	var reported []error

	batch := `{"ok":true,"result":[
		{"update_id": 10, "message": {"message_id": 1, "date": 0, "chat": {"id": 42, "type": "private"}, "text": "a"}}
	]}`
	flood := `{"ok":false,"description":"Too Many Requests","error_code":429,"parameters":{"retry_after":1}}`

	server := runPolling(t, []string{batch, flood, `{"ok":true,"result":[]}`},
		func(el *EventLoop, p *Polling) {
			p.ErrorHandler(func(err error) {
				mu.Lock()
				reported = append(reported, err)
				mu.Unlock()
			})
		})

	requests := server.recorded()
	if len(requests) < 3 {
		t.Fatalf("expected at least 3 getUpdates calls, got %d", len(requests))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reported) != 1 {
		t.Fatalf("expected the error handler to fire once, got %d", len(reported))
	}

	var reqErr *bot.RequestError
	if !errors.As(reported[0], &reqErr) || reqErr.RetryAfter != time.Second {
		t.Errorf("expected a 429 with retry_after 1s, got %v", reported[0])
	}

	// The failed batch is retried: the offset after the flood error must
	// equal the offset of the failed call.
	if got := requests[2]["offset"]; got != float64(11) {
		t.Errorf("expected offset 11 to be retried, got %v", got)
	}
}

func TestPollingRetryAfterDelaysNextTick(t *testing.T) {
	flood := `{"ok":false,"description":"Too Many Requests","error_code":429,"parameters":{"retry_after":1}}`

	var mu sync.Mutex
	var times []time.Time

	srvWrapper := &pollServer{responses: []string{flood, `{"ok":true,"result":[]}`}, done: make(chan struct{})}
	inner := srvWrapper.handler(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/botTOKEN/getUpdates" {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
		}
		inner(w, r)
	}))
	t.Cleanup(srv.Close)

	el := NewEventLoop(bot.New("TOKEN", bot.WithAPIURL(srv.URL)))
	el.PollingError(func(err error) {})

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- el.Polling().PollInterval(time.Millisecond).Start(ctx) }()

	select {
	case <-srvWrapper.done:
	case <-time.After(10 * time.Second):
		t.Fatal("polling never issued the post-flood call")
	}
	cancel()
	<-finished

	mu.Lock()
	defer mu.Unlock()
	if len(times) < 2 {
		t.Fatalf("expected 2 getUpdates calls, got %d", len(times))
	}
	if gap := times[1].Sub(times[0]); gap < time.Second {
		t.Errorf("expected the next call no earlier than 1s later, got %v", gap)
	}
}

func TestPollingSetupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"description":"Unauthorized","error_code":401}`)
	}))
	t.Cleanup(srv.Close)

	el := NewEventLoop(bot.New("TOKEN", bot.WithAPIURL(srv.URL)))

	err := el.Polling().Start(context.Background())
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected SetupError, got %v", err)
	}
	if setupErr.Stage != "deleteWebhook" {
		t.Errorf("expected the deleteWebhook stage, got %q", setupErr.Stage)
	}
}
