package dispatch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// Webhook configures and runs the webhook driver: it registers the
// public URL with setWebhook and serves updates Telegram POSTs back.
type Webhook struct {
	eventLoop *EventLoop

	url  string
	path string

	bindAddr string
	port     int

	ipAddress      string
	certificate    types.InputFile
	hasCertificate bool
	maxConnections int
	allowedUpdates []types.AllowedUpdate
	dropPending    bool
	requestTimeout time.Duration
	tlsConfig      *tls.Config
}

// Webhook starts webhook configuration for the given public URL and
// local port. The update path defaults to the URL's path.
func (el *EventLoop) Webhook(publicURL string, port int) *Webhook {
	path := "/"
	if u, err := url.Parse(publicURL); err == nil && u.Path != "" {
		path = u.Path
	}
	return &Webhook{
		eventLoop:      el,
		url:            publicURL,
		path:           path,
		bindAddr:       "0.0.0.0",
		port:           port,
		requestTimeout: 60 * time.Second,
	}
}

// BindTo sets the local address to listen on.
func (w *Webhook) BindTo(addr string) *Webhook {
	w.bindAddr = addr
	return w
}

// Path overrides the update path derived from the public URL.
func (w *Webhook) Path(path string) *Webhook {
	w.path = path
	return w
}

// IPAddress fixes the IP Telegram connects to instead of resolving the
// URL's host.
func (w *Webhook) IPAddress(ip string) *Webhook {
	w.ipAddress = ip
	return w
}

// Certificate uploads a self-signed certificate with setWebhook.
func (w *Webhook) Certificate(cert types.InputFile) *Webhook {
	w.certificate = cert
	w.hasCertificate = true
	return w
}

// MaxConnections caps simultaneous connections from Telegram (1..100).
func (w *Webhook) MaxConnections(n int) *Webhook {
	w.maxConnections = n
	return w
}

// AllowedUpdates restricts which update kinds Telegram delivers.
func (w *Webhook) AllowedUpdates(kinds []types.AllowedUpdate) *Webhook {
	w.allowedUpdates = kinds
	return w
}

// DropPendingUpdates discards updates queued before the webhook switch.
func (w *Webhook) DropPendingUpdates() *Webhook {
	w.dropPending = true
	return w
}

// RequestTimeout bounds the setup calls made during Start.
func (w *Webhook) RequestTimeout(timeout time.Duration) *Webhook {
	w.requestTimeout = timeout
	return w
}

// TLS serves HTTPS with the given config. Without it the server speaks
// plain HTTP, for deployments behind a TLS-terminating proxy.
func (w *Webhook) TLS(config *tls.Config) *Webhook {
	w.tlsConfig = config
	return w
}

// ServeHTTP implements the per-request acceptance rule: only a POST to
// the update path with an application/json body reaches the dispatcher;
// everything else gets an empty 200 without side effects.
func (w *Webhook) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost ||
		r.URL.Path != w.path ||
		r.Header.Get("Content-Type") != "application/json" {
		rw.WriteHeader(http.StatusOK)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.eventLoop.logger.Error("reading webhook body", "error", err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	var update types.Update
	if err := json.Unmarshal(body, &update); err != nil {
		// Fatal for this request only; the server keeps serving.
		w.eventLoop.logger.Error("webhook received invalid update JSON", "error", err)
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	w.eventLoop.HandleUpdate(r.Context(), update)
	rw.WriteHeader(http.StatusOK)
}

// Start registers the webhook, installs command descriptions, and serves
// until ctx is cancelled.
func (w *Webhook) Start(ctx context.Context) error {
	el := w.eventLoop

	call := el.bot.SetWebhook(w.url)
	if w.ipAddress != "" {
		call.IPAddress(w.ipAddress)
	}
	if w.hasCertificate {
		call.Certificate(w.certificate)
	}
	if w.maxConnections != 0 {
		call.MaxConnections(w.maxConnections)
	}
	if w.allowedUpdates != nil {
		call.AllowedUpdates(w.allowedUpdates)
	}
	if w.dropPending {
		call.DropPendingUpdates()
	}

	setupCtx, cancel := context.WithTimeout(ctx, w.requestTimeout)
	err := call.Call(setupCtx)
	cancel()
	if err != nil {
		return &SetupError{Stage: "setWebhook", Err: err}
	}

	setupCtx, cancel = context.WithTimeout(ctx, w.requestTimeout)
	err = el.installCommands(setupCtx)
	cancel()
	if err != nil {
		return &SetupError{Stage: "setMyCommands", Err: err}
	}

	addr := net.JoinHostPort(w.bindAddr, strconv.Itoa(w.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding webhook listener on %s: %w", addr, err)
	}
	if w.tlsConfig != nil {
		listener = tls.NewListener(listener, w.tlsConfig)
	}

	server := &http.Server{Handler: w}

	el.logger.Info("webhook serving", "addr", addr, "path", w.path, "tls", w.tlsConfig != nil)

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(listener) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errc:
		return err
	}
}
