// Package bot provides the immutable bot handle: the token, the HTTPS
// transport and a builder per Bot API method. One *Bot is shared by
// every handler invocation.
package bot

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "https://api.telegram.org"

// Bot is the handle handlers use to talk to the Bot API. It is immutable
// after construction and safe for concurrent use.
type Bot struct {
	token  string
	apiURL string
	client *http.Client
	logger *slog.Logger
}

// Option configures a Bot during construction.
type Option func(*Bot)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bot) { b.client = client }
}

// WithAPIURL points the bot at a different API server, e.g. a local
// bot-api instance or a test server.
func WithAPIURL(url string) Option {
	return func(b *Bot) { b.apiURL = url }
}

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// New creates a bot handle for the given token.
func New(token string, opts ...Option) *Bot {
	b := &Bot{
		token:  token,
		apiURL: defaultAPIURL,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("component", "bot")
	return b
}

// FromEnv creates a bot reading the token from the named environment
// variable. A .env file in the working directory is loaded first but
// never overwrites variables already present in the environment.
func FromEnv(envVar string, opts ...Option) (*Bot, error) {
	_ = godotenv.Load()
	token := os.Getenv(envVar)
	if token == "" {
		return nil, fmt.Errorf("bot token not found in %s", envVar)
	}
	return New(token, opts...), nil
}

// Token returns the bot's token.
func (b *Bot) Token() string { return b.token }

// Logger returns the bot's logger.
func (b *Bot) Logger() *slog.Logger { return b.logger }

func (b *Bot) methodURL(method string) string {
	return b.apiURL + "/bot" + b.token + "/" + method
}

func (b *Bot) fileURL(path string) string {
	return b.apiURL + "/file/bot" + b.token + "/" + path
}
