// Command tgflow-echo is a small demonstration bot: it echoes text,
// answers /start and /help, and reacts to inline-keyboard presses. It
// doubles as a smoke test for the polling driver.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/dispatch"
	"github.com/jholhewres/tgflow/pkg/tgflow/state"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// Config holds the bot's configuration.
type Config struct {
	// TokenEnv is the environment variable holding the bot token.
	TokenEnv string `yaml:"token_env"`

	// LongPollTimeout is the server-side getUpdates timeout in seconds.
	LongPollTimeout int `yaml:"long_poll_timeout"`

	// Limit caps updates per getUpdates call (1..100, 0 = server default).
	Limit int `yaml:"limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TokenEnv:        "TELEGRAM_BOT_TOKEN",
		LongPollTimeout: 30,
	}
}

// echoState counts messages per chat, shared by all handlers.
type echoState struct {
	mu     sync.Mutex
	counts *state.Chats[int]
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tgflow-echo",
		Short: "Echo bot built on the tgflow update engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func run(configPath string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	b, err := bot.FromEnv(cfg.TokenEnv, bot.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop := dispatch.NewEventLoop(b)
	if err := loop.FetchUsername(ctx); err != nil {
		return fmt.Errorf("fetching username: %w", err)
	}

	st := &echoState{counts: state.NewChats[int]()}
	stateful := state.NewEventLoop(loop, st)

	stateful.CommandWithDescription("start", "greet the bot",
		func(ctx context.Context, msg *dispatch.Text, s *echoState) {
			keyboard := types.InlineKeyboardMarkup{
				InlineKeyboard: [][]types.InlineKeyboardButton{{
					{Text: "Count", CallbackData: "count"},
				}},
			}
			_, err := msg.Bot.SendMessage(types.ChatID{ID: msg.Chat.ID}, "Hello! Say something and I'll echo it.").
				ReplyMarkup(keyboard).
				Call(ctx)
			if err != nil {
				logger.Error("sending greeting", "error", err)
			}
		})

	stateful.CommandWithDescription("help", "show what I can do",
		func(ctx context.Context, msg *dispatch.Text, s *echoState) {
			if _, err := msg.Send(ctx, "I echo text messages. /start shows a counter button."); err != nil {
				logger.Error("sending help", "error", err)
			}
		})

	stateful.Text(func(ctx context.Context, msg *dispatch.Text, s *echoState) {
		s.mu.Lock()
		if !s.counts.Mutate(msg.Chat.ID, func(n *int) { *n++ }) {
			s.counts.Insert(msg.Chat.ID, 1)
		}
		s.mu.Unlock()

		if _, err := msg.Reply(ctx, msg.Text.Value); err != nil {
			logger.Error("echoing", "error", err)
		}
	})

	stateful.MessageDataCallback(func(ctx context.Context, cb *dispatch.MessageDataCallback, s *echoState) {
		if cb.Data != "count" {
			return
		}
		s.mu.Lock()
		n, _ := s.counts.Get(cb.Message.Chat.ID)
		s.mu.Unlock()

		if err := cb.Notify(ctx, fmt.Sprintf("%d messages so far", n)); err != nil {
			logger.Error("answering callback", "error", err)
		}
	})

	stateful.Unhandled(func(ctx context.Context, u *dispatch.Unhandled, s *echoState) {
		logger.Debug("unhandled update", "update_id", u.Update.ID,
			"kind", strings.TrimPrefix(fmt.Sprintf("%T", u.Update.Kind), "types."))
	})

	polling := stateful.Polling().
		Timeout(cfg.LongPollTimeout)
	if cfg.Limit != 0 {
		polling.Limit(cfg.Limit)
	}

	if err := polling.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
