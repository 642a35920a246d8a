// Package schedule sends messages on a cron schedule. It sits outside
// the update path: jobs share the bot handle with the rest of the
// program and fire independently of incoming updates.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// jobTimeout bounds one outbound send so a stuck call cannot pile up
// behind the next firing.
const jobTimeout = 30 * time.Second

// Scheduler fires sendMessage calls on cron schedules.
type Scheduler struct {
	bot    *bot.Bot
	cron   *cron.Cron
	logger *slog.Logger

	// entries maps job IDs to their cron entries for removal.
	entries map[string]cron.EntryID
	mu      sync.Mutex
}

// New creates a stopped scheduler around the given bot handle.
func New(b *bot.Bot, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		bot:     b,
		cron:    cron.New(),
		logger:  logger.With("component", "schedule"),
		entries: map[string]cron.EntryID{},
	}
}

// Add registers a job that sends text to chat on the given cron spec.
// Standard 5-field expressions and descriptors like @hourly are accepted.
func (s *Scheduler) Add(id, spec string, chat types.ChatID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("job %q already exists", id)
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, err := s.bot.SendMessage(chat, text).Call(ctx); err != nil {
			s.logger.Error("scheduled send failed", "job", id, "error", err)
			return
		}
		s.logger.Debug("scheduled send delivered", "job", id)
	})
	if err != nil {
		return fmt.Errorf("add job %q: %w", id, err)
	}

	s.entries[id] = entryID
	return nil
}

// Remove unregisters a job. Removing an unknown ID is a no-op.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entries[id]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start begins firing jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops firing jobs and waits for running ones to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
