package schedule

import (
	"testing"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

func TestScheduler(t *testing.T) {
	s := New(bot.New("TOKEN"), nil)
	chat := types.ChatID{ID: 42}

	t.Run("add and len", func(t *testing.T) {
		if err := s.Add("daily", "@daily", chat, "good morning"); err != nil {
			t.Fatalf("add: %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 job, got %d", s.Len())
		}
	})

	t.Run("duplicate IDs are rejected", func(t *testing.T) {
		if err := s.Add("daily", "@hourly", chat, "again"); err == nil {
			t.Fatal("expected an error for a duplicate job ID")
		}
	})

	t.Run("invalid cron spec is rejected", func(t *testing.T) {
		if err := s.Add("broken", "not a cron spec", chat, "x"); err != nil {
			if s.Len() != 1 {
				t.Errorf("a rejected job must not be registered, got %d", s.Len())
			}
		} else {
			t.Fatal("expected an error for an invalid spec")
		}
	})

	t.Run("remove", func(t *testing.T) {
		s.Remove("daily")
		if s.Len() != 0 {
			t.Errorf("expected no jobs, got %d", s.Len())
		}

		// Removing an unknown ID is a no-op.
		s.Remove("missing")
	})
}
