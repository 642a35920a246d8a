package types

import "testing"

func TestUTF16Len(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"ping", 4},
		{"привет", 6},
		{"😀", 2},
		{"a😀b", 4},
	}
	for _, c := range cases {
		if got := UTF16Len(c.in); got != c.want {
			t.Errorf("UTF16Len(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsCommand(t *testing.T) {
	t.Run("command entity at offset zero", func(t *testing.T) {
		text := Text{
			Value:    "/ping",
			Entities: []Entity{{Type: EntityBotCommand, Offset: 0, Length: 5}},
		}
		if !text.IsCommand() {
			t.Error("expected a command")
		}
	})

	t.Run("command entity mid-message does not count", func(t *testing.T) {
		text := Text{
			Value:    "try /ping",
			Entities: []Entity{{Type: EntityBotCommand, Offset: 4, Length: 5}},
		}
		if text.IsCommand() {
			t.Error("a mid-message command must not count")
		}
	})

	t.Run("no entities", func(t *testing.T) {
		if (Text{Value: "/ping"}).IsCommand() {
			t.Error("without an entity the text is not a command")
		}
	})
}

func TestTrimCommand(t *testing.T) {
	t.Run("removes command and following whitespace", func(t *testing.T) {
		text := Text{
			Value: "/ping hello",
			Entities: []Entity{
				{Type: EntityBotCommand, Offset: 0, Length: 5},
				{Type: EntityBold, Offset: 6, Length: 5},
			},
		}

		trimmed := text.TrimCommand()
		if trimmed.Value != "hello" {
			t.Errorf("expected %q, got %q", "hello", trimmed.Value)
		}
		if len(trimmed.Entities) != 1 {
			t.Fatalf("expected 1 remaining entity, got %d", len(trimmed.Entities))
		}
		if trimmed.Entities[0].Offset != 0 || trimmed.Entities[0].Length != 5 {
			t.Errorf("expected bold at 0..5, got offset %d length %d",
				trimmed.Entities[0].Offset, trimmed.Entities[0].Length)
		}
	})

	t.Run("bare command trims to empty", func(t *testing.T) {
		text := Text{
			Value:    "/ping",
			Entities: []Entity{{Type: EntityBotCommand, Offset: 0, Length: 5}},
		}
		trimmed := text.TrimCommand()
		if trimmed.Value != "" {
			t.Errorf("expected empty text, got %q", trimmed.Value)
		}
		if len(trimmed.Entities) != 0 {
			t.Errorf("expected no entities, got %d", len(trimmed.Entities))
		}
	})

	t.Run("offsets shift in UTF-16 units across surrogate pairs", func(t *testing.T) {
		// "/e 😀x" — the emoji is two UTF-16 code units, so the italic
		// entity on "x" sits at offset 5.
		text := Text{
			Value: "/e 😀x",
			Entities: []Entity{
				{Type: EntityBotCommand, Offset: 0, Length: 2},
				{Type: EntityItalic, Offset: 5, Length: 1},
			},
		}

		trimmed := text.TrimCommand()
		if trimmed.Value != "😀x" {
			t.Errorf("expected %q, got %q", "😀x", trimmed.Value)
		}
		if len(trimmed.Entities) != 1 {
			t.Fatalf("expected 1 entity, got %d", len(trimmed.Entities))
		}
		if trimmed.Entities[0].Offset != 2 {
			t.Errorf("expected italic at UTF-16 offset 2, got %d", trimmed.Entities[0].Offset)
		}
		if got := trimmed.EntityText(trimmed.Entities[0]); got != "x" {
			t.Errorf("expected entity text %q, got %q", "x", got)
		}
	})

	t.Run("multiple whitespace after command", func(t *testing.T) {
		text := Text{
			Value:    "/ping   spaced",
			Entities: []Entity{{Type: EntityBotCommand, Offset: 0, Length: 5}},
		}
		trimmed := text.TrimCommand()
		if trimmed.Value != "spaced" {
			t.Errorf("expected %q, got %q", "spaced", trimmed.Value)
		}
	})
}

func TestEntityText(t *testing.T) {
	text := Text{
		Value:    "say 😀 now",
		Entities: []Entity{{Type: EntityBold, Offset: 4, Length: 2}},
	}
	if got := text.EntityText(text.Entities[0]); got != "😀" {
		t.Errorf("expected the emoji, got %q", got)
	}

	if got := text.EntityText(Entity{Offset: 100, Length: 5}); got != "" {
		t.Errorf("expected empty string for an out-of-range entity, got %q", got)
	}
}
