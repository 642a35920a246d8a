package state

import "testing"

func TestMessages(t *testing.T) {
	msgs := NewMessages[int]()

	a1 := MessageID{ChatID: 1, MessageID: 10}
	a2 := MessageID{ChatID: 1, MessageID: 11}
	b1 := MessageID{ChatID: 2, MessageID: 10}

	msgs.Insert(a1, 100)
	msgs.Insert(a2, 101)
	msgs.Insert(b1, 200)

	t.Run("same message ID in different chats stays distinct", func(t *testing.T) {
		got, ok := msgs.Get(a1)
		if !ok || got != 100 {
			t.Errorf("expected 100 for chat 1, got %d", got)
		}
		got, ok = msgs.Get(b1)
		if !ok || got != 200 {
			t.Errorf("expected 200 for chat 2, got %d", got)
		}
	})

	t.Run("len and len in chat", func(t *testing.T) {
		if msgs.Len() != 3 {
			t.Errorf("expected 3 entries, got %d", msgs.Len())
		}
		if msgs.LenInChat(1) != 2 {
			t.Errorf("expected 2 entries in chat 1, got %d", msgs.LenInChat(1))
		}
		if msgs.LenInChat(3) != 0 {
			t.Errorf("expected 0 entries in chat 3, got %d", msgs.LenInChat(3))
		}
	})

	t.Run("mutate updates in place", func(t *testing.T) {
		if !msgs.Mutate(a2, func(n *int) { *n += 10 }) {
			t.Fatal("expected the message to be present")
		}
		got, _ := msgs.Get(a2)
		if got != 111 {
			t.Errorf("expected 111 after mutate, got %d", got)
		}
		msgs.Insert(a2, 101)

		if msgs.Mutate(MessageID{ChatID: 9, MessageID: 9}, func(n *int) {}) {
			t.Error("expected Mutate to report an absent message")
		}
	})

	t.Run("range in chat only visits that chat", func(t *testing.T) {
		visited := map[MessageID]int{}
		msgs.RangeInChat(1, func(id MessageID, value int) bool {
			visited[id] = value
			return true
		})
		if len(visited) != 2 {
			t.Fatalf("expected 2 visits, got %d", len(visited))
		}
		if visited[a1] != 100 || visited[a2] != 101 {
			t.Errorf("unexpected visits: %v", visited)
		}
	})

	t.Run("clear in chat leaves other chats alone", func(t *testing.T) {
		msgs.ClearInChat(1)
		if msgs.LenInChat(1) != 0 {
			t.Errorf("expected chat 1 cleared, got %d entries", msgs.LenInChat(1))
		}
		if _, ok := msgs.Get(b1); !ok {
			t.Error("expected chat 2 to be untouched")
		}
	})

	t.Run("delete", func(t *testing.T) {
		msgs.Delete(b1)
		if msgs.Len() != 0 {
			t.Errorf("expected an empty store, got %d entries", msgs.Len())
		}
	})
}
