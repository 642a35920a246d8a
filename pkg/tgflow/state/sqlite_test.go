package state

import (
	"path/filepath"
	"testing"
)

func TestSQLiteChats(t *testing.T) {
	store, err := OpenSQLiteChats(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	t.Run("get on an empty store", func(t *testing.T) {
		_, ok, err := store.Get(1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Error("expected no value")
		}
	})

	t.Run("insert and get", func(t *testing.T) {
		if err := store.Insert(1, []byte(`{"step":"ask-name"}`)); err != nil {
			t.Fatalf("insert: %v", err)
		}
		value, ok, err := store.Get(1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !ok || string(value) != `{"step":"ask-name"}` {
			t.Errorf("unexpected value %q (present=%v)", value, ok)
		}
	})

	t.Run("insert replaces", func(t *testing.T) {
		if err := store.Insert(1, []byte("v2")); err != nil {
			t.Fatalf("insert: %v", err)
		}
		value, _, err := store.Get(1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(value) != "v2" {
			t.Errorf("expected v2, got %q", value)
		}

		n, err := store.Len()
		if err != nil {
			t.Fatalf("len: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row, got %d", n)
		}
	})

	t.Run("range", func(t *testing.T) {
		if err := store.Insert(2, []byte("other")); err != nil {
			t.Fatalf("insert: %v", err)
		}

		seen := map[int64]string{}
		err := store.Range(func(chatID int64, value []byte) bool {
			seen[chatID] = string(value)
			return true
		})
		if err != nil {
			t.Fatalf("range: %v", err)
		}
		if len(seen) != 2 || seen[2] != "other" {
			t.Errorf("unexpected rows: %v", seen)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(1); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, ok, err := store.Get(1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Error("expected chat 1 to be deleted")
		}
	})
}
