package state

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteChats is the persistent sibling of Chats: one opaque blob per
// chat, stored in a SQLite database so a bot's conversation state can
// survive restarts. The engine itself never writes here; using it is an
// explicit opt-in. Values are raw bytes; callers pick their own encoding.
type SQLiteChats struct {
	db *sql.DB
}

// OpenSQLiteChats opens (and if needed initializes) a chat-state
// database at the given path.
func OpenSQLiteChats(path string) (*SQLiteChats, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open chat state db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_state (
			chat_id INTEGER PRIMARY KEY,
			state   BLOB NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init chat state db: %w", err)
	}

	return &SQLiteChats{db: db}, nil
}

// Insert stores the value for a chat, replacing any previous one.
func (s *SQLiteChats) Insert(chatID int64, value []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO chat_state (chat_id, state) VALUES (?, ?)",
		chatID, value,
	)
	if err != nil {
		return fmt.Errorf("save state for chat %d: %w", chatID, err)
	}
	return nil
}

// Get returns the value stored for a chat.
func (s *SQLiteChats) Get(chatID int64) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(
		"SELECT state FROM chat_state WHERE chat_id = ?", chatID,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load state for chat %d: %w", chatID, err)
	}
	return value, true, nil
}

// Delete removes the value stored for a chat.
func (s *SQLiteChats) Delete(chatID int64) error {
	_, err := s.db.Exec("DELETE FROM chat_state WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("delete state for chat %d: %w", chatID, err)
	}
	return nil
}

// Len returns the number of chats with stored state.
func (s *SQLiteChats) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chat_state").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chat state: %w", err)
	}
	return n, nil
}

// Range calls f for every stored chat until f returns false.
func (s *SQLiteChats) Range(f func(chatID int64, value []byte) bool) error {
	rows, err := s.db.Query("SELECT chat_id, state FROM chat_state")
	if err != nil {
		return fmt.Errorf("iterate chat state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			chatID int64
			value  []byte
		)
		if err := rows.Scan(&chatID, &value); err != nil {
			return fmt.Errorf("scan chat state: %w", err)
		}
		if !f(chatID, value) {
			break
		}
	}
	return rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteChats) Close() error {
	return s.db.Close()
}
