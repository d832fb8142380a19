package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arangotui/arangotui/internal/migrations"
	"github.com/arangotui/arangotui/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Manager stores one row per gateway operation in SQLite
type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// Fetches fan out across goroutines; SQLite wants a single writer
	db.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record saves one gateway operation
func (m *Manager) Record(entry types.HistoryEntry) error {
	ts, err := time.Parse(time.RFC3339, entry.Timestamp)
	if err != nil {
		ts = time.Now()
	}

	var errText sql.NullString
	if entry.Error != "" {
		errText = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err = m.db.Exec(`
		INSERT INTO fetch_history (
			timestamp, operation, database_name, target, endpoint, duration_ms, items, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ts.Local().Format(timestampLayout),
		entry.Operation,
		entry.Database,
		entry.Target,
		entry.Endpoint,
		entry.DurationMs,
		entry.Items,
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Load returns the most recent entries for an endpoint, newest first.
// An empty endpoint loads every server; limit <= 0 means no limit.
func (m *Manager) Load(endpoint string, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, operation, database_name, target, endpoint, duration_ms, items, error
		FROM fetch_history
		WHERE endpoint = ? OR ? = ''
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, endpoint, endpoint, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry

	for rows.Next() {
		var e types.HistoryEntry
		var ts string
		var errText sql.NullString

		if err := rows.Scan(&e.ID, &ts, &e.Operation, &e.Database, &e.Target,
			&e.Endpoint, &e.DurationMs, &e.Items, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Timestamp = normalizeTimestamp(ts)
		e.Error = errText.String
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return entries, nil
}

// normalizeTimestamp accepts both the stored layout and the RFC3339 form
// the sqlite3 driver returns for DATETIME columns
func normalizeTimestamp(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format(timestampLayout)
	}
	return ts
}

// GetCount returns the number of stored entries
func (m *Manager) GetCount() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM fetch_history").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// Clear deletes the entries of one endpoint, or all entries when endpoint is empty
func (m *Manager) Clear(endpoint string) error {
	if _, err := m.db.Exec("DELETE FROM fetch_history WHERE endpoint = ? OR ? = ''", endpoint, endpoint); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
