package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/arangotui/arangotui/internal/types"
)

// SaveBookmark stores a filter expression. It reports false when the
// expression was already saved.
func (m *Manager) SaveBookmark(expression string) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return false, fmt.Errorf("expression cannot be empty")
	}

	result, err := m.db.Exec(`
		INSERT INTO filter_bookmarks (expression, created_at)
		VALUES (?, ?)
		ON CONFLICT(expression) DO NOTHING
	`, expression, time.Now().Local().Format(timestampLayout))
	if err != nil {
		return false, fmt.Errorf("failed to save bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark insert: %w", err)
	}
	return rows > 0, nil
}

// DeleteBookmark removes a saved filter by ID
func (m *Manager) DeleteBookmark(id int64) error {
	result, err := m.db.Exec("DELETE FROM filter_bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bookmark %d not found", id)
	}
	return nil
}

// Bookmarks returns saved filters containing query, newest first.
// An empty query returns all of them.
func (m *Manager) Bookmarks(query string) ([]types.FilterBookmark, error) {
	rows, err := m.db.Query(`
		SELECT id, expression, created_at
		FROM filter_bookmarks
		WHERE ? = '' OR expression LIKE ?
		ORDER BY created_at DESC, id DESC
	`, query, "%"+strings.TrimSpace(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	return scanBookmarks(rows)
}

func scanBookmarks(rows *sql.Rows) ([]types.FilterBookmark, error) {
	var bookmarks []types.FilterBookmark
	for rows.Next() {
		var b types.FilterBookmark
		var ts string
		if err := rows.Scan(&b.ID, &b.Expression, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.CreatedAt = normalizeTimestamp(ts)
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}
