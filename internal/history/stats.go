package history

import (
	"fmt"
	"sort"
)

// OperationStats aggregates the recorded calls of one gateway operation
type OperationStats struct {
	Operation     string
	Calls         int
	Failures      int
	AvgDurationMs float64
	MaxDurationMs int64
	P95DurationMs int64
}

// Stats groups the history of an endpoint by operation, slowest average first
func (m *Manager) Stats(endpoint string) ([]OperationStats, error) {
	rows, err := m.db.Query(`
		SELECT operation,
		       COUNT(*),
		       SUM(CASE WHEN error IS NOT NULL AND error != '' THEN 1 ELSE 0 END),
		       AVG(duration_ms),
		       MAX(duration_ms)
		FROM fetch_history
		WHERE endpoint = ? OR ? = ''
		GROUP BY operation
		ORDER BY AVG(duration_ms) DESC, operation
	`, endpoint, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load history stats: %w", err)
	}
	defer rows.Close()

	var stats []OperationStats
	for rows.Next() {
		var s OperationStats
		if err := rows.Scan(&s.Operation, &s.Calls, &s.Failures, &s.AvgDurationMs, &s.MaxDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history stats: %w", err)
	}

	durations, err := m.durations(endpoint)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].P95DurationMs = Percentile(durations[stats[i].Operation], 95)
	}

	return stats, nil
}

// durations returns the recorded durations of every operation
func (m *Manager) durations(endpoint string) (map[string][]int64, error) {
	rows, err := m.db.Query(`
		SELECT operation, duration_ms
		FROM fetch_history
		WHERE endpoint = ? OR ? = ''
	`, endpoint, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load durations: %w", err)
	}
	defer rows.Close()

	byOp := make(map[string][]int64)
	for rows.Next() {
		var op string
		var d int64
		if err := rows.Scan(&op, &d); err != nil {
			return nil, fmt.Errorf("failed to scan duration: %w", err)
		}
		byOp[op] = append(byOp[op], d)
	}
	return byOp, rows.Err()
}

// Percentile interpolates the p-th percentile (0-100) of durations
func Percentile(durations []int64, p float64) int64 {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]int64, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return int64(float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight)
}
