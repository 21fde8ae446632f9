package domain

import "time"

// HistoryEntry records a submitted query.
type HistoryEntry struct {
	ID          string
	Query       string
	ResultCount int
	SearchedAt  time.Time
}
