package model

import "time"

// SessionState holds the UI preferences that survive between runs.
type SessionState struct {
	Benchmark   string    `json:"benchmark"`
	Watchlist   []string  `json:"watchlist"`
	ShowLabels  bool      `json:"show_labels"`
	CurvedTails bool      `json:"curved_tails"`
	UpdatedAt   time.Time `json:"updated_at"`
}
