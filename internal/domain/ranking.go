package domain

import "time"

// Ranking is the persisted result of one scoring pass for one stall.
// Rank values form a dense permutation 1..N over the stalls that had at
// least one signal when the pass ran.
type Ranking struct {
	ID         uint      `json:"id"`
	StallID    uint      `json:"stall_id"`
	Rank       int       `json:"rank"`
	Score      float64   `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}

// LeaderboardEntry is a ranking row joined with its stall metadata.
type LeaderboardEntry struct {
	StallID     uint    `json:"stall_id"`
	Rank        int     `json:"rank"`
	Score       float64 `json:"score"`
	StallName   string  `json:"stall_name"`
	StallNumber int     `json:"stall_number"`
	SchoolName  string  `json:"school_name"`
}
