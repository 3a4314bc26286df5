package domain

import "time"

const (
	CheckActionIn  = "check_in"
	CheckActionOut = "check_out"
)

// CheckEvent is one entry of the append-only admission log.
type CheckEvent struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Action    string    `json:"action"`
	StallID   *uint     `json:"stall_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Visit is one entry of the append-only per-stall visit log. Visits are
// a secondary scoring signal next to feedback ratings.
type Visit struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	StallID   uint      `json:"stall_id"`
	VisitedAt time.Time `json:"visited_at"`
}
