package domain

import "time"

// Feedback is one student's rating of one stall. At most one record may
// exist per (StudentID, StallID) pair.
type Feedback struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StallID     uint      `json:"stall_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionReceipt is returned to the student after a successful
// feedback submission.
type SubmissionReceipt struct {
	Feedback    Feedback `json:"feedback"`
	StallName   string   `json:"stall_name"`
	StallNumber int      `json:"stall_number"`
	TotalGiven  int      `json:"total_feedbacks_given"`
	Remaining   int      `json:"remaining_feedbacks"`
}

// ScanResult describes a stall to a student who just scanned its QR code.
type ScanResult struct {
	Stall           Stall     `json:"stall"`
	AlreadyReviewed bool      `json:"already_reviewed"`
	ExistingRating  *Feedback `json:"existing_feedback,omitempty"`
}

// VisitEntry is one row of a student's feedback history, enriched with
// stall metadata.
type VisitEntry struct {
	StallID     uint      `json:"stall_id"`
	StallNumber int       `json:"stall_number"`
	StallName   string    `json:"stall_name"`
	SchoolName  string    `json:"school_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	VisitedAt   time.Time `json:"visited_at"`
}

// VisitHistory summarizes everything a student has reviewed so far.
type VisitHistory struct {
	TotalVisits        int          `json:"total_visits"`
	RemainingFeedbacks int          `json:"remaining_feedbacks"`
	Visits             []VisitEntry `json:"visits"`
}

// RatingAggregate is the per-stall rating summary consumed by the
// scoring engine.
type RatingAggregate struct {
	Average float64
	Count   int
}
