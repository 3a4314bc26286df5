package domain

import "time"

type Stall struct {
	ID                 uint      `json:"id"`
	StallNumber        int       `json:"stall_number"`
	StallName          string    `json:"stall_name"`
	SchoolName         string    `json:"school_name"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	QRToken            string    `json:"qr_token"`
	TotalFeedbackCount int       `json:"total_feedback_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
