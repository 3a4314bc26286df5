package domain

import "time"

// AdmissionState tracks whether a student is currently inside the event.
// Modeled as an enum rather than a flag so additional states (e.g. an
// early-exit state) slot in without schema churn.
type AdmissionState string

const (
	AdmissionOutside AdmissionState = "outside"
	AdmissionInside  AdmissionState = "inside"
)

// Eligible reports whether stall-level actions (scanning, feedback) are
// allowed in this state.
func (s AdmissionState) Eligible() bool {
	return s == AdmissionInside
}

// MaxFeedbackPerStudent caps the total feedback records a single student
// may hold across all stalls.
const MaxFeedbackPerStudent = 200

type Student struct {
	ID             uint           `json:"id"`
	FullName       string         `json:"full_name"`
	Email          string         `json:"email"`
	RegistrationNo string         `json:"registration_no"`
	Password       string         `json:"-"`
	SchoolName     string         `json:"school_name"`
	Phone          string         `json:"phone"`
	QRToken        string         `json:"-"`
	AdmissionState AdmissionState `json:"admission_state"`
	FeedbackCount  int            `json:"feedback_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
