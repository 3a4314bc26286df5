package response

import "github.com/expopass/expopass-api/internal/domain"

// QRCodeResponse carries the raw token string; clients render the image.
type QRCodeResponse struct {
	Token          string `json:"token"`
	RegistrationNo string `json:"registration_no"`
}

type CheckResponse struct {
	StudentID      uint                  `json:"student_id"`
	FullName       string                `json:"full_name"`
	AdmissionState domain.AdmissionState `json:"admission_state"`
}

type RecomputeResponse struct {
	RankedStalls int `json:"ranked_stalls"`
}
