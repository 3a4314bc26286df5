package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CheckRequest is submitted by gate volunteers. StallID is set when the
// scan happens at a stall gate rather than the main entrance.
type CheckRequest struct {
	StudentQRToken string `json:"student_qr_token"`
	StallID        *uint  `json:"stall_id,omitempty"`
}

func (req *CheckRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentQRToken, validation.Required),
	)
}
