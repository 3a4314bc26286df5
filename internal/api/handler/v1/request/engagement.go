package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ScanStallRequest struct {
	StallQRToken string `json:"stall_qr_token"`
}

func (req *ScanStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallQRToken, validation.Required),
	)
}

type SubmitFeedbackRequest struct {
	StallID uint   `json:"stall_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (req *SubmitFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallID, validation.Required),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 500)),
	)
}
