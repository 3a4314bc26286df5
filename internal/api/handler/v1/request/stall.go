package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateStallRequest struct {
	StallNumber int    `json:"stall_number"`
	StallName   string `json:"stall_name"`
	SchoolName  string `json:"school_name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

func (req *CreateStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallNumber, validation.Required, validation.Min(1)),
		validation.Field(&req.StallName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.SchoolName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}
