package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Lookahead pattern, hence regexp2: at least 8 chars with 1 letter and
// 1 digit.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword    = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errMissingCredentials = errors.New("email or registration number is required")
)

type StudentSignupRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RegistrationNo string `json:"registration_no"`
	SchoolName     string `json:"school_name"`
	Phone          string `json:"phone,omitempty"`
}

func (req *StudentSignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.RegistrationNo, validation.Required, validation.Length(2, 30)),
		validation.Field(&req.SchoolName, validation.Required, validation.Length(2, 100)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

// StudentLoginRequest accepts email or registration number plus password.
type StudentLoginRequest struct {
	Email          string `json:"email,omitempty"`
	RegistrationNo string `json:"registration_no,omitempty"`
	Password       string `json:"password"`
}

func (req *StudentLoginRequest) Validate() error {
	if req.Email == "" && req.RegistrationNo == "" {
		return errMissingCredentials
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.When(req.Email != "", is.Email)),
		validation.Field(&req.Password, validation.Required),
	)
}

type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *StaffLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

type CreateVolunteerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *CreateVolunteerRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (req *UpdateProfileRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.When(req.Email != "", is.Email)),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password)
	}

	return nil
}

func validatePassword(password string) error {
	match, err := passwordExp.MatchString(password)
	if err != nil || !match {
		return errInvalidPassword
	}

	return nil
}
