package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentSignupRequest_Validate(t *testing.T) {
	valid := StudentSignupRequest{
		FullName:       "Maya Iyer",
		Email:          "maya@example.com",
		Password:       "passw0rd1",
		RegistrationNo: "REG-2031",
		SchoolName:     "Northside High",
	}

	tests := []struct {
		name    string
		mutate  func(r *StudentSignupRequest)
		wantErr bool
	}{
		{"valid", func(r *StudentSignupRequest) {}, false},
		{"missing email", func(r *StudentSignupRequest) { r.Email = "" }, true},
		{"bad email", func(r *StudentSignupRequest) { r.Email = "nope" }, true},
		{"missing registration", func(r *StudentSignupRequest) { r.RegistrationNo = "" }, true},
		{"short password", func(r *StudentSignupRequest) { r.Password = "abc1" }, true},
		{"password without digit", func(r *StudentSignupRequest) { r.Password = "passwords" }, true},
		{"password without letter", func(r *StudentSignupRequest) { r.Password = "123456789" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudentLoginRequest_Validate(t *testing.T) {
	// Either identifier works; neither does not.
	byEmail := StudentLoginRequest{Email: "maya@example.com", Password: "passw0rd1"}
	assert.NoError(t, byEmail.Validate())

	byRegNo := StudentLoginRequest{RegistrationNo: "REG-2031", Password: "passw0rd1"}
	assert.NoError(t, byRegNo.Validate())

	neither := StudentLoginRequest{Password: "passw0rd1"}
	assert.ErrorIs(t, neither.Validate(), errMissingCredentials)

	noPassword := StudentLoginRequest{Email: "maya@example.com"}
	assert.Error(t, noPassword.Validate())
}

func TestSubmitFeedbackRequest_Validate(t *testing.T) {
	valid := SubmitFeedbackRequest{StallID: 1, Rating: 4, Comment: "nice"}
	assert.NoError(t, valid.Validate())

	missingStall := SubmitFeedbackRequest{Rating: 4}
	assert.Error(t, missingStall.Validate())

	lowRating := SubmitFeedbackRequest{StallID: 1, Rating: 0}
	assert.Error(t, lowRating.Validate())

	highRating := SubmitFeedbackRequest{StallID: 1, Rating: 6}
	assert.Error(t, highRating.Validate())
}

func TestCheckRequest_Validate(t *testing.T) {
	valid := CheckRequest{StudentQRToken: "EXPO1.U1.abc.12345678"}
	assert.NoError(t, valid.Validate())

	missing := CheckRequest{}
	assert.Error(t, missing.Validate())
}
