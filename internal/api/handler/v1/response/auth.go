package response

import "github.com/expopass/expopass-api/internal/domain"

type StudentLoginResponse struct {
	Token   string         `json:"token"`
	Student domain.Student `json:"student"`
}

type StaffLoginResponse struct {
	Token string           `json:"token"`
	Staff domain.StaffUser `json:"staff"`
}
