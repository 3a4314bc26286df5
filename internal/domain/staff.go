package domain

import "time"

const (
	RoleStudent   = "student"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// StaffUser is a non-participant account: volunteers run the check-in
// desks, admins manage stalls and trigger ranking recomputation.
type StaffUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
