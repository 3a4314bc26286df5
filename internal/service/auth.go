package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/pkg/qrtoken"
	"github.com/expopass/expopass-api/internal/repository"
)

var (
	ErrStudentEmailExists = repository.ErrStudentEmailExists
	ErrStudentRegNoExists = repository.ErrStudentRegNoExists
	ErrStudentNotFound    = repository.ErrStudentNotFound
	ErrStaffEmailExists   = repository.ErrStaffEmailExists
	ErrStaffNotFound      = repository.ErrStaffNotFound
	ErrWrongPassword      = errors.New("wrong password")
)

type AuthStudentRepository interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByEmail(ctx context.Context, email string) (domain.Student, error)
	FindByRegistrationNo(ctx context.Context, regNo string) (domain.Student, error)
	AssignQRToken(ctx context.Context, id uint, token string) (domain.Student, error)
}

type AuthStaffRepository interface {
	Create(ctx context.Context, staff domain.StaffUser) (domain.StaffUser, error)
	FindByEmail(ctx context.Context, email string) (domain.StaffUser, error)
}

type AuthService struct {
	studentRepo AuthStudentRepository
	staffRepo   AuthStaffRepository
}

func NewAuthService(studentRepo AuthStudentRepository, staffRepo AuthStaffRepository) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
	}
}

// SignupStudent registers a student and issues their identity QR token.
func (s *AuthService) SignupStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	hashed, err := hashPassword(student.Password)
	if err != nil {
		return domain.Student{}, err
	}
	student.Password = hashed

	created, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.studentRepo.Create -> %w", err)
	}

	token, err := qrtoken.Issue(qrtoken.KindStudent, created.ID, time.Now().Unix())
	if err != nil {
		return domain.Student{}, fmt.Errorf("qrtoken.Issue -> %w", err)
	}

	updated, err := s.studentRepo.AssignQRToken(ctx, created.ID, token)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.studentRepo.AssignQRToken -> %w", err)
	}

	return updated, nil
}

// LoginStudent authenticates by email or registration number, whichever
// was supplied.
func (s *AuthService) LoginStudent(ctx context.Context, email, regNo, password string) (domain.Student, error) {
	var (
		student domain.Student
		err     error
	)
	if email != "" {
		student, err = s.studentRepo.FindByEmail(ctx, email)
	} else {
		student, err = s.studentRepo.FindByRegistrationNo(ctx, regNo)
	}
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.Student{}, ErrStudentNotFound
		}

		return domain.Student{}, fmt.Errorf("s.studentRepo find -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)); err != nil {
		return domain.Student{}, ErrWrongPassword
	}

	return student, nil
}

func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (domain.StaffUser, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return domain.StaffUser{}, ErrStaffNotFound
		}

		return domain.StaffUser{}, fmt.Errorf("s.staffRepo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return domain.StaffUser{}, ErrWrongPassword
	}

	return staff, nil
}

// CreateVolunteer provisions a volunteer account. Callers are expected to
// have verified the admin role already.
func (s *AuthService) CreateVolunteer(ctx context.Context, staff domain.StaffUser) (domain.StaffUser, error) {
	hashed, err := hashPassword(staff.Password)
	if err != nil {
		return domain.StaffUser{}, err
	}
	staff.Password = hashed
	staff.Role = domain.RoleVolunteer

	created, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("s.staffRepo.Create -> %w", err)
	}

	return created, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
