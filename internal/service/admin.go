package service

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
)

type AdminStaffRepository interface {
	FindByID(ctx context.Context, id uint) (domain.StaffUser, error)
}

type AdminStudentRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]domain.Student, error)
	Count(ctx context.Context) (int64, error)
}

type AdminStallRepository interface {
	Count(ctx context.Context) (int64, error)
}

// EventStats is the admin dashboard summary.
type EventStats struct {
	TotalStudents int64 `json:"total_students"`
	TotalStalls   int64 `json:"total_stalls"`
}

type AdminService struct {
	staffRepo   AdminStaffRepository
	studentRepo AdminStudentRepository
	stallRepo   AdminStallRepository
}

func NewAdminService(staffRepo AdminStaffRepository, studentRepo AdminStudentRepository, stallRepo AdminStallRepository) *AdminService {
	return &AdminService{
		staffRepo:   staffRepo,
		studentRepo: studentRepo,
		stallRepo:   stallRepo,
	}
}

func (s *AdminService) GetStaff(ctx context.Context, id uint) (domain.StaffUser, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("s.staffRepo.FindByID -> %w", err)
	}

	return staff, nil
}

func (s *AdminService) ListStudents(ctx context.Context, limit, offset int) ([]domain.Student, error) {
	students, err := s.studentRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.studentRepo.FindAll -> %w", err)
	}

	return students, nil
}

func (s *AdminService) Stats(ctx context.Context) (EventStats, error) {
	students, err := s.studentRepo.Count(ctx)
	if err != nil {
		return EventStats{}, fmt.Errorf("s.studentRepo.Count -> %w", err)
	}

	stalls, err := s.stallRepo.Count(ctx)
	if err != nil {
		return EventStats{}, fmt.Errorf("s.stallRepo.Count -> %w", err)
	}

	return EventStats{
		TotalStudents: students,
		TotalStalls:   stalls,
	}, nil
}
