package service

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
)

type StudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
	UpdateProfile(ctx context.Context, id uint, email, passwordHash, phone string) (domain.Student, error)
}

type StudentService struct {
	repo StudentRepository
}

func NewStudentService(repo StudentRepository) *StudentService {
	return &StudentService{
		repo: repo,
	}
}

func (s *StudentService) GetStudent(ctx context.Context, id uint) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student, nil
}

func (s *StudentService) UpdateProfile(ctx context.Context, id uint, email, password, phone string) (domain.Student, error) {
	var hashed string
	if password != "" {
		var err error
		hashed, err = hashPassword(password)
		if err != nil {
			return domain.Student{}, err
		}
	}

	updated, err := s.repo.UpdateProfile(ctx, id, email, hashed, phone)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

// QRToken returns the student's identity token string. Rendering it as an
// image is the client's concern.
func (s *StudentService) QRToken(ctx context.Context, id uint) (string, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student.QRToken, nil
}
