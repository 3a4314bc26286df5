package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/pkg/qrtoken"
	"github.com/expopass/expopass-api/internal/repository"
)

var (
	// ErrInvalidToken covers malformed tokens and tokens that resolve to
	// nothing. The two cases are deliberately indistinguishable to the
	// caller.
	ErrInvalidToken = errors.New("invalid QR token")

	ErrAlreadyCheckedIn  = errors.New("student is already inside the event")
	ErrAlreadyCheckedOut = errors.New("student is not inside the event")
)

type AccessStudentRepository interface {
	FindByQRToken(ctx context.Context, token string) (domain.Student, error)
}

type AccessStallRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
}

type AccessRepository interface {
	RecordAdmissionChange(ctx context.Context, from, to domain.AdmissionState, event domain.CheckEvent, visit *domain.Visit) (domain.CheckEvent, error)
	CheckHistoryByStudent(ctx context.Context, studentID uint) ([]domain.CheckEvent, error)
}

// AccessService owns the admission state machine. Volunteers scan a
// student's identity QR at the gates; the guarded transition in storage
// keeps double scans from producing double check-ins.
type AccessService struct {
	studentRepo AccessStudentRepository
	stallRepo   AccessStallRepository
	accessRepo  AccessRepository
}

func NewAccessService(studentRepo AccessStudentRepository, stallRepo AccessStallRepository, accessRepo AccessRepository) *AccessService {
	return &AccessService{
		studentRepo: studentRepo,
		stallRepo:   stallRepo,
		accessRepo:  accessRepo,
	}
}

// CheckIn moves a student from outside to inside. When the scan happens
// at a stall gate (gateStallID set), a visit is logged for that stall as
// a scoring signal.
func (s *AccessService) CheckIn(ctx context.Context, studentToken string, gateStallID *uint) (domain.Student, error) {
	student, err := s.resolveStudent(ctx, studentToken)
	if err != nil {
		return domain.Student{}, err
	}

	if gateStallID != nil {
		if _, err = s.stallRepo.FindByID(ctx, *gateStallID); err != nil {
			if errors.Is(err, repository.ErrStallNotFound) {
				return domain.Student{}, ErrStallNotFound
			}

			return domain.Student{}, fmt.Errorf("s.stallRepo.FindByID -> %w", err)
		}
	}

	event := domain.CheckEvent{
		StudentID: student.ID,
		Action:    domain.CheckActionIn,
		StallID:   gateStallID,
	}

	var visit *domain.Visit
	if gateStallID != nil {
		visit = &domain.Visit{
			StudentID: student.ID,
			StallID:   *gateStallID,
			VisitedAt: time.Now(),
		}
	}

	_, err = s.accessRepo.RecordAdmissionChange(ctx, domain.AdmissionOutside, domain.AdmissionInside, event, visit)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionConflict) {
			return domain.Student{}, ErrAlreadyCheckedIn
		}

		return domain.Student{}, fmt.Errorf("s.accessRepo.RecordAdmissionChange -> %w", err)
	}
	student.AdmissionState = domain.AdmissionInside

	return student, nil
}

// CheckOut moves a student from inside back to outside.
func (s *AccessService) CheckOut(ctx context.Context, studentToken string) (domain.Student, error) {
	student, err := s.resolveStudent(ctx, studentToken)
	if err != nil {
		return domain.Student{}, err
	}

	event := domain.CheckEvent{
		StudentID: student.ID,
		Action:    domain.CheckActionOut,
	}

	_, err = s.accessRepo.RecordAdmissionChange(ctx, domain.AdmissionInside, domain.AdmissionOutside, event, nil)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionConflict) {
			return domain.Student{}, ErrAlreadyCheckedOut
		}

		return domain.Student{}, fmt.Errorf("s.accessRepo.RecordAdmissionChange -> %w", err)
	}
	student.AdmissionState = domain.AdmissionOutside

	return student, nil
}

func (s *AccessService) CheckHistory(ctx context.Context, studentID uint) ([]domain.CheckEvent, error) {
	events, err := s.accessRepo.CheckHistoryByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.accessRepo.CheckHistoryByStudent -> %w", err)
	}

	return events, nil
}

func (s *AccessService) resolveStudent(ctx context.Context, token string) (domain.Student, error) {
	kind, _, ok := qrtoken.Verify(token)
	if !ok || kind != qrtoken.KindStudent {
		return domain.Student{}, ErrInvalidToken
	}

	student, err := s.studentRepo.FindByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.Student{}, ErrInvalidToken
		}

		return domain.Student{}, fmt.Errorf("s.studentRepo.FindByQRToken -> %w", err)
	}

	return student, nil
}
