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
	ErrNotEligible       = errors.New("student must be checked in at the event")
	ErrFeedbackLimit     = repository.ErrFeedbackLimit
	ErrStallNotFound     = repository.ErrStallNotFound
	ErrDuplicateFeedback = repository.ErrDuplicateFeedback
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

type EngagementStudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

type EngagementStallRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindByQRToken(ctx context.Context, token string) (domain.Stall, error)
}

type EngagementFeedbackRepository interface {
	Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, int, error)
	FindByStudentAndStall(ctx context.Context, studentID, stallID uint) (domain.Feedback, error)
	HistoryByStudent(ctx context.Context, studentID uint) ([]domain.VisitEntry, error)
}

// EngagementService is the feedback ledger: it gates stall interactions
// on admission state and enforces the one-per-stall and global-cap
// invariants, leaning on the storage layer for the racy parts.
type EngagementService struct {
	studentRepo  EngagementStudentRepository
	stallRepo    EngagementStallRepository
	feedbackRepo EngagementFeedbackRepository
}

func NewEngagementService(studentRepo EngagementStudentRepository, stallRepo EngagementStallRepository, feedbackRepo EngagementFeedbackRepository) *EngagementService {
	return &EngagementService{
		studentRepo:  studentRepo,
		stallRepo:    stallRepo,
		feedbackRepo: feedbackRepo,
	}
}

// ScanStall resolves a stall QR token for a checked-in student. Read-only
// and idempotent; scanning twice is fine. Unknown and malformed tokens
// are rejected identically.
func (s *EngagementService) ScanStall(ctx context.Context, studentID uint, token string) (domain.ScanResult, error) {
	kind, _, ok := qrtoken.Verify(token)
	if !ok || kind != qrtoken.KindStall {
		return domain.ScanResult{}, ErrInvalidToken
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}
	if !student.AdmissionState.Eligible() {
		return domain.ScanResult{}, ErrNotEligible
	}

	stall, err := s.stallRepo.FindByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.ScanResult{}, ErrInvalidToken
		}

		return domain.ScanResult{}, fmt.Errorf("s.stallRepo.FindByQRToken -> %w", err)
	}

	result := domain.ScanResult{Stall: stall}

	existing, err := s.feedbackRepo.FindByStudentAndStall(ctx, studentID, stall.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrFeedbackNotFound) {
			return domain.ScanResult{}, fmt.Errorf("s.feedbackRepo.FindByStudentAndStall -> %w", err)
		}

		return result, nil
	}

	result.AlreadyReviewed = true
	result.ExistingRating = &existing

	return result, nil
}

// SubmitFeedback validates and records one feedback. The checks run in a
// fixed order so a request failing several of them gets a stable answer.
// The duplicate pre-check is advisory; the composite unique index makes
// the final insert authoritative under concurrency.
func (s *EngagementService) SubmitFeedback(ctx context.Context, studentID, stallID uint, rating int, comment string) (domain.SubmissionReceipt, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}
	if !student.AdmissionState.Eligible() {
		return domain.SubmissionReceipt{}, ErrNotEligible
	}

	if student.FeedbackCount >= domain.MaxFeedbackPerStudent {
		return domain.SubmissionReceipt{}, ErrFeedbackLimit
	}

	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.SubmissionReceipt{}, ErrStallNotFound
		}

		return domain.SubmissionReceipt{}, fmt.Errorf("s.stallRepo.FindByID -> %w", err)
	}

	if _, err = s.feedbackRepo.FindByStudentAndStall(ctx, studentID, stallID); err == nil {
		return domain.SubmissionReceipt{}, ErrDuplicateFeedback
	} else if !errors.Is(err, repository.ErrFeedbackNotFound) {
		return domain.SubmissionReceipt{}, fmt.Errorf("s.feedbackRepo.FindByStudentAndStall -> %w", err)
	}

	if rating < 1 || rating > 5 {
		return domain.SubmissionReceipt{}, ErrInvalidRating
	}

	created, total, err := s.feedbackRepo.Submit(ctx, domain.Feedback{
		StudentID:   studentID,
		StallID:     stallID,
		Rating:      rating,
		Comment:     comment,
		SubmittedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFeedback) {
			return domain.SubmissionReceipt{}, ErrDuplicateFeedback
		}
		if errors.Is(err, repository.ErrFeedbackLimit) {
			return domain.SubmissionReceipt{}, ErrFeedbackLimit
		}

		return domain.SubmissionReceipt{}, fmt.Errorf("s.feedbackRepo.Submit -> %w", err)
	}

	return domain.SubmissionReceipt{
		Feedback:    created,
		StallName:   stall.StallName,
		StallNumber: stall.StallNumber,
		TotalGiven:  total,
		Remaining:   domain.MaxFeedbackPerStudent - total,
	}, nil
}

// VisitHistory returns the student's feedback history enriched with stall
// metadata and the remaining quota.
func (s *EngagementService) VisitHistory(ctx context.Context, studentID uint) (domain.VisitHistory, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.VisitHistory{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	entries, err := s.feedbackRepo.HistoryByStudent(ctx, studentID)
	if err != nil {
		return domain.VisitHistory{}, fmt.Errorf("s.feedbackRepo.HistoryByStudent -> %w", err)
	}

	return domain.VisitHistory{
		TotalVisits:        len(entries),
		RemainingFeedbacks: domain.MaxFeedbackPerStudent - student.FeedbackCount,
		Visits:             entries,
	}, nil
}
