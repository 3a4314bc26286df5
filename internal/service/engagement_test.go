package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/pkg/qrtoken"
	"github.com/expopass/expopass-api/internal/repository"
)

type fakeStudentRepo struct {
	students map[uint]domain.Student
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id uint) (domain.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	return student, nil
}

type fakeStallRepo struct {
	stalls map[uint]domain.Stall
}

func (f *fakeStallRepo) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}

	return stall, nil
}

func (f *fakeStallRepo) FindByQRToken(_ context.Context, token string) (domain.Stall, error) {
	for _, stall := range f.stalls {
		if stall.QRToken == token {
			return stall, nil
		}
	}

	return domain.Stall{}, repository.ErrStallNotFound
}

type fakeFeedbackRepo struct {
	feedbacks []domain.Feedback
	nextID    uint
	submitErr error
}

func (f *fakeFeedbackRepo) Submit(_ context.Context, feedback domain.Feedback) (domain.Feedback, int, error) {
	if f.submitErr != nil {
		return domain.Feedback{}, 0, f.submitErr
	}

	f.nextID++
	feedback.ID = f.nextID
	f.feedbacks = append(f.feedbacks, feedback)

	total := 0
	for _, existing := range f.feedbacks {
		if existing.StudentID == feedback.StudentID {
			total++
		}
	}

	return feedback, total, nil
}

func (f *fakeFeedbackRepo) FindByStudentAndStall(_ context.Context, studentID, stallID uint) (domain.Feedback, error) {
	for _, existing := range f.feedbacks {
		if existing.StudentID == studentID && existing.StallID == stallID {
			return existing, nil
		}
	}

	return domain.Feedback{}, repository.ErrFeedbackNotFound
}

func (f *fakeFeedbackRepo) HistoryByStudent(_ context.Context, studentID uint) ([]domain.VisitEntry, error) {
	var entries []domain.VisitEntry
	for _, existing := range f.feedbacks {
		if existing.StudentID == studentID {
			entries = append(entries, domain.VisitEntry{
				StallID: existing.StallID,
				Rating:  existing.Rating,
			})
		}
	}

	return entries, nil
}

func newEngagementFixture(t *testing.T) (*EngagementService, *fakeFeedbackRepo, string) {
	t.Helper()

	stallToken, err := qrtoken.Issue(qrtoken.KindStall, 10, time.Now().Unix())
	require.NoError(t, err)

	studentRepo := &fakeStudentRepo{students: map[uint]domain.Student{
		1: {ID: 1, AdmissionState: domain.AdmissionInside},
		2: {ID: 2, AdmissionState: domain.AdmissionOutside},
		3: {ID: 3, AdmissionState: domain.AdmissionInside, FeedbackCount: domain.MaxFeedbackPerStudent},
	}}
	stallRepo := &fakeStallRepo{stalls: map[uint]domain.Stall{
		10: {ID: 10, StallNumber: 10, StallName: "Rocket Lab", QRToken: stallToken},
	}}
	feedbackRepo := &fakeFeedbackRepo{}

	return NewEngagementService(studentRepo, stallRepo, feedbackRepo), feedbackRepo, stallToken
}

func TestScanStall(t *testing.T) {
	svc, feedbackRepo, stallToken := newEngagementFixture(t)

	result, err := svc.ScanStall(context.Background(), 1, stallToken)
	require.NoError(t, err)
	assert.Equal(t, uint(10), result.Stall.ID)
	assert.False(t, result.AlreadyReviewed)
	assert.Nil(t, result.ExistingRating)

	// After a submission the scan reports the existing rating.
	feedbackRepo.feedbacks = append(feedbackRepo.feedbacks, domain.Feedback{
		ID: 1, StudentID: 1, StallID: 10, Rating: 4,
	})

	result, err = svc.ScanStall(context.Background(), 1, stallToken)
	require.NoError(t, err)
	assert.True(t, result.AlreadyReviewed)
	require.NotNil(t, result.ExistingRating)
	assert.Equal(t, 4, result.ExistingRating.Rating)
}

func TestScanStall_RequiresCheckIn(t *testing.T) {
	svc, _, stallToken := newEngagementFixture(t)

	_, err := svc.ScanStall(context.Background(), 2, stallToken)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestScanStall_RejectsBadTokens(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	// Malformed token.
	_, err := svc.ScanStall(context.Background(), 1, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Well-formed token of the wrong kind.
	studentToken, err := qrtoken.Issue(qrtoken.KindStudent, 1, time.Now().Unix())
	require.NoError(t, err)
	_, err = svc.ScanStall(context.Background(), 1, studentToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Well-formed stall token that matches nothing. Indistinguishable
	// from the malformed case on purpose.
	unknownToken, err := qrtoken.Issue(qrtoken.KindStall, 9999, time.Now().Unix())
	require.NoError(t, err)
	_, err = svc.ScanStall(context.Background(), 1, unknownToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubmitFeedback(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	receipt, err := svc.SubmitFeedback(context.Background(), 1, 10, 5, "great demos")
	require.NoError(t, err)
	assert.Equal(t, 5, receipt.Feedback.Rating)
	assert.Equal(t, uint(10), receipt.Feedback.StallID)
	assert.Equal(t, "Rocket Lab", receipt.StallName)
	assert.Equal(t, 1, receipt.TotalGiven)
	assert.Equal(t, domain.MaxFeedbackPerStudent-1, receipt.Remaining)
}

func TestSubmitFeedback_RejectionOrder(t *testing.T) {
	svc, feedbackRepo, _ := newEngagementFixture(t)

	// Not checked in beats everything else, even an invalid rating.
	_, err := svc.SubmitFeedback(context.Background(), 2, 10, 99, "")
	assert.ErrorIs(t, err, ErrNotEligible)

	// At the cap, the limit fires before the stall lookup.
	_, err = svc.SubmitFeedback(context.Background(), 3, 9999, 3, "")
	assert.ErrorIs(t, err, ErrFeedbackLimit)

	// Unknown stall before the duplicate check.
	_, err = svc.SubmitFeedback(context.Background(), 1, 9999, 3, "")
	assert.ErrorIs(t, err, ErrStallNotFound)

	// Duplicate before the rating validation.
	feedbackRepo.feedbacks = append(feedbackRepo.feedbacks, domain.Feedback{
		StudentID: 1, StallID: 10, Rating: 4,
	})
	_, err = svc.SubmitFeedback(context.Background(), 1, 10, 99, "")
	assert.ErrorIs(t, err, ErrDuplicateFeedback)

	// Rating validation last.
	feedbackRepo.feedbacks = nil
	_, err = svc.SubmitFeedback(context.Background(), 1, 10, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.SubmitFeedback(context.Background(), 1, 10, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestSubmitFeedback_StorageRace(t *testing.T) {
	svc, feedbackRepo, _ := newEngagementFixture(t)

	// A concurrent writer can slip past the advisory pre-check; the
	// storage error surfaces as the same sentinel.
	feedbackRepo.submitErr = repository.ErrDuplicateFeedback
	_, err := svc.SubmitFeedback(context.Background(), 1, 10, 4, "")
	assert.ErrorIs(t, err, ErrDuplicateFeedback)

	feedbackRepo.submitErr = repository.ErrFeedbackLimit
	_, err = svc.SubmitFeedback(context.Background(), 1, 10, 4, "")
	assert.ErrorIs(t, err, ErrFeedbackLimit)
}

func TestVisitHistory(t *testing.T) {
	svc, _, _ := newEngagementFixture(t)

	_, err := svc.SubmitFeedback(context.Background(), 1, 10, 5, "")
	require.NoError(t, err)

	history, err := svc.VisitHistory(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalVisits)
	require.Len(t, history.Visits, 1)
	assert.Equal(t, uint(10), history.Visits[0].StallID)
}
