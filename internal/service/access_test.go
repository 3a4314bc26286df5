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

type fakeAccessStudentRepo struct {
	students map[string]domain.Student
}

func (f *fakeAccessStudentRepo) FindByQRToken(_ context.Context, token string) (domain.Student, error) {
	student, ok := f.students[token]
	if !ok {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	return student, nil
}

type fakeAccessRepo struct {
	states map[uint]domain.AdmissionState
	events []domain.CheckEvent
	visits []domain.Visit
}

func (f *fakeAccessRepo) RecordAdmissionChange(_ context.Context, from, to domain.AdmissionState, event domain.CheckEvent, visit *domain.Visit) (domain.CheckEvent, error) {
	state, ok := f.states[event.StudentID]
	if !ok {
		return domain.CheckEvent{}, repository.ErrStudentNotFound
	}
	if state != from {
		return domain.CheckEvent{}, repository.ErrAdmissionConflict
	}

	f.states[event.StudentID] = to
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, event)
	if visit != nil {
		v := *visit
		v.ID = uint(len(f.visits) + 1)
		f.visits = append(f.visits, v)
	}

	return event, nil
}

func (f *fakeAccessRepo) CheckHistoryByStudent(_ context.Context, studentID uint) ([]domain.CheckEvent, error) {
	var events []domain.CheckEvent
	for _, event := range f.events {
		if event.StudentID == studentID {
			events = append(events, event)
		}
	}

	return events, nil
}

func newAccessFixture(t *testing.T) (*AccessService, *fakeAccessRepo, string) {
	t.Helper()

	studentToken, err := qrtoken.Issue(qrtoken.KindStudent, 1, time.Now().Unix())
	require.NoError(t, err)

	studentRepo := &fakeAccessStudentRepo{students: map[string]domain.Student{
		studentToken: {ID: 1, FullName: "Maya Iyer", AdmissionState: domain.AdmissionOutside, QRToken: studentToken},
	}}
	stallRepo := &fakeStallRepo{stalls: map[uint]domain.Stall{
		10: {ID: 10, StallNumber: 10},
	}}
	accessRepo := &fakeAccessRepo{states: map[uint]domain.AdmissionState{1: domain.AdmissionOutside}}

	return NewAccessService(studentRepo, stallRepo, accessRepo), accessRepo, studentToken
}

func TestCheckInAndOut(t *testing.T) {
	svc, accessRepo, token := newAccessFixture(t)

	student, err := svc.CheckIn(context.Background(), token, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionInside, student.AdmissionState)

	student, err = svc.CheckOut(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionOutside, student.AdmissionState)

	require.Len(t, accessRepo.events, 2)
	assert.Equal(t, domain.CheckActionIn, accessRepo.events[0].Action)
	assert.Equal(t, domain.CheckActionOut, accessRepo.events[1].Action)
	assert.Empty(t, accessRepo.visits)
}

func TestCheckIn_DoubleScanRejected(t *testing.T) {
	svc, accessRepo, token := newAccessFixture(t)

	_, err := svc.CheckIn(context.Background(), token, nil)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), token, nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// The losing scan leaves no trace.
	assert.Len(t, accessRepo.events, 1)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _, token := newAccessFixture(t)

	_, err := svc.CheckOut(context.Background(), token)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckIn_AtStallGateRecordsVisit(t *testing.T) {
	svc, accessRepo, token := newAccessFixture(t)

	gate := uint(10)
	_, err := svc.CheckIn(context.Background(), token, &gate)
	require.NoError(t, err)

	require.Len(t, accessRepo.visits, 1)
	assert.Equal(t, uint(10), accessRepo.visits[0].StallID)
	assert.Equal(t, uint(1), accessRepo.visits[0].StudentID)

	require.Len(t, accessRepo.events, 1)
	require.NotNil(t, accessRepo.events[0].StallID)
	assert.Equal(t, gate, *accessRepo.events[0].StallID)
}

func TestCheckIn_UnknownGate(t *testing.T) {
	svc, accessRepo, token := newAccessFixture(t)

	gate := uint(9999)
	_, err := svc.CheckIn(context.Background(), token, &gate)
	assert.ErrorIs(t, err, ErrStallNotFound)
	assert.Empty(t, accessRepo.events)
}

func TestCheckIn_RejectsBadTokens(t *testing.T) {
	svc, _, _ := newAccessFixture(t)

	_, err := svc.CheckIn(context.Background(), "garbage", nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Stall tokens are not student identities.
	stallToken, err := qrtoken.Issue(qrtoken.KindStall, 10, time.Now().Unix())
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), stallToken, nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Valid format, no matching student.
	unknownToken, err := qrtoken.Issue(qrtoken.KindStudent, 777, time.Now().Unix())
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), unknownToken, nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCheckHistory(t *testing.T) {
	svc, _, token := newAccessFixture(t)

	_, err := svc.CheckIn(context.Background(), token, nil)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), token)
	require.NoError(t, err)

	events, err := svc.CheckHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.CheckActionIn, events[0].Action)
	assert.Equal(t, domain.CheckActionOut, events[1].Action)
}
