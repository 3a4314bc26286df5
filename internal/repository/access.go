package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

type AccessDAO interface {
	InsertAdmissionChange(ctx context.Context, from, to string, event dao.CheckEvent, visit *dao.Visit) (dao.CheckEvent, error)
	FindCheckEventsByStudent(ctx context.Context, studentID uint) ([]dao.CheckEvent, error)
	VisitCounts(ctx context.Context) ([]dao.StallVisitCount, error)
}

type AccessRepository struct {
	dao AccessDAO
}

func NewAccessRepository(dao AccessDAO) *AccessRepository {
	return &AccessRepository{
		dao: dao,
	}
}

func (r *AccessRepository) checkEventDaoToDomain(e dao.CheckEvent) domain.CheckEvent {
	return domain.CheckEvent{
		ID:        e.ID,
		StudentID: e.StudentID,
		Action:    e.Action,
		StallID:   e.StallID,
		CreatedAt: e.CreatedAt,
	}
}

// RecordAdmissionChange applies the guarded state transition and appends
// the admission log entries in one transaction.
func (r *AccessRepository) RecordAdmissionChange(ctx context.Context, from, to domain.AdmissionState, event domain.CheckEvent, visit *domain.Visit) (domain.CheckEvent, error) {
	var daoVisit *dao.Visit
	if visit != nil {
		daoVisit = &dao.Visit{
			StudentID: visit.StudentID,
			StallID:   visit.StallID,
			VisitedAt: visit.VisitedAt,
		}
	}

	created, err := r.dao.InsertAdmissionChange(ctx, string(from), string(to), dao.CheckEvent{
		StudentID: event.StudentID,
		Action:    event.Action,
		StallID:   event.StallID,
	}, daoVisit)
	if err != nil {
		return domain.CheckEvent{}, fmt.Errorf("r.dao.InsertAdmissionChange -> %w", err)
	}

	return r.checkEventDaoToDomain(created), nil
}

func (r *AccessRepository) CheckHistoryByStudent(ctx context.Context, studentID uint) ([]domain.CheckEvent, error) {
	found, err := r.dao.FindCheckEventsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCheckEventsByStudent -> %w", err)
	}

	events := make([]domain.CheckEvent, len(found))
	for i, e := range found {
		events[i] = r.checkEventDaoToDomain(e)
	}

	return events, nil
}

// VisitCounts keys the per-stall visit tallies by stall id.
func (r *AccessRepository) VisitCounts(ctx context.Context) (map[uint]int, error) {
	counts, err := r.dao.VisitCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.VisitCounts -> %w", err)
	}

	byStall := make(map[uint]int, len(counts))
	for _, c := range counts {
		byStall[c.StallID] = c.Count
	}

	return byStall, nil
}
