package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

var (
	ErrDuplicateFeedback = dao.ErrDuplicateFeedback
	ErrFeedbackLimit     = dao.ErrFeedbackLimit
	ErrFeedbackNotFound  = dao.ErrFeedbackNotFound
)

type FeedbackDAO interface {
	InsertWithCounters(ctx context.Context, feedback dao.Feedback, limit int) (dao.Feedback, int, error)
	FindByStudentAndStall(ctx context.Context, studentID, stallID uint) (dao.Feedback, error)
	FindByStudent(ctx context.Context, studentID uint) ([]dao.FeedbackWithStall, error)
	RatingAggregates(ctx context.Context) ([]dao.StallRatingAggregate, error)
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) daoToDomain(f dao.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:          f.ID,
		StudentID:   f.StudentID,
		StallID:     f.StallID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		SubmittedAt: f.SubmittedAt,
	}
}

// Submit records the feedback and returns it along with the student's new
// total. Duplicate and over-cap submissions surface as ErrDuplicateFeedback
// and ErrFeedbackLimit with no partial effects.
func (r *FeedbackRepository) Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, int, error) {
	created, total, err := r.dao.InsertWithCounters(ctx, dao.Feedback{
		StudentID:   feedback.StudentID,
		StallID:     feedback.StallID,
		Rating:      feedback.Rating,
		Comment:     feedback.Comment,
		SubmittedAt: feedback.SubmittedAt,
	}, domain.MaxFeedbackPerStudent)
	if err != nil {
		return domain.Feedback{}, 0, fmt.Errorf("r.dao.InsertWithCounters -> %w", err)
	}

	return r.daoToDomain(created), total, nil
}

func (r *FeedbackRepository) FindByStudentAndStall(ctx context.Context, studentID, stallID uint) (domain.Feedback, error) {
	found, err := r.dao.FindByStudentAndStall(ctx, studentID, stallID)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.FindByStudentAndStall -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FeedbackRepository) HistoryByStudent(ctx context.Context, studentID uint) ([]domain.VisitEntry, error) {
	rows, err := r.dao.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudent -> %w", err)
	}

	entries := make([]domain.VisitEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.VisitEntry{
			StallID:     row.StallID,
			StallNumber: row.StallNumber,
			StallName:   row.StallName,
			SchoolName:  row.SchoolName,
			Rating:      row.Rating,
			Comment:     row.Comment,
			VisitedAt:   row.SubmittedAt,
		}
	}

	return entries, nil
}

// RatingAggregates keys the per-stall rating summaries by stall id.
func (r *FeedbackRepository) RatingAggregates(ctx context.Context) (map[uint]domain.RatingAggregate, error) {
	aggs, err := r.dao.RatingAggregates(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RatingAggregates -> %w", err)
	}

	byStall := make(map[uint]domain.RatingAggregate, len(aggs))
	for _, agg := range aggs {
		byStall[agg.StallID] = domain.RatingAggregate{
			Average: agg.Average,
			Count:   agg.Count,
		}
	}

	return byStall, nil
}
