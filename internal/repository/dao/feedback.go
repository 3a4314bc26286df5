package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateFeedback = errors.New("feedback already submitted for this stall")
	ErrFeedbackLimit     = errors.New("feedback limit reached")
	ErrFeedbackNotFound  = errors.New("feedback not found")
)

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint `gorm:"not null;uniqueIndex:idx_feedbacks_student_stall,priority:1"`
	StallID   uint `gorm:"not null;uniqueIndex:idx_feedbacks_student_stall,priority:2"`

	Rating      int `gorm:"not null"`
	Comment     string
	SubmittedAt time.Time `gorm:"not null"`
}

// FeedbackWithStall is a feedback row joined with its stall metadata.
type FeedbackWithStall struct {
	StallID     uint
	StallNumber int
	StallName   string
	SchoolName  string
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

// StallRatingAggregate is one stall's rating summary for the scoring pass.
type StallRatingAggregate struct {
	StallID uint
	Average float64
	Count   int
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

// InsertWithCounters inserts a feedback record and bumps both derived
// counters in one transaction. The composite unique index resolves
// concurrent duplicates to exactly one winner, and the guarded student
// update enforces the global cap; either failure rolls back the whole
// unit. Returns the student's new total on success.
func (d *FeedbackDAO) InsertWithCounters(ctx context.Context, feedback Feedback, limit int) (Feedback, int, error) {
	var total int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "idx_feedbacks_student_stall") {
				return ErrDuplicateFeedback
			}

			return err
		}

		result := tx.Model(&Student{}).
			Where("id = ? AND feedback_count < ?", feedback.StudentID, limit).
			UpdateColumn("feedback_count", gorm.Expr("feedback_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFeedbackLimit
		}

		result = tx.Model(&Stall{}).
			Where("id = ?", feedback.StallID).
			UpdateColumn("total_feedback_count", gorm.Expr("total_feedback_count + 1"))
		if result.Error != nil {
			return result.Error
		}

		var student Student
		if err := tx.Select("feedback_count").First(&student, feedback.StudentID).Error; err != nil {
			return err
		}
		total = student.FeedbackCount

		return nil
	})
	if err != nil {
		return Feedback{}, 0, err
	}

	return feedback, total, nil
}

func (d *FeedbackDAO) FindByStudentAndStall(ctx context.Context, studentID, stallID uint) (Feedback, error) {
	var feedback Feedback

	result := d.db.WithContext(ctx).
		First(&feedback, "student_id = ? AND stall_id = ?", studentID, stallID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Feedback{}, ErrFeedbackNotFound
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByStudent(ctx context.Context, studentID uint) ([]FeedbackWithStall, error) {
	var rows []FeedbackWithStall

	result := d.db.WithContext(ctx).
		Table("feedbacks").
		Select("feedbacks.stall_id, stalls.stall_number, stalls.stall_name, stalls.school_name, feedbacks.rating, feedbacks.comment, feedbacks.submitted_at").
		Joins("JOIN stalls ON stalls.id = feedbacks.stall_id").
		Where("feedbacks.student_id = ?", studentID).
		Order("feedbacks.submitted_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *FeedbackDAO) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Feedback{}).
		Where("student_id = ?", studentID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// RatingAggregates returns the per-stall rating average and count for
// every stall that has at least one feedback record.
func (d *FeedbackDAO) RatingAggregates(ctx context.Context) ([]StallRatingAggregate, error) {
	var aggs []StallRatingAggregate

	result := d.db.WithContext(ctx).
		Table("feedbacks").
		Select("stall_id, AVG(rating) AS average, COUNT(*) AS count").
		Group("stall_id").
		Scan(&aggs)
	if result.Error != nil {
		return nil, result.Error
	}

	return aggs, nil
}
