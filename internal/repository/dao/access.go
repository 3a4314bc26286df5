package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CheckEvent struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint   `gorm:"not null;index"`
	Action    string `gorm:"not null"` // "check_in" or "check_out"
	StallID   *uint  `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

type Visit struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint      `gorm:"not null;index"`
	StallID   uint      `gorm:"not null;index"`
	VisitedAt time.Time `gorm:"not null"`
}

// StallVisitCount is one stall's visit tally for the scoring pass.
type StallVisitCount struct {
	StallID uint
	Count   int
}

type AccessDAO struct {
	db *gorm.DB
}

func NewAccessDAO(db *gorm.DB) *AccessDAO {
	return &AccessDAO{
		db: db,
	}
}

// InsertAdmissionChange applies the guarded admission transition and
// appends the check event, plus the visit when the scan happened at a
// stall gate, in one transaction. The current state acts as the guard, so
// two concurrent scans resolve to one winner and one ErrAdmissionConflict,
// and a lost guard rolls the whole unit back leaving no log entries.
func (d *AccessDAO) InsertAdmissionChange(ctx context.Context, from, to string, event CheckEvent, visit *Visit) (CheckEvent, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Student{}).
			Where("id = ? AND admission_state = ?", event.StudentID, from).
			Update("admission_state", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var student Student
			if err := tx.First(&student, event.StudentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStudentNotFound
				}

				return err
			}

			return ErrAdmissionConflict
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if visit != nil {
			return tx.Create(visit).Error
		}

		return nil
	})
	if err != nil {
		return CheckEvent{}, err
	}

	return event, nil
}

func (d *AccessDAO) FindCheckEventsByStudent(ctx context.Context, studentID uint) ([]CheckEvent, error) {
	var events []CheckEvent

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// VisitCounts returns the visit tally for every stall with at least one
// visit record.
func (d *AccessDAO) VisitCounts(ctx context.Context) ([]StallVisitCount, error) {
	var counts []StallVisitCount

	result := d.db.WithContext(ctx).
		Table("visits").
		Select("stall_id, COUNT(*) AS count").
		Group("stall_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
