package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRankingNotFound = errors.New("ranking not found")

type Ranking struct {
	ID uint `gorm:"primaryKey"`

	StallID    uint      `gorm:"uniqueIndex;not null"`
	Rank       int       `gorm:"not null"`
	Score      float64   `gorm:"not null"`
	ComputedAt time.Time `gorm:"not null"`
}

// LeaderboardRow is a ranking joined with its stall metadata.
type LeaderboardRow struct {
	StallID     uint
	Rank        int
	Score       float64
	StallName   string
	StallNumber int
	SchoolName  string
}

type RankingDAO struct {
	db *gorm.DB
}

func NewRankingDAO(db *gorm.DB) *RankingDAO {
	return &RankingDAO{
		db: db,
	}
}

// ReplaceAll swaps the entire ranking set in one transaction. Readers see
// either the previous complete set or the new one, never a mix.
func (d *RankingDAO) ReplaceAll(ctx context.Context, rankings []Ranking) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Ranking{}).Error; err != nil {
			return err
		}
		if len(rankings) == 0 {
			return nil
		}

		return tx.Create(&rankings).Error
	})
}

func (d *RankingDAO) FindAll(ctx context.Context) ([]LeaderboardRow, error) {
	return d.findOrdered(ctx, 0)
}

func (d *RankingDAO) FindTop(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	return d.findOrdered(ctx, limit)
}

func (d *RankingDAO) findOrdered(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	query := d.db.WithContext(ctx).
		Table("rankings").
		Select("rankings.stall_id, rankings.rank, rankings.score, stalls.stall_name, stalls.stall_number, stalls.school_name").
		Joins("JOIN stalls ON stalls.id = rankings.stall_id").
		Order("rankings.rank ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RankingDAO) FindByStallID(ctx context.Context, stallID uint) (LeaderboardRow, error) {
	var row LeaderboardRow

	result := d.db.WithContext(ctx).
		Table("rankings").
		Select("rankings.stall_id, rankings.rank, rankings.score, stalls.stall_name, stalls.stall_number, stalls.school_name").
		Joins("JOIN stalls ON stalls.id = rankings.stall_id").
		Where("rankings.stall_id = ?", stallID).
		Scan(&row)
	if result.Error != nil {
		return LeaderboardRow{}, result.Error
	}
	if row.StallID == 0 {
		return LeaderboardRow{}, ErrRankingNotFound
	}

	return row, nil
}
