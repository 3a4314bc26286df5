package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrStallNotFound     = errors.New("stall not found")
	ErrStallNumberExists = errors.New("stall number already exists")
)

type Stall struct {
	ID uint `gorm:"primaryKey"`

	StallNumber int    `gorm:"uniqueIndex;not null"`
	StallName   string `gorm:"not null"`
	SchoolName  string `gorm:"not null"`
	Description string
	Location    string
	QRToken     string `gorm:"uniqueIndex;not null"`

	// TotalFeedbackCount is co-committed with every feedback insert.
	TotalFeedbackCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StallDAO struct {
	db *gorm.DB
}

func NewStallDAO(db *gorm.DB) *StallDAO {
	return &StallDAO{
		db: db,
	}
}

func (d *StallDAO) Insert(ctx context.Context, stall Stall) (Stall, error) {
	result := d.db.WithContext(ctx).Create(&stall)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Stall{}, ErrStallNumberExists
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindByID(ctx context.Context, id uint) (Stall, error) {
	var stall Stall

	result := d.db.WithContext(ctx).First(&stall, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stall{}, ErrStallNotFound
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindByQRToken(ctx context.Context, token string) (Stall, error) {
	var stall Stall

	result := d.db.WithContext(ctx).First(&stall, "qr_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stall{}, ErrStallNotFound
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

// FindAll returns stalls in creation order. The scoring engine relies on
// this order for its deterministic tie-break.
func (d *StallDAO) FindAll(ctx context.Context) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).Order("id ASC").Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

func (d *StallDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Stall{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
