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
	ErrStudentEmailExists = errors.New("email already exists")
	ErrStudentRegNoExists = errors.New("registration number already exists")
	ErrStudentNotFound    = errors.New("student not found")
	ErrAdmissionConflict  = errors.New("admission state conflict")
)

type Student struct {
	ID uint `gorm:"primaryKey"`

	FullName       string `gorm:"not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	RegistrationNo string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	SchoolName     string
	Phone          string
	QRToken        string `gorm:"uniqueIndex"`

	// AdmissionState is "outside" or "inside"; transitions go through
	// AccessDAO.InsertAdmissionChange so the guard, the check event and
	// the optional visit commit as one unit.
	AdmissionState string `gorm:"not null;default:outside"`

	// FeedbackCount is a derived counter co-committed with every
	// feedback insert, never recomputed from the ledger on reads.
	FeedbackCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) Insert(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.Message, "idx_students_email") {
				return Student{}, ErrStudentEmailExists
			}
			if strings.Contains(pgErr.Message, "idx_students_registration_no") {
				return Student{}, ErrStudentRegNoExists
			}
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByEmail(ctx context.Context, email string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByRegistrationNo(ctx context.Context, regNo string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "registration_no = ?", regNo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByQRToken(ctx context.Context, token string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "qr_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindAll(ctx context.Context, limit, offset int) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

func (d *StudentDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Student{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// UpdateProfile applies a partial update of the mutable profile fields.
func (d *StudentDAO) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) (Student, error) {
	result := d.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Student{}, ErrStudentEmailExists
		}

		return Student{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Student{}, ErrStudentNotFound
	}

	return d.FindByID(ctx, id)
}
