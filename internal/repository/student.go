package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

var (
	ErrStudentEmailExists = dao.ErrStudentEmailExists
	ErrStudentRegNoExists = dao.ErrStudentRegNoExists
	ErrStudentNotFound    = dao.ErrStudentNotFound
	ErrAdmissionConflict  = dao.ErrAdmissionConflict
)

type StudentDAO interface {
	Insert(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByID(ctx context.Context, id uint) (dao.Student, error)
	FindByEmail(ctx context.Context, email string) (dao.Student, error)
	FindByRegistrationNo(ctx context.Context, regNo string) (dao.Student, error)
	FindByQRToken(ctx context.Context, token string) (dao.Student, error)
	FindAll(ctx context.Context, limit, offset int) ([]dao.Student, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) (dao.Student, error)
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:             s.ID,
		FullName:       s.FullName,
		Email:          s.Email,
		RegistrationNo: s.RegistrationNo,
		Password:       s.Password,
		SchoolName:     s.SchoolName,
		Phone:          s.Phone,
		QRToken:        s.QRToken,
		AdmissionState: domain.AdmissionState(s.AdmissionState),
		FeedbackCount:  s.FeedbackCount,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.Insert(ctx, dao.Student{
		FullName:       student.FullName,
		Email:          student.Email,
		RegistrationNo: student.RegistrationNo,
		Password:       student.Password,
		SchoolName:     student.SchoolName,
		Phone:          student.Phone,
		QRToken:        student.QRToken,
		AdmissionState: string(domain.AdmissionOutside),
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (domain.Student, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByRegistrationNo(ctx context.Context, regNo string) (domain.Student, error) {
	found, err := r.dao.FindByRegistrationNo(ctx, regNo)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByRegistrationNo -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByQRToken(ctx context.Context, token string) (domain.Student, error) {
	found, err := r.dao.FindByQRToken(ctx, token)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByQRToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Student, error) {
	found, err := r.dao.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, s := range found {
		students[i] = r.daoToDomain(s)
	}

	return students, nil
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *StudentRepository) UpdateProfile(ctx context.Context, id uint, email, passwordHash, phone string) (domain.Student, error) {
	fields := map[string]interface{}{}
	if email != "" {
		fields["email"] = email
	}
	if passwordHash != "" {
		fields["password"] = passwordHash
	}
	if phone != "" {
		fields["phone"] = phone
	}

	updated, err := r.dao.UpdateProfile(ctx, id, fields)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// AssignQRToken stores the issued identity token on a freshly created
// student.
func (r *StudentRepository) AssignQRToken(ctx context.Context, id uint, token string) (domain.Student, error) {
	updated, err := r.dao.UpdateProfile(ctx, id, map[string]interface{}{"qr_token": token})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.daoToDomain(updated), nil
}
