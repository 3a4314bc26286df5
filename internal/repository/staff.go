package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

var (
	ErrStaffEmailExists = dao.ErrStaffEmailExists
	ErrStaffNotFound    = dao.ErrStaffNotFound
)

type StaffDAO interface {
	Insert(ctx context.Context, staff dao.StaffUser) (dao.StaffUser, error)
	FindByID(ctx context.Context, id uint) (dao.StaffUser, error)
	FindByEmail(ctx context.Context, email string) (dao.StaffUser, error)
}

type StaffRepository struct {
	dao StaffDAO
}

func NewStaffRepository(dao StaffDAO) *StaffRepository {
	return &StaffRepository{
		dao: dao,
	}
}

func (r *StaffRepository) daoToDomain(s dao.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		ID:        s.ID,
		Email:     s.Email,
		Password:  s.Password,
		FullName:  s.FullName,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff domain.StaffUser) (domain.StaffUser, error) {
	created, err := r.dao.Insert(ctx, dao.StaffUser{
		Email:    staff.Email,
		Password: staff.Password,
		FullName: staff.FullName,
		Role:     staff.Role,
	})
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id uint) (domain.StaffUser, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (domain.StaffUser, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}
