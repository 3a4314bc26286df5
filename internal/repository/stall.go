package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

var (
	ErrStallNotFound     = dao.ErrStallNotFound
	ErrStallNumberExists = dao.ErrStallNumberExists
)

type StallDAO interface {
	Insert(ctx context.Context, stall dao.Stall) (dao.Stall, error)
	FindByID(ctx context.Context, id uint) (dao.Stall, error)
	FindByQRToken(ctx context.Context, token string) (dao.Stall, error)
	FindAll(ctx context.Context) ([]dao.Stall, error)
	Count(ctx context.Context) (int64, error)
}

type StallRepository struct {
	dao StallDAO
}

func NewStallRepository(dao StallDAO) *StallRepository {
	return &StallRepository{
		dao: dao,
	}
}

func (r *StallRepository) daoToDomain(s dao.Stall) domain.Stall {
	return domain.Stall{
		ID:                 s.ID,
		StallNumber:        s.StallNumber,
		StallName:          s.StallName,
		SchoolName:         s.SchoolName,
		Description:        s.Description,
		Location:           s.Location,
		QRToken:            s.QRToken,
		TotalFeedbackCount: s.TotalFeedbackCount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (r *StallRepository) Create(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	created, err := r.dao.Insert(ctx, dao.Stall{
		StallNumber: stall.StallNumber,
		StallName:   stall.StallName,
		SchoolName:  stall.SchoolName,
		Description: stall.Description,
		Location:    stall.Location,
		QRToken:     stall.QRToken,
	})
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StallRepository) FindByID(ctx context.Context, id uint) (domain.Stall, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StallRepository) FindByQRToken(ctx context.Context, token string) (domain.Stall, error) {
	found, err := r.dao.FindByQRToken(ctx, token)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByQRToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StallRepository) FindAll(ctx context.Context) ([]domain.Stall, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	stalls := make([]domain.Stall, len(found))
	for i, s := range found {
		stalls[i] = r.daoToDomain(s)
	}

	return stalls, nil
}

func (r *StallRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}
