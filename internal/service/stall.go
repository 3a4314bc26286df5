package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/pkg/qrtoken"
	"github.com/expopass/expopass-api/internal/repository"
)

var ErrStallNumberExists = repository.ErrStallNumberExists

type StallRepository interface {
	Create(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindAll(ctx context.Context) ([]domain.Stall, error)
}

type StallService struct {
	repo StallRepository
}

func NewStallService(repo StallRepository) *StallService {
	return &StallService{
		repo: repo,
	}
}

// CreateStall registers a stall and binds a fresh QR token to it. The
// token embeds the stall number, which is unique and known up front.
func (s *StallService) CreateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	token, err := qrtoken.Issue(qrtoken.KindStall, uint(stall.StallNumber), time.Now().Unix())
	if err != nil {
		return domain.Stall{}, fmt.Errorf("qrtoken.Issue -> %w", err)
	}
	stall.QRToken = token

	created, err := s.repo.Create(ctx, stall)
	if err != nil {
		if errors.Is(err, repository.ErrStallNumberExists) {
			return domain.Stall{}, ErrStallNumberExists
		}

		return domain.Stall{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StallService) GetStall(ctx context.Context, id uint) (domain.Stall, error) {
	stall, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.Stall{}, ErrStallNotFound
		}

		return domain.Stall{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return stall, nil
}

func (s *StallService) GetStalls(ctx context.Context) ([]domain.Stall, error) {
	stalls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return stalls, nil
}
