package repository

import (
	"context"
	"fmt"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository/dao"
)

var ErrRankingNotFound = dao.ErrRankingNotFound

type RankingDAO interface {
	ReplaceAll(ctx context.Context, rankings []dao.Ranking) error
	FindAll(ctx context.Context) ([]dao.LeaderboardRow, error)
	FindTop(ctx context.Context, limit int) ([]dao.LeaderboardRow, error)
	FindByStallID(ctx context.Context, stallID uint) (dao.LeaderboardRow, error)
}

type RankingRepository struct {
	dao RankingDAO
}

func NewRankingRepository(dao RankingDAO) *RankingRepository {
	return &RankingRepository{
		dao: dao,
	}
}

func (r *RankingRepository) rowToDomain(row dao.LeaderboardRow) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		StallID:     row.StallID,
		Rank:        row.Rank,
		Score:       row.Score,
		StallName:   row.StallName,
		StallNumber: row.StallNumber,
		SchoolName:  row.SchoolName,
	}
}

// ReplaceAll swaps the full ranking set atomically.
func (r *RankingRepository) ReplaceAll(ctx context.Context, rankings []domain.Ranking) error {
	daoRankings := make([]dao.Ranking, len(rankings))
	for i, ranking := range rankings {
		daoRankings[i] = dao.Ranking{
			StallID:    ranking.StallID,
			Rank:       ranking.Rank,
			Score:      ranking.Score,
			ComputedAt: ranking.ComputedAt,
		}
	}

	if err := r.dao.ReplaceAll(ctx, daoRankings); err != nil {
		return fmt.Errorf("r.dao.ReplaceAll -> %w", err)
	}

	return nil
}

func (r *RankingRepository) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = r.rowToDomain(row)
	}

	return entries, nil
}

func (r *RankingRepository) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.FindTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTop -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = r.rowToDomain(row)
	}

	return entries, nil
}

func (r *RankingRepository) FindByStallID(ctx context.Context, stallID uint) (domain.LeaderboardEntry, error) {
	row, err := r.dao.FindByStallID(ctx, stallID)
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("r.dao.FindByStallID -> %w", err)
	}

	return r.rowToDomain(row), nil
}
