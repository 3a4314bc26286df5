package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository"
)

var ErrRankingNotFound = repository.ErrRankingNotFound

// Scoring weights. Visits are normalized to the same 0-5 scale as ratings
// before blending: one point per 20 visits, capped at 5.
const (
	ratingWeight   = 0.7
	visitWeight    = 0.3
	visitsPerPoint = 20.0
	maxVisitPoints = 5.0
)

type RankingStallRepository interface {
	FindAll(ctx context.Context) ([]domain.Stall, error)
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
}

type RatingSource interface {
	RatingAggregates(ctx context.Context) (map[uint]domain.RatingAggregate, error)
}

type VisitSource interface {
	VisitCounts(ctx context.Context) (map[uint]int, error)
}

type RankingRepository interface {
	ReplaceAll(ctx context.Context, rankings []domain.Ranking) error
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	FindByStallID(ctx context.Context, stallID uint) (domain.LeaderboardEntry, error)
}

// RankingService recomputes and serves the stall leaderboard. Recompute
// is an explicit batch operation; nothing triggers it per submission.
type RankingService struct {
	stallRepo   RankingStallRepository
	ratings     RatingSource
	visits      VisitSource
	rankingRepo RankingRepository
}

func NewRankingService(stallRepo RankingStallRepository, ratings RatingSource, visits VisitSource, rankingRepo RankingRepository) *RankingService {
	return &RankingService{
		stallRepo:   stallRepo,
		ratings:     ratings,
		visits:      visits,
		rankingRepo: rankingRepo,
	}
}

// Recompute scores every stall with at least one signal and replaces the
// persisted ranking set in one atomic swap. Stalls enter in creation
// order and the sort is stable, so score ties resolve to the
// first-created stall deterministically. Idempotent: rerunning without
// data changes yields the same set. Returns the number of ranked stalls.
func (s *RankingService) Recompute(ctx context.Context) (int, error) {
	stalls, err := s.stallRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.stallRepo.FindAll -> %w", err)
	}

	ratings, err := s.ratings.RatingAggregates(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.ratings.RatingAggregates -> %w", err)
	}

	visits, err := s.visits.VisitCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.visits.VisitCounts -> %w", err)
	}

	computedAt := time.Now()
	rankings := make([]domain.Ranking, 0, len(stalls))
	for _, stall := range stalls {
		agg, hasRatings := ratings[stall.ID]
		visitCount, hasVisits := visits[stall.ID]
		if !hasRatings && !hasVisits {
			continue
		}

		rankings = append(rankings, domain.Ranking{
			StallID:    stall.ID,
			Score:      scoreStall(agg.Average, visitCount),
			ComputedAt: computedAt,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	if err = s.rankingRepo.ReplaceAll(ctx, rankings); err != nil {
		return 0, fmt.Errorf("s.rankingRepo.ReplaceAll -> %w", err)
	}

	return len(rankings), nil
}

// scoreStall blends the average rating with the normalized visit count
// and rounds half away from zero to two decimals.
func scoreStall(avgRating float64, visitCount int) float64 {
	normalizedVisits := math.Min(float64(visitCount)/visitsPerPoint, maxVisitPoints)
	score := avgRating*ratingWeight + normalizedVisits*visitWeight

	return math.Round(score*100) / 100
}

func (s *RankingService) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := s.rankingRepo.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.rankingRepo.Leaderboard -> %w", err)
	}

	return entries, nil
}

func (s *RankingService) GetTopRankings(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.rankingRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.rankingRepo.Top -> %w", err)
	}

	return entries, nil
}

func (s *RankingService) GetStallRank(ctx context.Context, stallID uint) (domain.LeaderboardEntry, error) {
	if _, err := s.stallRepo.FindByID(ctx, stallID); err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.LeaderboardEntry{}, ErrStallNotFound
		}

		return domain.LeaderboardEntry{}, fmt.Errorf("s.stallRepo.FindByID -> %w", err)
	}

	entry, err := s.rankingRepo.FindByStallID(ctx, stallID)
	if err != nil {
		if errors.Is(err, repository.ErrRankingNotFound) {
			return domain.LeaderboardEntry{}, ErrRankingNotFound
		}

		return domain.LeaderboardEntry{}, fmt.Errorf("s.rankingRepo.FindByStallID -> %w", err)
	}

	return entry, nil
}
