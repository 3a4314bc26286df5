package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository"
)

type fakeRankingStallRepo struct {
	stalls []domain.Stall
}

func (f *fakeRankingStallRepo) FindAll(_ context.Context) ([]domain.Stall, error) {
	return f.stalls, nil
}

func (f *fakeRankingStallRepo) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	for _, stall := range f.stalls {
		if stall.ID == id {
			return stall, nil
		}
	}

	return domain.Stall{}, repository.ErrStallNotFound
}

type fakeRatingSource struct {
	aggregates map[uint]domain.RatingAggregate
}

func (f *fakeRatingSource) RatingAggregates(_ context.Context) (map[uint]domain.RatingAggregate, error) {
	return f.aggregates, nil
}

type fakeVisitSource struct {
	counts map[uint]int
}

func (f *fakeVisitSource) VisitCounts(_ context.Context) (map[uint]int, error) {
	return f.counts, nil
}

type fakeRankingRepo struct {
	stored []domain.Ranking
}

func (f *fakeRankingRepo) ReplaceAll(_ context.Context, rankings []domain.Ranking) error {
	f.stored = rankings

	return nil
}

func (f *fakeRankingRepo) Leaderboard(_ context.Context) ([]domain.LeaderboardEntry, error) {
	entries := make([]domain.LeaderboardEntry, 0, len(f.stored))
	for _, r := range f.stored {
		entries = append(entries, domain.LeaderboardEntry{
			StallID: r.StallID,
			Rank:    r.Rank,
			Score:   r.Score,
		})
	}

	return entries, nil
}

func (f *fakeRankingRepo) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := f.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if limit < len(entries) {
		entries = entries[:limit]
	}

	return entries, nil
}

func (f *fakeRankingRepo) FindByStallID(_ context.Context, stallID uint) (domain.LeaderboardEntry, error) {
	for _, r := range f.stored {
		if r.StallID == stallID {
			return domain.LeaderboardEntry{StallID: r.StallID, Rank: r.Rank, Score: r.Score}, nil
		}
	}

	return domain.LeaderboardEntry{}, repository.ErrRankingNotFound
}

func newRankingFixture(stalls []domain.Stall, ratings map[uint]domain.RatingAggregate, visits map[uint]int) (*RankingService, *fakeRankingRepo) {
	rankingRepo := &fakeRankingRepo{}
	svc := NewRankingService(
		&fakeRankingStallRepo{stalls: stalls},
		&fakeRatingSource{aggregates: ratings},
		&fakeVisitSource{counts: visits},
		rankingRepo,
	)

	return svc, rankingRepo
}

func TestRecompute_BlendsRatingsAndVisits(t *testing.T) {
	stalls := []domain.Stall{
		{ID: 1, StallNumber: 1},
		{ID: 2, StallNumber: 2},
	}
	// Stall 1: three 5-star ratings, no visits. Stall 2: three 1-star
	// ratings plus 60 visits.
	ratings := map[uint]domain.RatingAggregate{
		1: {Average: 5.0, Count: 3},
		2: {Average: 1.0, Count: 3},
	}
	visits := map[uint]int{2: 60}

	svc, repo := newRankingFixture(stalls, ratings, visits)

	ranked, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ranked)

	require.Len(t, repo.stored, 2)
	assert.Equal(t, uint(1), repo.stored[0].StallID)
	assert.Equal(t, 1, repo.stored[0].Rank)
	assert.Equal(t, 3.5, repo.stored[0].Score)

	assert.Equal(t, uint(2), repo.stored[1].StallID)
	assert.Equal(t, 2, repo.stored[1].Rank)
	assert.Equal(t, 1.6, repo.stored[1].Score)
}

func TestRecompute_VisitPointsAreCapped(t *testing.T) {
	stalls := []domain.Stall{{ID: 1}}
	visits := map[uint]int{1: 1000}

	svc, repo := newRankingFixture(stalls, nil, visits)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	// No ratings, so only the visit component counts: min(1000/20, 5)*0.3.
	require.Len(t, repo.stored, 1)
	assert.Equal(t, 1.5, repo.stored[0].Score)
}

func TestRecompute_ExcludesStallsWithoutSignals(t *testing.T) {
	stalls := []domain.Stall{
		{ID: 1},
		{ID: 2},
		{ID: 3},
	}
	ratings := map[uint]domain.RatingAggregate{1: {Average: 4.0, Count: 2}}
	visits := map[uint]int{3: 10}

	svc, repo := newRankingFixture(stalls, ratings, visits)

	ranked, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ranked)

	for _, r := range repo.stored {
		assert.NotEqual(t, uint(2), r.StallID)
	}
}

func TestRecompute_TiesResolveToEarliestStall(t *testing.T) {
	stalls := []domain.Stall{
		{ID: 5},
		{ID: 9},
		{ID: 12},
	}
	ratings := map[uint]domain.RatingAggregate{
		5:  {Average: 3.0, Count: 1},
		9:  {Average: 3.0, Count: 1},
		12: {Average: 3.0, Count: 1},
	}

	svc, repo := newRankingFixture(stalls, ratings, nil)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.stored, 3)
	assert.Equal(t, uint(5), repo.stored[0].StallID)
	assert.Equal(t, uint(9), repo.stored[1].StallID)
	assert.Equal(t, uint(12), repo.stored[2].StallID)
}

func TestRecompute_DenseRanks(t *testing.T) {
	stalls := []domain.Stall{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
	}
	ratings := map[uint]domain.RatingAggregate{
		1: {Average: 2.0, Count: 1},
		2: {Average: 4.0, Count: 1},
		3: {Average: 4.0, Count: 1},
		4: {Average: 1.0, Count: 1},
	}

	svc, repo := newRankingFixture(stalls, ratings, nil)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.stored, 4)
	for i, r := range repo.stored {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	stalls := []domain.Stall{{ID: 1}, {ID: 2}}
	ratings := map[uint]domain.RatingAggregate{
		1: {Average: 4.2, Count: 7},
		2: {Average: 3.9, Count: 4},
	}
	visits := map[uint]int{1: 15, 2: 88}

	svc, repo := newRankingFixture(stalls, ratings, visits)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	first := make([]domain.Ranking, len(repo.stored))
	copy(first, repo.stored)

	_, err = svc.Recompute(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.stored, len(first))
	for i := range first {
		assert.Equal(t, first[i].StallID, repo.stored[i].StallID)
		assert.Equal(t, first[i].Rank, repo.stored[i].Rank)
		assert.Equal(t, first[i].Score, repo.stored[i].Score)
	}
}

func TestRecompute_EmptyEvent(t *testing.T) {
	svc, repo := newRankingFixture(nil, nil, nil)

	ranked, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ranked)
	assert.Empty(t, repo.stored)
}

func TestScoreStall_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		avg      float64
		visits   int
		expected float64
	}{
		{"perfect rating, max visits", 5.0, 100, 5.0},
		{"rounds half away from zero", 4.05, 1, 2.85}, // 4.05*0.7 + 0.05*0.3 = 2.850
		{"zero signals", 0, 0, 0},
		{"visits only", 0, 30, 0.45},
		{"fractional average", 4.333333, 10, 3.18},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, scoreStall(tc.avg, tc.visits), 1e-9)
		})
	}
}

func TestGetStallRank(t *testing.T) {
	stalls := []domain.Stall{{ID: 1}, {ID: 2}}
	ratings := map[uint]domain.RatingAggregate{1: {Average: 4.0, Count: 1}}

	svc, _ := newRankingFixture(stalls, ratings, nil)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	entry, err := svc.GetStallRank(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Rank)

	// Stall 2 exists but holds no ranking.
	_, err = svc.GetStallRank(context.Background(), 2)
	assert.ErrorIs(t, err, ErrRankingNotFound)

	// Stall 3 does not exist at all.
	_, err = svc.GetStallRank(context.Background(), 3)
	assert.ErrorIs(t, err, ErrStallNotFound)
}

func TestGetTopRankings(t *testing.T) {
	stalls := []domain.Stall{{ID: 1}, {ID: 2}, {ID: 3}}
	ratings := map[uint]domain.RatingAggregate{
		1: {Average: 5.0, Count: 1},
		2: {Average: 4.0, Count: 1},
		3: {Average: 3.0, Count: 1},
	}

	svc, _ := newRankingFixture(stalls, ratings, nil)

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	top, err := svc.GetTopRankings(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, uint(1), top[0].StallID)
	assert.Equal(t, uint(2), top[1].StallID)
}
