package service

import (
	"context"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/pkg/logger"

	"go.uber.org/zap"
)

const (
	weeklyWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour

	defaultLeaderboardLimit = 10
)

type LeaderboardService struct {
	repo  LeaderboardRepository
	cache LeaderboardCache

	now func() time.Time
}

// NewLeaderboardService builds the aggregator. cache may be nil, in which
// case every query goes straight to the store.
func NewLeaderboardService(repo LeaderboardRepository, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// Rank returns at most limit entries for the requested window. Weekly and
// monthly windows aggregate finds from the trailing 7 or 30 days; all-time
// reads the persisted hunter totals. An empty result is a valid outcome.
func (s *LeaderboardService) Rank(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, period, limit)
		if err != nil {
			logger.Logger().Warn("leaderboard cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	entries, err := s.rankFromStore(ctx, period, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, period, limit, entries); err != nil {
			logger.Logger().Warn("leaderboard cache write failed", zap.Error(err))
		}
	}

	return entries, nil
}

func (s *LeaderboardService) rankFromStore(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error) {
	switch period {
	case model.PeriodAllTime:
		entries, err := s.repo.TopHuntersAllTime(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to get all-time ranking: %w", err)
		}
		return entries, nil

	default:
		entries, err := s.repo.AggregateFindsSince(ctx, s.now().UTC().Add(-s.window(period)), limit)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s ranking: %w", period, err)
		}
		return entries, nil
	}
}

func (s *LeaderboardService) window(period model.LeaderboardPeriod) time.Duration {
	if period == model.PeriodWeekly {
		return weeklyWindow
	}
	return monthlyWindow
}

// SnapshotWindows persists the current weekly and monthly standings. Called
// by the snapshot worker on a schedule; reads bypass the cache so snapshots
// never store stale data.
func (s *LeaderboardService) SnapshotWindows(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	end := s.now().UTC()
	for _, period := range []model.LeaderboardPeriod{model.PeriodWeekly, model.PeriodMonthly} {
		start := end.Add(-s.window(period))

		entries, err := s.repo.AggregateFindsSince(ctx, start, limit)
		if err != nil {
			return fmt.Errorf("failed to aggregate %s standings: %w", period, err)
		}

		if err := s.repo.InsertLeaderboardSnapshots(ctx, period, start, end, entries); err != nil {
			return fmt.Errorf("failed to persist %s snapshot: %w", period, err)
		}
	}

	return nil
}
