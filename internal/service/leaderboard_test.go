package service

import (
	"context"
	"testing"
	"time"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/service/mocks"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func leaderboardEntries() []model.LeaderboardEntry {
	return []model.LeaderboardEntry{
		{Rank: 1, TelegramID: 1, Username: "first", Points: 300, Finds: 12},
		{Rank: 2, TelegramID: 2, Username: "second", Points: 150, Finds: 9},
	}
}

func TestLeaderboardService_RankAllTime(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	service := NewLeaderboardService(mockRepo, nil)

	mockRepo.On("TopHuntersAllTime", mock.Anything, 5).Return(leaderboardEntries(), nil)

	entries, err := service.Rank(context.Background(), model.PeriodAllTime, 5)

	assert.NoError(t, err)
	assert.Equal(t, leaderboardEntries(), entries)
	mockRepo.AssertNotCalled(t, "AggregateFindsSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeaderboardService_RankWindows(t *testing.T) {
	tests := []struct {
		name          string
		period        model.LeaderboardPeriod
		expectedSince time.Time
	}{
		{
			name:          "weekly aggregates the trailing seven days",
			period:        model.PeriodWeekly,
			expectedSince: fixedNow().Add(-7 * 24 * time.Hour),
		},
		{
			name:          "monthly aggregates the trailing thirty days",
			period:        model.PeriodMonthly,
			expectedSince: fixedNow().Add(-30 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockLeaderboardRepository)
			service := NewLeaderboardService(mockRepo, nil)
			service.now = fixedNow

			mockRepo.On("AggregateFindsSince", mock.Anything, tt.expectedSince, 10).Return(leaderboardEntries(), nil)

			entries, err := service.Rank(context.Background(), tt.period, 0)

			assert.NoError(t, err)
			assert.Len(t, entries, 2)
			mockRepo.AssertExpectations(t)

			// The cutoff admits a two-day-old find and excludes a forty-day-old one.
			assert.True(t, fixedNow().Add(-2*24*time.Hour).After(tt.expectedSince))
			assert.True(t, fixedNow().Add(-40*24*time.Hour).Before(tt.expectedSince))
		})
	}
}

func TestLeaderboardService_RankUnknownPeriod(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	service := NewLeaderboardService(mockRepo, nil)

	entries, err := service.Rank(context.Background(), model.LeaderboardPeriod("yearly"), 10)

	assert.ErrorIs(t, err, ErrUnknownPeriod)
	assert.Nil(t, entries)
	mockRepo.AssertNotCalled(t, "TopHuntersAllTime", mock.Anything, mock.Anything)
}

func TestLeaderboardService_RankCacheHit(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	mockCache := new(mocks.MockLeaderboardCache)
	service := NewLeaderboardService(mockRepo, mockCache)

	mockCache.On("Get", mock.Anything, model.PeriodAllTime, 10).Return(leaderboardEntries(), nil)

	entries, err := service.Rank(context.Background(), model.PeriodAllTime, 10)

	assert.NoError(t, err)
	assert.Equal(t, leaderboardEntries(), entries)
	mockRepo.AssertNotCalled(t, "TopHuntersAllTime", mock.Anything, mock.Anything)
}

func TestLeaderboardService_RankCacheMissFillsCache(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	mockCache := new(mocks.MockLeaderboardCache)
	service := NewLeaderboardService(mockRepo, mockCache)

	mockCache.On("Get", mock.Anything, model.PeriodAllTime, 10).Return(nil, nil)
	mockRepo.On("TopHuntersAllTime", mock.Anything, 10).Return(leaderboardEntries(), nil)
	mockCache.On("Set", mock.Anything, model.PeriodAllTime, 10, leaderboardEntries()).Return(nil)

	entries, err := service.Rank(context.Background(), model.PeriodAllTime, 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	mockCache.AssertExpectations(t)
}

func TestLeaderboardService_RankCacheFailureFallsThrough(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	mockCache := new(mocks.MockLeaderboardCache)
	service := NewLeaderboardService(mockRepo, mockCache)

	mockCache.On("Get", mock.Anything, model.PeriodAllTime, 10).Return(nil, errors.New("redis down"))
	mockCache.On("Set", mock.Anything, model.PeriodAllTime, 10, leaderboardEntries()).Return(nil)
	mockRepo.On("TopHuntersAllTime", mock.Anything, 10).Return(leaderboardEntries(), nil)

	entries, err := service.Rank(context.Background(), model.PeriodAllTime, 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	mockRepo.AssertExpectations(t)
}

func TestLeaderboardService_SnapshotWindows(t *testing.T) {
	mockRepo := new(mocks.MockLeaderboardRepository)
	service := NewLeaderboardService(mockRepo, nil)
	service.now = fixedNow

	end := fixedNow()
	weeklyStart := end.Add(-7 * 24 * time.Hour)
	monthlyStart := end.Add(-30 * 24 * time.Hour)

	mockRepo.On("AggregateFindsSince", mock.Anything, weeklyStart, 10).Return(leaderboardEntries(), nil)
	mockRepo.On("AggregateFindsSince", mock.Anything, monthlyStart, 10).Return(leaderboardEntries(), nil)
	mockRepo.On("InsertLeaderboardSnapshots", mock.Anything, model.PeriodWeekly, weeklyStart, end, leaderboardEntries()).Return(nil)
	mockRepo.On("InsertLeaderboardSnapshots", mock.Anything, model.PeriodMonthly, monthlyStart, end, leaderboardEntries()).Return(nil)

	err := service.SnapshotWindows(context.Background(), 0)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
