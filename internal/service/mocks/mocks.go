// Package mocks contains hand-written testify mocks for the repository
// interfaces the services depend on.
package mocks

import (
	"context"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockHunterRepository struct {
	mock.Mock
}

func (m *MockHunterRepository) GetOrCreateHunter(ctx context.Context, telegramID int64, username, firstName string) (*model.Hunter, error) {
	args := m.Called(ctx, telegramID, username, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunter), args.Error(1)
}

func (m *MockHunterRepository) GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunter), args.Error(1)
}

func (m *MockHunterRepository) HunterStats(ctx context.Context, telegramID int64, recentFinds int) (*model.HunterStats, error) {
	args := m.Called(ctx, telegramID, recentFinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HunterStats), args.Error(1)
}

type MockFindRepository struct {
	mock.Mock
}

func (m *MockFindRepository) CreateFind(ctx context.Context, f *model.Find) (*model.Find, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Find), args.Error(1)
}

func (m *MockFindRepository) GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunter), args.Error(1)
}

func (m *MockFindRepository) ListRecentFinds(ctx context.Context, telegramID int64, limit int) ([]model.Find, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Find), args.Error(1)
}

func (m *MockFindRepository) CommunityActivity(ctx context.Context, limit int) ([]model.ActivityItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityItem), args.Error(1)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListActiveAchievements(ctx context.Context) ([]model.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListAwardedAchievementIDs(ctx context.Context, telegramID int64) ([]uuid.UUID, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAchievementRepository) AwardAchievement(ctx context.Context, telegramID int64, achievementID uuid.UUID) (bool, error) {
	args := m.Called(ctx, telegramID, achievementID)
	return args.Bool(0), args.Error(1)
}

type MockFindCounter struct {
	mock.Mock
}

func (m *MockFindCounter) CountFindsByCategoryPattern(ctx context.Context, telegramID int64, pattern string) (int, error) {
	args := m.Called(ctx, telegramID, pattern)
	return args.Int(0), args.Error(1)
}

func (m *MockFindCounter) CountFindsByCategories(ctx context.Context, telegramID int64, categories []string) (int, error) {
	args := m.Called(ctx, telegramID, categories)
	return args.Int(0), args.Error(1)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) TopHuntersAllTime(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepository) AggregateFindsSince(ctx context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepository) InsertLeaderboardSnapshots(ctx context.Context, period model.LeaderboardPeriod, start, end time.Time, entries []model.LeaderboardEntry) error {
	args := m.Called(ctx, period, start, end, entries)
	return args.Error(0)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, period model.LeaderboardPeriod, limit int, entries []model.LeaderboardEntry) error {
	args := m.Called(ctx, period, limit, entries)
	return args.Error(0)
}
