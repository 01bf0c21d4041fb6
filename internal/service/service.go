package service

import (
	"context"
	"errors"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/google/uuid"
)

var (
	ErrHunterNotFound = errors.New("hunter not found")
	ErrValidation     = errors.New("validation failed")
	ErrUnknownPeriod  = errors.New("unknown leaderboard period")
)

type Service struct {
	*HunterService
	*FindService
	*LeaderboardService
}

func NewService(hunterService *HunterService, findService *FindService, leaderboardService *LeaderboardService) *Service {
	return &Service{
		HunterService:      hunterService,
		FindService:        findService,
		LeaderboardService: leaderboardService,
	}
}

type HunterServiceI interface {
	RegisterHunter(ctx context.Context, telegramID int64, username, firstName string) (*model.Hunter, error)
	GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error)
	GetHunterStats(ctx context.Context, telegramID int64) (*model.HunterStats, error)
}

type FindServiceI interface {
	RecordFind(ctx context.Context, input FindInput) (*model.FindResult, error)
	RecentFinds(ctx context.Context, telegramID int64, limit int) ([]model.Find, error)
	CommunityActivity(ctx context.Context, limit int) ([]model.ActivityItem, error)
}

type LeaderboardServiceI interface {
	Rank(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error)
}

type HunterRepository interface {
	GetOrCreateHunter(ctx context.Context, telegramID int64, username, firstName string) (*model.Hunter, error)
	GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error)
	HunterStats(ctx context.Context, telegramID int64, recentFinds int) (*model.HunterStats, error)
}

type FindRepository interface {
	CreateFind(ctx context.Context, f *model.Find) (*model.Find, error)
	GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error)
	ListRecentFinds(ctx context.Context, telegramID int64, limit int) ([]model.Find, error)
	CommunityActivity(ctx context.Context, limit int) ([]model.ActivityItem, error)
}

// FindCounter is the slice of the store special predicates query against.
type FindCounter interface {
	CountFindsByCategoryPattern(ctx context.Context, telegramID int64, pattern string) (int, error)
	CountFindsByCategories(ctx context.Context, telegramID int64, categories []string) (int, error)
}

type AchievementRepository interface {
	ListActiveAchievements(ctx context.Context) ([]model.Achievement, error)
	ListAwardedAchievementIDs(ctx context.Context, telegramID int64) ([]uuid.UUID, error)
	AwardAchievement(ctx context.Context, telegramID int64, achievementID uuid.UUID) (bool, error)
}

type LeaderboardRepository interface {
	TopHuntersAllTime(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	AggregateFindsSince(ctx context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error)
	InsertLeaderboardSnapshots(ctx context.Context, period model.LeaderboardPeriod, start, end time.Time, entries []model.LeaderboardEntry) error
}

// LeaderboardCache is the optional read cache in front of ranking queries.
// A miss is (nil, nil); every error is treated as a miss by the service.
type LeaderboardCache interface {
	Get(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error)
	Set(ctx context.Context, period model.LeaderboardPeriod, limit int, entries []model.LeaderboardEntry) error
}
