package service

import (
	"context"
	"testing"
	"time"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/repository"
	"treasure_hunter_bot/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestFindService(repo *mocks.MockFindRepository, achievements *mocks.MockAchievementRepository) *FindService {
	evaluator := NewAchievementEvaluator(achievements, new(mocks.MockFindCounter), DefaultSpecialPredicates())
	return NewFindService(repo, DefaultScoreConfig(), evaluator, nil)
}

func emptyCatalog(achievements *mocks.MockAchievementRepository, telegramID int64) {
	achievements.On("ListActiveAchievements", mock.Anything).Return([]model.Achievement{}, nil)
	achievements.On("ListAwardedAchievementIDs", mock.Anything, telegramID).Return([]uuid.UUID{}, nil)
}

func TestFindService_RecordFindValidation(t *testing.T) {
	negative := -3.0

	tests := []struct {
		name  string
		input FindInput
	}{
		{
			name:  "zero telegram id",
			input: FindInput{TelegramID: 0, Category: "coin"},
		},
		{
			name:  "negative telegram id",
			input: FindInput{TelegramID: -5, Category: "coin"},
		},
		{
			name:  "negative depth",
			input: FindInput{TelegramID: 1, Category: "coin", Depth: &negative},
		},
		{
			name:  "no category and no analysis",
			input: FindInput{TelegramID: 1, Category: "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockFindRepository)
			service := newTestFindService(mockRepo, new(mocks.MockAchievementRepository))

			result, err := service.RecordFind(context.Background(), tt.input)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, result)
			mockRepo.AssertNotCalled(t, "CreateFind", mock.Anything, mock.Anything)
		})
	}
}

func TestFindService_RecordFind(t *testing.T) {
	const telegramID = int64(42)
	fourteen := 14.0

	tests := []struct {
		name             string
		input            FindInput
		expectedCategory string
		expectedPoints   int
		expectedDepth    *float64
	}{
		{
			name:             "coin at fourteen inches earns deep bonus",
			input:            FindInput{TelegramID: telegramID, Category: "coin", Depth: &fourteen},
			expectedCategory: "coin",
			expectedPoints:   20,
			expectedDepth:    &fourteen,
		},
		{
			name:             "unrecognized category scores as other",
			input:            FindInput{TelegramID: telegramID, Category: "Meteorite"},
			expectedCategory: "other",
			expectedPoints:   5,
		},
		{
			name: "category inferred from analysis text",
			input: FindInput{
				TelegramID:   telegramID,
				AnalysisText: strPtr("A silver ring, likely Victorian jewelry"),
			},
			expectedCategory: "jewelry",
			expectedPoints:   25,
		},
		{
			name: "depth extracted from description",
			input: FindInput{
				TelegramID:  telegramID,
				Category:    "relic",
				Description: "musket ball at 10 inches in the north field",
			},
			expectedCategory: "relic",
			expectedPoints:   25,
			expectedDepth:    depth(10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockFindRepository)
			mockAchievements := new(mocks.MockAchievementRepository)
			service := newTestFindService(mockRepo, mockAchievements)

			stored := &model.Find{
				FindID:        uuid.New(),
				HunterID:      telegramID,
				Category:      tt.expectedCategory,
				PointsAwarded: tt.expectedPoints,
				CreatedAt:     time.Now().UTC(),
			}
			mockRepo.On("CreateFind", mock.Anything, mock.MatchedBy(func(f *model.Find) bool {
				if f.HunterID != telegramID || f.Category != tt.expectedCategory || f.PointsAwarded != tt.expectedPoints {
					return false
				}
				if tt.expectedDepth == nil {
					return f.Depth == nil
				}
				return f.Depth != nil && *f.Depth == *tt.expectedDepth
			})).Return(stored, nil)
			mockRepo.On("GetHunterByTelegramID", mock.Anything, telegramID).Return(&model.Hunter{
				TelegramID:  telegramID,
				TotalPoints: tt.expectedPoints,
				FindsCount:  1,
			}, nil)
			emptyCatalog(mockAchievements, telegramID)

			result, err := service.RecordFind(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCategory, result.Find.Category)
			assert.Equal(t, tt.expectedPoints, result.Find.PointsAwarded)
			assert.Equal(t, tt.expectedPoints, result.TotalPoints)
			assert.Equal(t, 1, result.TotalFinds)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFindService_RecordFindUnlocksFirstFind(t *testing.T) {
	const telegramID = int64(42)
	firstFind := findsAchievement("First Find", 1)

	mockRepo := new(mocks.MockFindRepository)
	mockAchievements := new(mocks.MockAchievementRepository)
	service := newTestFindService(mockRepo, mockAchievements)

	mockRepo.On("CreateFind", mock.Anything, mock.Anything).Return(&model.Find{
		FindID:        uuid.New(),
		HunterID:      telegramID,
		Category:      "coin",
		PointsAwarded: 10,
	}, nil)
	mockRepo.On("GetHunterByTelegramID", mock.Anything, telegramID).Return(&model.Hunter{
		TelegramID:  telegramID,
		TotalPoints: 10,
		FindsCount:  1,
	}, nil)
	mockAchievements.On("ListActiveAchievements", mock.Anything).Return([]model.Achievement{firstFind}, nil)
	mockAchievements.On("ListAwardedAchievementIDs", mock.Anything, telegramID).Return([]uuid.UUID{}, nil)
	mockAchievements.On("AwardAchievement", mock.Anything, telegramID, firstFind.AchievementID).Return(true, nil)

	result, err := service.RecordFind(context.Background(), FindInput{TelegramID: telegramID, Category: "coin"})

	assert.NoError(t, err)
	assert.Len(t, result.NewAchievements, 1)
	assert.Equal(t, "First Find", result.NewAchievements[0].Name)
}

func TestFindService_RecordFindUnknownHunter(t *testing.T) {
	mockRepo := new(mocks.MockFindRepository)
	service := newTestFindService(mockRepo, new(mocks.MockAchievementRepository))

	mockRepo.On("CreateFind", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	result, err := service.RecordFind(context.Background(), FindInput{TelegramID: 999, Category: "coin"})

	assert.ErrorIs(t, err, ErrHunterNotFound)
	assert.Nil(t, result)
}

func TestFindService_RecordFindPublishesActivity(t *testing.T) {
	const telegramID = int64(42)

	mockRepo := new(mocks.MockFindRepository)
	mockAchievements := new(mocks.MockAchievementRepository)
	feed := NewActivityFeed()
	evaluator := NewAchievementEvaluator(mockAchievements, new(mocks.MockFindCounter), nil)
	service := NewFindService(mockRepo, DefaultScoreConfig(), evaluator, feed)

	mockRepo.On("CreateFind", mock.Anything, mock.Anything).Return(&model.Find{
		FindID:        uuid.New(),
		HunterID:      telegramID,
		Category:      "coin",
		PointsAwarded: 10,
	}, nil)
	mockRepo.On("GetHunterByTelegramID", mock.Anything, telegramID).Return(&model.Hunter{
		TelegramID: telegramID,
		Username:   "digger",
		FindsCount: 1,
	}, nil)
	emptyCatalog(mockAchievements, telegramID)

	items, cancel := feed.Subscribe()
	defer cancel()

	_, err := service.RecordFind(context.Background(), FindInput{TelegramID: telegramID, Category: "coin"})
	assert.NoError(t, err)

	select {
	case item := <-items:
		assert.Equal(t, "digger", item.HunterName)
		assert.Equal(t, "coin", item.Category)
		assert.Equal(t, 10, item.Points)
	case <-time.After(time.Second):
		t.Fatal("expected an activity item")
	}
}

func strPtr(s string) *string {
	return &s
}
