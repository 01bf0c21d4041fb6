package service

import (
	"context"
	"testing"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/repository"
	"treasure_hunter_bot/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHunterService_RegisterHunter(t *testing.T) {
	mockRepo := new(mocks.MockHunterRepository)
	service := NewHunterService(mockRepo)

	hunter := &model.Hunter{TelegramID: 42, Username: "digger", FirstName: "Dig"}
	mockRepo.On("GetOrCreateHunter", mock.Anything, int64(42), "digger", "Dig").Return(hunter, nil)

	// Registration is idempotent; repeated calls return the same row.
	for i := 0; i < 2; i++ {
		got, err := service.RegisterHunter(context.Background(), 42, "digger", "Dig")
		assert.NoError(t, err)
		assert.Equal(t, hunter, got)
	}

	mockRepo.AssertNumberOfCalls(t, "GetOrCreateHunter", 2)
}

func TestHunterService_RegisterHunterRejectsBadID(t *testing.T) {
	mockRepo := new(mocks.MockHunterRepository)
	service := NewHunterService(mockRepo)

	for _, id := range []int64{0, -1} {
		got, err := service.RegisterHunter(context.Background(), id, "digger", "Dig")
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, got)
	}

	mockRepo.AssertNotCalled(t, "GetOrCreateHunter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHunterService_GetHunterByTelegramID(t *testing.T) {
	mockRepo := new(mocks.MockHunterRepository)
	service := NewHunterService(mockRepo)

	mockRepo.On("GetHunterByTelegramID", mock.Anything, int64(42)).Return(&model.Hunter{TelegramID: 42}, nil)
	mockRepo.On("GetHunterByTelegramID", mock.Anything, int64(999)).Return(nil, repository.ErrNotFound)

	got, err := service.GetHunterByTelegramID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), got.TelegramID)

	got, err = service.GetHunterByTelegramID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrHunterNotFound)
	assert.Nil(t, got)
}

func TestHunterService_GetHunterStats(t *testing.T) {
	mockRepo := new(mocks.MockHunterRepository)
	service := NewHunterService(mockRepo)

	stats := &model.HunterStats{
		Hunter: model.Hunter{TelegramID: 42, TotalPoints: 120, FindsCount: 8},
		Rank:   3,
	}
	mockRepo.On("HunterStats", mock.Anything, int64(42), statsRecentFinds).Return(stats, nil)
	mockRepo.On("HunterStats", mock.Anything, int64(999), statsRecentFinds).Return(nil, repository.ErrNotFound)

	got, err := service.GetHunterStats(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Rank)

	got, err = service.GetHunterStats(context.Background(), 999)
	assert.ErrorIs(t, err, ErrHunterNotFound)
	assert.Nil(t, got)
}
