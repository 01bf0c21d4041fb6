package service

import (
	"context"
	"errors"
	"fmt"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/repository"
)

const statsRecentFinds = 5

type HunterService struct {
	repo HunterRepository
}

func NewHunterService(repo HunterRepository) *HunterService {
	return &HunterService{
		repo: repo,
	}
}

// RegisterHunter is the idempotent first-contact operation: it creates the
// hunter on the first call and refreshes name and activity on every later one.
func (s *HunterService) RegisterHunter(ctx context.Context, telegramID int64, username, firstName string) (*model.Hunter, error) {
	if telegramID <= 0 {
		return nil, fmt.Errorf("%w: telegram id must be positive", ErrValidation)
	}

	hunter, err := s.repo.GetOrCreateHunter(ctx, telegramID, username, firstName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create hunter: %w", err)
	}
	return hunter, nil
}

func (s *HunterService) GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error) {
	hunter, err := s.repo.GetHunterByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHunterNotFound
		}
		return nil, fmt.Errorf("failed to get hunter: %w", err)
	}
	return hunter, nil
}

func (s *HunterService) GetHunterStats(ctx context.Context, telegramID int64) (*model.HunterStats, error) {
	stats, err := s.repo.HunterStats(ctx, telegramID, statsRecentFinds)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHunterNotFound
		}
		return nil, fmt.Errorf("failed to get hunter stats: %w", err)
	}
	return stats, nil
}
