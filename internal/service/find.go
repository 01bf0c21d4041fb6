package service

import (
	"context"
	"errors"
	"fmt"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/internal/repository"
)

// FindInput is what the collaborator extracted from the hunter's message (or
// from AI-analysis output) before submitting.
type FindInput struct {
	TelegramID   int64
	Category     string
	Description  string
	Depth        *float64
	Location     *string
	AnalysisText *string
}

type FindService struct {
	repo      FindRepository
	scorer    ScoreConfig
	evaluator *AchievementEvaluator
	feed      *ActivityFeed
}

func NewFindService(repo FindRepository, scorer ScoreConfig, evaluator *AchievementEvaluator, feed *ActivityFeed) *FindService {
	return &FindService{
		repo:      repo,
		scorer:    scorer,
		evaluator: evaluator,
		feed:      feed,
	}
}

// RecordFind validates, scores and persists a submission, then re-evaluates
// achievements against the updated totals. Validation happens before any
// write; the insert and the total increments share one transaction.
func (s *FindService) RecordFind(ctx context.Context, input FindInput) (*model.FindResult, error) {
	if input.TelegramID <= 0 {
		return nil, fmt.Errorf("%w: telegram id must be positive", ErrValidation)
	}
	if input.Depth != nil && *input.Depth < 0 {
		return nil, fmt.Errorf("%w: depth cannot be negative", ErrValidation)
	}

	category := NormalizeCategory(input.Category)
	if (category == "" || category == "unknown") && input.AnalysisText != nil {
		category = InferCategory(*input.AnalysisText)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !s.scorer.Known(category) {
		category = model.CategoryOther
	}

	depth := input.Depth
	if depth == nil {
		depth = ExtractDepth(input.Description)
	}

	points := s.scorer.ComputePoints(category, depth)

	find, err := s.repo.CreateFind(ctx, &model.Find{
		HunterID:      input.TelegramID,
		Category:      category,
		Description:   input.Description,
		PointsAwarded: points,
		Depth:         depth,
		Location:      input.Location,
		ImageAnalysis: input.AnalysisText,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHunterNotFound
		}
		return nil, fmt.Errorf("failed to create find: %w", err)
	}

	hunter, err := s.repo.GetHunterByTelegramID(ctx, input.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload hunter: %w", err)
	}

	newAchievements, err := s.evaluator.Evaluate(ctx, hunter)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	if s.feed != nil {
		name := hunter.Username
		if name == "" {
			name = hunter.FirstName
		}
		s.feed.Publish(model.ActivityItem{
			HunterName: name,
			Category:   find.Category,
			Points:     find.PointsAwarded,
			CreatedAt:  find.CreatedAt,
		})
	}

	return &model.FindResult{
		Find:            *find,
		TotalPoints:     hunter.TotalPoints,
		TotalFinds:      hunter.FindsCount,
		NewAchievements: newAchievements,
	}, nil
}

func (s *FindService) RecentFinds(ctx context.Context, telegramID int64, limit int) ([]model.Find, error) {
	finds, err := s.repo.ListRecentFinds(ctx, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list finds: %w", err)
	}
	return finds, nil
}

func (s *FindService) CommunityActivity(ctx context.Context, limit int) ([]model.ActivityItem, error) {
	items, err := s.repo.CommunityActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get community activity: %w", err)
	}
	return items, nil
}
