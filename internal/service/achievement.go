package service

import (
	"context"
	"fmt"

	"treasure_hunter_bot/internal/model"
	"treasure_hunter_bot/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpecialPredicate decides a "special" achievement from the hunter's find
// history. Predicates are registered by achievement name at construction, so
// new rules never touch the evaluator itself.
type SpecialPredicate func(ctx context.Context, finds FindCounter, telegramID int64) (bool, error)

// DefaultSpecialPredicates is the registry matching the seeded catalog.
func DefaultSpecialPredicates() map[string]SpecialPredicate {
	return map[string]SpecialPredicate{
		"Coin Specialist": func(ctx context.Context, finds FindCounter, telegramID int64) (bool, error) {
			count, err := finds.CountFindsByCategoryPattern(ctx, telegramID, "%coin%")
			return count >= 10, err
		},
		"Jewelry Expert": func(ctx context.Context, finds FindCounter, telegramID int64) (bool, error) {
			count, err := finds.CountFindsByCategoryPattern(ctx, telegramID, "%jewelry%")
			return count >= 5, err
		},
		"History Buff": func(ctx context.Context, finds FindCounter, telegramID int64) (bool, error) {
			count, err := finds.CountFindsByCategories(ctx, telegramID, []string{"relic", "artifact", "button", "buckle"})
			return count >= 5, err
		},
	}
}

// AchievementEvaluator re-checks unlock conditions after every recorded find.
// It holds no state of its own; everything lives in the store, so concurrent
// evaluation only costs a duplicate check, never a duplicate award.
type AchievementEvaluator struct {
	repo       AchievementRepository
	finds      FindCounter
	predicates map[string]SpecialPredicate
}

func NewAchievementEvaluator(repo AchievementRepository, finds FindCounter, predicates map[string]SpecialPredicate) *AchievementEvaluator {
	return &AchievementEvaluator{
		repo:       repo,
		finds:      finds,
		predicates: predicates,
	}
}

// Evaluate checks every active achievement the hunter has not unlocked yet
// and returns only the awards newly created by this call.
func (e *AchievementEvaluator) Evaluate(ctx context.Context, hunter *model.Hunter) ([]model.Achievement, error) {
	log := logger.Logger()

	active, err := e.repo.ListActiveAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	awardedIDs, err := e.repo.ListAwardedAchievementIDs(ctx, hunter.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded achievements: %w", err)
	}

	awarded := make(map[uuid.UUID]struct{}, len(awardedIDs))
	for _, id := range awardedIDs {
		awarded[id] = struct{}{}
	}

	var unlocked []model.Achievement
	for _, a := range active {
		if _, ok := awarded[a.AchievementID]; ok {
			continue
		}

		satisfied, err := e.satisfied(ctx, hunter, a)
		if err != nil {
			return nil, err
		}
		if !satisfied {
			continue
		}

		newly, err := e.repo.AwardAchievement(ctx, hunter.TelegramID, a.AchievementID)
		if err != nil {
			return nil, fmt.Errorf("failed to award achievement %q: %w", a.Name, err)
		}
		if !newly {
			continue
		}

		log.Info("achievement unlocked",
			zap.Int64("telegram_id", hunter.TelegramID),
			zap.String("achievement", a.Name))
		unlocked = append(unlocked, a)
	}

	return unlocked, nil
}

func (e *AchievementEvaluator) satisfied(ctx context.Context, hunter *model.Hunter, a model.Achievement) (bool, error) {
	switch a.Category {
	case model.AchievementFinds:
		return hunter.FindsCount >= a.FindsRequired, nil

	case model.AchievementPoints:
		return hunter.TotalPoints >= a.PointsRequired, nil

	case model.AchievementSpecial:
		predicate, ok := e.predicates[a.Name]
		if !ok {
			logger.Logger().Warn("no predicate registered for special achievement",
				zap.String("achievement", a.Name))
			return false, nil
		}
		return predicate(ctx, e.finds, hunter.TelegramID)

	default:
		logger.Logger().Warn("unknown achievement category",
			zap.String("achievement", a.Name),
			zap.String("category", a.Category))
		return false, nil
	}
}
