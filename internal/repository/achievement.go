package repository

import (
	"context"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type achievement struct {
	AchievementID  uuid.UUID `db:"achievement_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Icon           string    `db:"icon"`
	FindsRequired  int       `db:"finds_required"`
	PointsRequired int       `db:"points_required"`
	Category       string    `db:"category"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
}

func (a *achievement) toModel() model.Achievement {
	return model.Achievement{
		AchievementID:  a.AchievementID,
		Name:           a.Name,
		Description:    a.Description,
		Icon:           a.Icon,
		FindsRequired:  a.FindsRequired,
		PointsRequired: a.PointsRequired,
		Category:       a.Category,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// UpsertAchievements seeds the catalog, keyed by name. Re-running with the
// same catalog is a no-op apart from refreshed descriptions and thresholds;
// existing awards keep pointing at the same rows.
func (r *Repository) UpsertAchievements(ctx context.Context, catalog []model.Achievement) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, a := range catalog {
			id := a.AchievementID
			if id == uuid.Nil {
				id = uuid.New()
			}

			query, args, err := squirrel.
				Insert("achievements").
				SetMap(map[string]interface{}{
					"achievement_id":  id,
					"name":            a.Name,
					"description":     a.Description,
					"icon":            a.Icon,
					"finds_required":  a.FindsRequired,
					"points_required": a.PointsRequired,
					"category":        a.Category,
					"is_active":       a.IsActive,
					"created_at":      time.Now().UTC(),
				}).
				Suffix(`ON CONFLICT (name) DO UPDATE SET
					description = EXCLUDED.description,
					icon = EXCLUDED.icon,
					finds_required = EXCLUDED.finds_required,
					points_required = EXCLUDED.points_required,
					category = EXCLUDED.category,
					is_active = EXCLUDED.is_active`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build achievement upsert query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to upsert achievement %q: %w", a.Name, err)
			}
		}

		return nil
	})
}

func (r *Repository) ListActiveAchievements(ctx context.Context) ([]model.Achievement, error) {
	query, args, err := squirrel.
		Select("*").
		From("achievements").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []achievement
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	achievements := make([]model.Achievement, len(rows))
	for i, row := range rows {
		achievements[i] = row.toModel()
	}

	return achievements, nil
}

// ListAwardedAchievementIDs returns the ids of every achievement the hunter
// has already unlocked.
func (r *Repository) ListAwardedAchievementIDs(ctx context.Context, telegramID int64) ([]uuid.UUID, error) {
	query, args, err := squirrel.
		Select("achievement_id").
		From("hunter_achievements").
		Where(squirrel.Eq{"hunter_telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err = r.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded achievements: %w", err)
	}

	return ids, nil
}

// AwardAchievement records an unlock. The unique constraint on the pair makes
// the call idempotent: a concurrent or repeated award hits ON CONFLICT DO
// NOTHING and reports false without an error.
func (r *Repository) AwardAchievement(ctx context.Context, telegramID int64, achievementID uuid.UUID) (bool, error) {
	query, args, err := squirrel.
		Insert("hunter_achievements").
		SetMap(map[string]interface{}{
			"hunter_telegram_id": telegramID,
			"achievement_id":     achievementID,
			"earned_at":          time.Now().UTC(),
		}).
		Suffix("ON CONFLICT (hunter_telegram_id, achievement_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to award achievement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}
