package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type hunter struct {
	TelegramID       int64     `db:"telegram_id"`
	Username         string    `db:"username"`
	FirstName        string    `db:"first_name"`
	TotalPoints      int       `db:"total_points"`
	FindsCount       int       `db:"finds_count"`
	RegistrationDate time.Time `db:"registration_date"`
	LastActivity     time.Time `db:"last_activity"`
}

func (h *hunter) toModel() *model.Hunter {
	return &model.Hunter{
		TelegramID:       h.TelegramID,
		Username:         h.Username,
		FirstName:        h.FirstName,
		TotalPoints:      h.TotalPoints,
		FindsCount:       h.FindsCount,
		RegistrationDate: h.RegistrationDate,
		LastActivity:     h.LastActivity,
	}
}

// GetOrCreateHunter returns the hunter keyed by telegramID, creating the row
// on first contact. Repeat calls refresh the name fields (when supplied) and
// last_activity. The whole operation runs in one transaction so two first
// contacts for the same id cannot produce duplicate rows.
func (r *Repository) GetOrCreateHunter(ctx context.Context, telegramID int64, username, firstName string) (*model.Hunter, error) {
	var out *model.Hunter

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		existing, err := r.getHunterWithTx(ctx, tx, telegramID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		now := time.Now().UTC()

		if errors.Is(err, ErrNotFound) {
			query, args, err := squirrel.
				Insert("hunters").
				SetMap(map[string]interface{}{
					"telegram_id":       telegramID,
					"username":          username,
					"first_name":        firstName,
					"total_points":      0,
					"finds_count":       0,
					"registration_date": now,
					"last_activity":     now,
				}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build hunter insert query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert hunter: %w", err)
			}

			out = &model.Hunter{
				TelegramID:       telegramID,
				Username:         username,
				FirstName:        firstName,
				RegistrationDate: now,
				LastActivity:     now,
			}
			return nil
		}

		if username == "" {
			username = existing.Username
		}
		if firstName == "" {
			firstName = existing.FirstName
		}

		query, args, err := squirrel.
			Update("hunters").
			Set("username", username).
			Set("first_name", firstName).
			Set("last_activity", now).
			Where(squirrel.Eq{"telegram_id": telegramID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build hunter update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update hunter: %w", err)
		}

		existing.Username = username
		existing.FirstName = firstName
		existing.LastActivity = now
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) GetHunterByTelegramID(ctx context.Context, telegramID int64) (*model.Hunter, error) {
	var h hunter
	query, args, err := squirrel.
		Select("*").
		From("hunters").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &h, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return h.toModel(), nil
}

func (r *Repository) getHunterWithTx(ctx context.Context, tx *sqlx.Tx, telegramID int64) (*model.Hunter, error) {
	var h hunter
	query, args, err := squirrel.
		Select("*").
		From("hunters").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, &h, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return h.toModel(), nil
}

type hunterStatsRow struct {
	hunter
	Rank             int            `db:"rank"`
	RankedHunters    int            `db:"ranked_hunters"`
	AchievementIcons pq.StringArray `db:"achievement_icons"`
	AchievementNames pq.StringArray `db:"achievement_names"`
}

// HunterStats assembles the profile report: rank among hunters with points,
// unlocked achievements and totals. Recent finds are fetched separately.
func (r *Repository) HunterStats(ctx context.Context, telegramID int64, recentFinds int) (*model.HunterStats, error) {
	query := squirrel.Select(
		"h.telegram_id",
		"h.username",
		"h.first_name",
		"h.total_points",
		"h.finds_count",
		"h.registration_date",
		"h.last_activity",
		"(SELECT COUNT(*) + 1 FROM hunters hh WHERE hh.total_points > h.total_points) AS rank",
		"(SELECT COUNT(*) FROM hunters hh WHERE hh.total_points > 0) AS ranked_hunters",
		"array_agg(a.icon ORDER BY ha.earned_at) FILTER (WHERE a.icon IS NOT NULL) AS achievement_icons",
		"array_agg(a.name ORDER BY ha.earned_at) FILTER (WHERE a.name IS NOT NULL) AS achievement_names",
	).
		From("hunters h").
		LeftJoin("hunter_achievements ha ON ha.hunter_telegram_id = h.telegram_id").
		LeftJoin("achievements a ON a.achievement_id = ha.achievement_id").
		Where(squirrel.Eq{"h.telegram_id": telegramID}).
		GroupBy("h.telegram_id").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var row hunterStatsRow
	err = r.db.GetContext(ctx, &row, sqlQuery, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hunter stats: %w", err)
	}

	finds, err := r.ListRecentFinds(ctx, telegramID, recentFinds)
	if err != nil {
		return nil, err
	}

	return &model.HunterStats{
		Hunter:           *row.hunter.toModel(),
		Rank:             row.Rank,
		RankedHunters:    row.RankedHunters,
		RecentFinds:      finds,
		AchievementIcons: row.AchievementIcons,
		AchievementNames: row.AchievementNames,
	}, nil
}
