package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type find struct {
	FindID        uuid.UUID `db:"find_id"`
	HunterID      int64     `db:"hunter_telegram_id"`
	Category      string    `db:"category"`
	Description   string    `db:"description"`
	PointsAwarded int       `db:"points_awarded"`
	Depth         *float64  `db:"depth"`
	Location      *string   `db:"location"`
	ImageAnalysis *string   `db:"image_analysis"`
	CreatedAt     time.Time `db:"created_at"`
}

func (f *find) toModel() model.Find {
	return model.Find{
		FindID:        f.FindID,
		HunterID:      f.HunterID,
		Category:      f.Category,
		Description:   f.Description,
		PointsAwarded: f.PointsAwarded,
		Depth:         f.Depth,
		Location:      f.Location,
		ImageAnalysis: f.ImageAnalysis,
		CreatedAt:     f.CreatedAt,
	}
}

// CreateFind inserts the find and applies the hunter total increments in the
// same transaction. The UPDATE increments in place, so two concurrent finds
// for the same hunter are both reflected. Returns ErrNotFound when the hunter
// row does not exist; nothing is written in that case.
func (r *Repository) CreateFind(ctx context.Context, f *model.Find) (*model.Find, error) {
	stored := *f
	if stored.FindID == uuid.Nil {
		stored.FindID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		updateQuery, updateArgs, err := squirrel.
			Update("hunters").
			Set("total_points", squirrel.Expr("total_points + ?", stored.PointsAwarded)).
			Set("finds_count", squirrel.Expr("finds_count + 1")).
			Set("last_activity", stored.CreatedAt).
			Where(squirrel.Eq{"telegram_id": stored.HunterID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build totals update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update hunter totals: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("finds").
			SetMap(map[string]interface{}{
				"find_id":            stored.FindID,
				"hunter_telegram_id": stored.HunterID,
				"category":           stored.Category,
				"description":        stored.Description,
				"points_awarded":     stored.PointsAwarded,
				"depth":              stored.Depth,
				"location":           stored.Location,
				"image_analysis":     stored.ImageAnalysis,
				"created_at":         stored.CreatedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build find insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("failed to insert find: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *Repository) ListRecentFinds(ctx context.Context, telegramID int64, limit int) ([]model.Find, error) {
	query, args, err := squirrel.
		Select("*").
		From("finds").
		Where(squirrel.Eq{"hunter_telegram_id": telegramID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []find
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent finds: %w", err)
	}

	finds := make([]model.Find, len(rows))
	for i, row := range rows {
		finds[i] = row.toModel()
	}

	return finds, nil
}

// CountFindsByCategoryPattern counts a hunter's finds whose category matches
// the ILIKE pattern, e.g. "%coin%".
func (r *Repository) CountFindsByCategoryPattern(ctx context.Context, telegramID int64, pattern string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("finds").
		Where(squirrel.Eq{"hunter_telegram_id": telegramID}).
		Where(squirrel.Expr("category ILIKE ?", pattern)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count finds by pattern: %w", err)
	}

	return count, nil
}

// CountFindsByCategories counts a hunter's finds whose category is one of the
// given values.
func (r *Repository) CountFindsByCategories(ctx context.Context, telegramID int64, categories []string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("finds").
		Where(squirrel.Eq{
			"hunter_telegram_id": telegramID,
			"category":           categories,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count finds by categories: %w", err)
	}

	return count, nil
}

type activityRow struct {
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	Category  string    `db:"category"`
	Points    int       `db:"points_awarded"`
	CreatedAt time.Time `db:"created_at"`
}

// CommunityActivity returns the most recent scored finds with the owning
// hunter's display name.
func (r *Repository) CommunityActivity(ctx context.Context, limit int) ([]model.ActivityItem, error) {
	query, args, err := squirrel.
		Select("h.username", "h.first_name", "f.category", "f.points_awarded", "f.created_at").
		From("finds f").
		Join("hunters h ON h.telegram_id = f.hunter_telegram_id").
		Where(squirrel.Gt{"f.points_awarded": 0}).
		OrderBy("f.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.ActivityItem{}, nil
		}
		return nil, fmt.Errorf("failed to get community activity: %w", err)
	}

	items := make([]model.ActivityItem, len(rows))
	for i, row := range rows {
		name := row.Username
		if name == "" {
			name = row.FirstName
		}
		items[i] = model.ActivityItem{
			HunterName: name,
			Category:   row.Category,
			Points:     row.Points,
			CreatedAt:  row.CreatedAt,
		}
	}

	return items, nil
}
