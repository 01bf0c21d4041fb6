package repository

import (
	"context"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type leaderboardRow struct {
	TelegramID int64  `db:"telegram_id"`
	Username   string `db:"username"`
	FirstName  string `db:"first_name"`
	Points     int    `db:"points"`
	Finds      int    `db:"finds"`
}

func toEntries(rows []leaderboardRow) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.LeaderboardEntry{
			Rank:       i + 1,
			TelegramID: row.TelegramID,
			Username:   row.Username,
			FirstName:  row.FirstName,
			Points:     row.Points,
			Finds:      row.Finds,
		}
	}
	return entries
}

// TopHuntersAllTime ranks by the persisted totals, skipping hunters who have
// never scored. Ties break on ascending telegram id so the ordering is stable.
func (r *Repository) TopHuntersAllTime(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select(
			"telegram_id",
			"username",
			"first_name",
			"total_points AS points",
			"finds_count AS finds",
		).
		From("hunters").
		Where(squirrel.Gt{"total_points": 0}).
		OrderBy("total_points DESC", "telegram_id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get all-time leaderboard: %w", err)
	}

	return toEntries(rows), nil
}

// AggregateFindsSince sums points and counts finds created at or after the
// window start, grouped by hunter. Hunters with no find in the window do not
// appear.
func (r *Repository) AggregateFindsSince(ctx context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select(
			"h.telegram_id",
			"h.username",
			"h.first_name",
			"COALESCE(SUM(f.points_awarded), 0) AS points",
			"COUNT(f.find_id) AS finds",
		).
		From("hunters h").
		Join("finds f ON f.hunter_telegram_id = h.telegram_id").
		Where(squirrel.GtOrEq{"f.created_at": since}).
		GroupBy("h.telegram_id", "h.username", "h.first_name").
		OrderBy("points DESC", "h.telegram_id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate finds: %w", err)
	}

	return toEntries(rows), nil
}

// InsertLeaderboardSnapshots persists one standing per entry for the given
// window. The worker calls this on a schedule; rows are append-only history.
func (r *Repository) InsertLeaderboardSnapshots(ctx context.Context, period model.LeaderboardPeriod, start, end time.Time, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		builder := squirrel.
			Insert("leaderboard_snapshots").
			Columns("period", "period_start", "period_end", "rank", "hunter_telegram_id", "points", "finds", "created_at")

		now := time.Now().UTC()
		for _, e := range entries {
			builder = builder.Values(string(period), start, end, e.Rank, e.TelegramID, e.Points, e.Finds, now)
		}

		query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build snapshot insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert leaderboard snapshots: %w", err)
		}

		return nil
	})
}
