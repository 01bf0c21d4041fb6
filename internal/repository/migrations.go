package repository

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS hunters (
    telegram_id BIGINT PRIMARY KEY,
    username VARCHAR(255) NOT NULL DEFAULT '',
    first_name VARCHAR(255) NOT NULL DEFAULT '',
    total_points INTEGER NOT NULL DEFAULT 0,
    finds_count INTEGER NOT NULL DEFAULT 0,
    registration_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    last_activity TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_total_points CHECK (total_points >= 0),
    CONSTRAINT valid_finds_count CHECK (finds_count >= 0)
);

CREATE INDEX IF NOT EXISTS idx_hunters_total_points ON hunters(total_points DESC);

CREATE TABLE IF NOT EXISTS finds (
    find_id UUID PRIMARY KEY,
    hunter_telegram_id BIGINT NOT NULL REFERENCES hunters(telegram_id),
    category VARCHAR(100) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    points_awarded INTEGER NOT NULL DEFAULT 0,
    depth DOUBLE PRECISION,
    location VARCHAR(255),
    image_analysis TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_finds_hunter ON finds(hunter_telegram_id);
CREATE INDEX IF NOT EXISTS idx_finds_created_at ON finds(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_finds_hunter_category ON finds(hunter_telegram_id, category);

CREATE TABLE IF NOT EXISTS achievements (
    achievement_id UUID PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    icon VARCHAR(50) NOT NULL DEFAULT '',
    finds_required INTEGER NOT NULL DEFAULT 0,
    points_required INTEGER NOT NULL DEFAULT 0,
    category VARCHAR(50) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS hunter_achievements (
    hunter_telegram_id BIGINT NOT NULL REFERENCES hunters(telegram_id),
    achievement_id UUID NOT NULL REFERENCES achievements(achievement_id),
    earned_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    UNIQUE (hunter_telegram_id, achievement_id)
);

CREATE INDEX IF NOT EXISTS idx_hunter_achievements_hunter ON hunter_achievements(hunter_telegram_id);

CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
    id SERIAL PRIMARY KEY,
    period VARCHAR(20) NOT NULL,
    period_start TIMESTAMP WITH TIME ZONE NOT NULL,
    period_end TIMESTAMP WITH TIME ZONE NOT NULL,
    rank INTEGER NOT NULL,
    hunter_telegram_id BIGINT NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    finds INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_period ON leaderboard_snapshots(period, period_end DESC);
`

// Migrate creates the schema. Every statement is idempotent, so running it on
// every startup is safe.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}
