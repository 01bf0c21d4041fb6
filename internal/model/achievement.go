package model

import (
	"time"

	"github.com/google/uuid"
)

// Achievement rule categories.
const (
	AchievementFinds   = "finds"
	AchievementPoints  = "points"
	AchievementSpecial = "special"
)

// Achievement is a catalog entry, seeded at store initialization and treated
// as read-mostly configuration afterwards.
type Achievement struct {
	AchievementID  uuid.UUID
	Name           string
	Description    string
	Icon           string
	FindsRequired  int
	PointsRequired int
	Category       string
	IsActive       bool
	CreatedAt      time.Time
}

// AchievementAward records that a hunter unlocked an achievement. At most one
// award exists per (hunter, achievement) pair.
type AchievementAward struct {
	HunterID      int64
	AchievementID uuid.UUID
	EarnedAt      time.Time
}
