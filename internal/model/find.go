package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryOther is the fallback category for finds that could not be
// classified. Unknown category strings score as "other".
const CategoryOther = "other"

// Find is one recorded discovery. Rows are append-only: points are computed
// once at creation and never change afterwards.
type Find struct {
	FindID        uuid.UUID
	HunterID      int64
	Category      string
	Description   string
	PointsAwarded int
	Depth         *float64
	Location      *string
	ImageAnalysis *string
	CreatedAt     time.Time
}

// FindResult is what the collaborator renders back to the hunter after a
// submission: the stored find, the totals after the increment and any
// achievements unlocked by this find.
type FindResult struct {
	Find            Find
	TotalPoints     int
	TotalFinds      int
	NewAchievements []Achievement
}

// ActivityItem is one entry of the community feed.
type ActivityItem struct {
	HunterName string
	Category   string
	Points     int
	CreatedAt  time.Time
}
