package model

import "time"

// LeaderboardPeriod selects the aggregation window for a ranking query.
type LeaderboardPeriod string

const (
	PeriodAllTime LeaderboardPeriod = "all_time"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodWeekly  LeaderboardPeriod = "weekly"
)

// Valid reports whether p is one of the supported periods.
func (p LeaderboardPeriod) Valid() bool {
	switch p {
	case PeriodAllTime, PeriodMonthly, PeriodWeekly:
		return true
	}
	return false
}

// LeaderboardEntry is one ranked row. Rank is 1-based; ties on points are
// broken by ascending hunter telegram id, so the ordering is total.
type LeaderboardEntry struct {
	Rank       int
	TelegramID int64
	Username   string
	FirstName  string
	Points     int
	Finds      int
}

// LeaderboardSnapshot is a persisted standing written by the snapshot worker.
type LeaderboardSnapshot struct {
	Period      LeaderboardPeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	Entry       LeaderboardEntry
	CreatedAt   time.Time
}
