package model

import "time"

type Hunter struct {
	TelegramID       int64
	Username         string
	FirstName        string
	TotalPoints      int
	FindsCount       int
	RegistrationDate time.Time
	LastActivity     time.Time
}

// HunterStats is the profile report rendered by the bot layer: current
// standing, recent finds and every achievement unlocked so far.
type HunterStats struct {
	Hunter           Hunter
	Rank             int
	RankedHunters    int
	RecentFinds      []Find
	AchievementIcons []string
	AchievementNames []string
}
