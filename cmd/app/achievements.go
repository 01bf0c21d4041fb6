package main

import (
	"fmt"
	"os"

	"treasure_hunter_bot/internal/model"

	"github.com/goccy/go-json"
)

// DefaultAchievementCatalog is the built-in catalog, seeded on every startup
// by an upsert keyed on name. Thresholds here are defaults, not business
// rules; deployments override them with a catalog file.
func DefaultAchievementCatalog() []model.Achievement {
	return []model.Achievement{
		{Name: "First Find", Description: "Record your very first treasure find!", Icon: "🎯", FindsRequired: 1, Category: model.AchievementFinds, IsActive: true},
		{Name: "Rookie Hunter", Description: "Find 5 treasures", Icon: "🔍", FindsRequired: 5, Category: model.AchievementFinds, IsActive: true},
		{Name: "Experienced Hunter", Description: "Find 25 treasures", Icon: "⛏️", FindsRequired: 25, Category: model.AchievementFinds, IsActive: true},
		{Name: "Master Hunter", Description: "Find 100 treasures", Icon: "🏆", FindsRequired: 100, Category: model.AchievementFinds, IsActive: true},
		{Name: "Point Collector", Description: "Earn 100 points", Icon: "💯", PointsRequired: 100, Category: model.AchievementPoints, IsActive: true},
		{Name: "High Scorer", Description: "Earn 500 points", Icon: "⭐", PointsRequired: 500, Category: model.AchievementPoints, IsActive: true},
		{Name: "Legend", Description: "Earn 1000 points", Icon: "👑", PointsRequired: 1000, Category: model.AchievementPoints, IsActive: true},
		{Name: "Coin Specialist", Description: "Find 10 coins", Icon: "🪙", Category: model.AchievementSpecial, IsActive: true},
		{Name: "Jewelry Expert", Description: "Find 5 pieces of jewelry", Icon: "💍", Category: model.AchievementSpecial, IsActive: true},
		{Name: "History Buff", Description: "Find 5 historical relics", Icon: "🏺", Category: model.AchievementSpecial, IsActive: true},
	}
}

type catalogEntry struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	FindsRequired  int    `json:"finds_required"`
	PointsRequired int    `json:"points_required"`
	Category       string `json:"category"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// LoadAchievementCatalog returns the catalog from the given JSON file, or the
// built-in defaults when no file is configured.
func LoadAchievementCatalog(path string) ([]model.Achievement, error) {
	if path == "" {
		return DefaultAchievementCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievement catalog: %w", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse achievement catalog: %w", err)
	}

	catalog := make([]model.Achievement, len(entries))
	for i, e := range entries {
		active := true
		if e.IsActive != nil {
			active = *e.IsActive
		}
		catalog[i] = model.Achievement{
			Name:           e.Name,
			Description:    e.Description,
			Icon:           e.Icon,
			FindsRequired:  e.FindsRequired,
			PointsRequired: e.PointsRequired,
			Category:       e.Category,
			IsActive:       active,
		}
	}

	return catalog, nil
}
