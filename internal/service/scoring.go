package service

import (
	"strings"

	"treasure_hunter_bot/internal/model"
)

// ScoreConfig holds the point table for find scoring. The defaults mirror the
// catalog the bot shipped with, but every value is configuration, not a
// business rule.
type ScoreConfig struct {
	BasePoints map[string]int `yaml:"basePoints"`

	// Depth bonus: a find deeper than DeepThreshold earns DeepBonus, otherwise
	// a find deeper than ShallowThreshold earns ShallowBonus.
	DeepThreshold    float64 `yaml:"deepThreshold"`
	DeepBonus        int     `yaml:"deepBonus"`
	ShallowThreshold float64 `yaml:"shallowThreshold"`
	ShallowBonus     int     `yaml:"shallowBonus"`
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		BasePoints: map[string]int{
			"coin":     10,
			"jewelry":  25,
			"relic":    20,
			"artifact": 30,
			"button":   15,
			"buckle":   15,
			"token":    20,
			"other":    5,
		},
		DeepThreshold:    12,
		DeepBonus:        10,
		ShallowThreshold: 8,
		ShallowBonus:     5,
	}
}

// ComputePoints scores a find. Pure: same (category, depth) always yields the
// same score. Unknown categories score as "other"; a missing depth earns no
// bonus.
func (c ScoreConfig) ComputePoints(category string, depth *float64) int {
	points, ok := c.BasePoints[NormalizeCategory(category)]
	if !ok {
		points = c.BasePoints[model.CategoryOther]
	}

	if depth != nil {
		if *depth > c.DeepThreshold {
			points += c.DeepBonus
		} else if *depth > c.ShallowThreshold {
			points += c.ShallowBonus
		}
	}

	if points < 0 {
		return 0
	}
	return points
}

// Known reports whether the category has its own entry in the point table.
func (c ScoreConfig) Known(category string) bool {
	_, ok := c.BasePoints[NormalizeCategory(category)]
	return ok
}

// NormalizeCategory lower-cases and trims a user-supplied category string.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
