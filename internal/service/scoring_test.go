package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func depth(v float64) *float64 {
	return &v
}

func TestScoreConfig_ComputePoints(t *testing.T) {
	scorer := DefaultScoreConfig()

	tests := []struct {
		name     string
		category string
		depth    *float64
		expected int
	}{
		{name: "coin base", category: "coin", expected: 10},
		{name: "jewelry base", category: "jewelry", expected: 25},
		{name: "relic base", category: "relic", expected: 20},
		{name: "artifact base", category: "artifact", expected: 30},
		{name: "button base", category: "button", expected: 15},
		{name: "buckle base", category: "buckle", expected: 15},
		{name: "token base", category: "token", expected: 20},
		{name: "other base", category: "other", expected: 5},
		{name: "unknown category falls back to other", category: "meteorite", expected: 5},
		{name: "empty category falls back to other", category: "", expected: 5},
		{name: "case insensitive", category: "COIN", expected: 10},
		{name: "surrounding whitespace", category: "  coin ", expected: 10},
		{name: "coin at depth 14 gets deep bonus", category: "coin", depth: depth(14), expected: 20},
		{name: "deep bonus boundary excluded at 12", category: "coin", depth: depth(12), expected: 15},
		{name: "shallow bonus above 8", category: "coin", depth: depth(9), expected: 15},
		{name: "shallow bonus boundary excluded at 8", category: "coin", depth: depth(8), expected: 10},
		{name: "no bonus near surface", category: "coin", depth: depth(2), expected: 10},
		{name: "unknown category still gets depth bonus", category: "meteorite", depth: depth(13), expected: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.ComputePoints(tt.category, tt.depth))
		})
	}
}

func TestScoreConfig_ComputePointsDeterministic(t *testing.T) {
	scorer := DefaultScoreConfig()

	for i := 0; i < 10; i++ {
		assert.Equal(t, 35, scorer.ComputePoints("jewelry", depth(9.5)))
	}
}

func TestScoreConfig_Known(t *testing.T) {
	scorer := DefaultScoreConfig()

	assert.True(t, scorer.Known("coin"))
	assert.True(t, scorer.Known("Token"))
	assert.False(t, scorer.Known("meteorite"))
}
