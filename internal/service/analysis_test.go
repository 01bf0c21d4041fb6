package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		expected string
	}{
		{
			name:     "coin keywords",
			analysis: "A worn copper penny, likely a large cent",
			expected: "coin",
		},
		{
			name:     "jewelry outweighs a single relic keyword",
			analysis: "An old silver ring with gold inlay, antique jewelry",
			expected: "jewelry",
		},
		{
			name:     "buckle",
			analysis: "Brass belt buckle, military issue",
			expected: "buckle",
		},
		{
			name:     "token",
			analysis: "A trade token or medallion",
			expected: "token",
		},
		{
			name:     "no keywords",
			analysis: "An unidentifiable lump of metal",
			expected: "other",
		},
		{
			name:     "case insensitive",
			analysis: "SILVER QUARTER",
			expected: "coin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCategory(tt.analysis))
		})
	}
}

func TestExtractDepth(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    *float64
	}{
		{
			name:        "inches",
			description: "found a coin at 8 inches near the oak",
			expected:    depth(8),
		},
		{
			name:        "decimal inches",
			description: "dug from 6.5 inches of clay",
			expected:    depth(6.5),
		},
		{
			name:        "centimeters",
			description: "about 20cm down",
			expected:    depth(20),
		},
		{
			name:        "quote mark shorthand",
			description: `signal at 10" in the field`,
			expected:    depth(10),
		},
		{
			name:        "no depth mentioned",
			description: "surface find by the trail",
			expected:    nil,
		},
		{
			name:        "empty description",
			description: "",
			expected:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDepth(tt.description)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "coin", NormalizeCategory("  Coin "))
	assert.Equal(t, "", NormalizeCategory("   "))
}
