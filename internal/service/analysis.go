package service

import (
	"regexp"
	"strconv"
	"strings"
)

// categoryKeywords maps a find category to the words that suggest it inside
// an AI-analysis blob. categoryOrder fixes the iteration order so ties always
// resolve the same way.
var (
	categoryOrder = []string{"coin", "jewelry", "relic", "button", "buckle", "token"}

	categoryKeywords = map[string][]string{
		"coin":    {"coin", "penny", "nickel", "dime", "quarter", "cent", "currency"},
		"jewelry": {"ring", "necklace", "bracelet", "earring", "jewelry", "gold", "silver"},
		"relic":   {"relic", "artifact", "historical", "antique", "old"},
		"button":  {"button", "fastener"},
		"buckle":  {"buckle", "belt"},
		"token":   {"token", "medallion", "badge"},
	}
)

// InferCategory guesses the find category from analysis text by keyword
// scoring. Returns "other" when nothing matches.
func InferCategory(analysis string) string {
	text := strings.ToLower(analysis)

	best := ""
	bestScore := 0
	for _, category := range categoryOrder {
		score := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	if best == "" {
		return "other"
	}
	return best
}

var depthPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:inch|cm|")`)

// ExtractDepth pulls a depth measurement out of a free-text description, e.g.
// "found at 9 inches". Returns nil when the text mentions no depth.
func ExtractDepth(description string) *float64 {
	match := depthPattern.FindStringSubmatch(strings.ToLower(description))
	if match == nil {
		return nil
	}

	depth, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}

	return &depth
}
