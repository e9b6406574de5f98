package note

import (
	"strings"
	"time"
)

// HealthScore computes the 0-100 completeness/freshness score for a note:
// +30 for a non-blank title, +20 for at least one tag, +30 for content
// longer than 100 words, +20 for an update within the last 24 hours.
// Missing fields contribute nothing; the score never fails.
func HealthScore(n Note, now time.Time) int {
	score := 0

	if strings.TrimSpace(n.Title) != "" {
		score += 30
	}
	if len(n.Tags) > 0 {
		score += 20
	}
	if len(strings.Fields(n.Content)) > 100 {
		score += 30
	}
	if now.Sub(n.UpdatedAt) < 24*time.Hour {
		score += 20
	}

	return score
}

// HealthTier buckets a score for display.
func HealthTier(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 40:
		return "mid"
	}
	return "low"
}
