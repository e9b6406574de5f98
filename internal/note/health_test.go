package note

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestHealthScore(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	base := Note{
		Title:     "Groceries",
		Content:   words(150),
		UpdatedAt: now.Add(-time.Hour),
	}

	t.Run("title plus length plus recency", func(t *testing.T) {
		assert.Equal(t, 80, HealthScore(base, now))
		assert.Equal(t, "high", HealthTier(80))
	})

	t.Run("empty title drops thirty", func(t *testing.T) {
		n := base
		n.Title = "   " // whitespace only counts as empty
		assert.Equal(t, 50, HealthScore(n, now))
		assert.Equal(t, "mid", HealthTier(50))
	})

	t.Run("empty stale note scores zero", func(t *testing.T) {
		n := Note{UpdatedAt: now.Add(-48 * time.Hour)}
		assert.Equal(t, 0, HealthScore(n, now))
		assert.Equal(t, "low", HealthTier(0))
	})

	t.Run("everything", func(t *testing.T) {
		n := base
		n.Tags = []string{"shopping"}
		assert.Equal(t, 100, HealthScore(n, now))
	})

	t.Run("exactly one hundred words is not enough", func(t *testing.T) {
		n := base
		n.Content = words(100)
		assert.Equal(t, 50, HealthScore(n, now))
	})

	t.Run("update at the 24h boundary does not count", func(t *testing.T) {
		n := Note{Title: "t", UpdatedAt: now.Add(-24 * time.Hour)}
		assert.Equal(t, 30, HealthScore(n, now))
	})
}

func TestHealthTierBoundaries(t *testing.T) {
	assert.Equal(t, "low", HealthTier(39))
	assert.Equal(t, "mid", HealthTier(40))
	assert.Equal(t, "mid", HealthTier(79))
	assert.Equal(t, "high", HealthTier(80))
	assert.Equal(t, "high", HealthTier(100))
}
