package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      string
	}{
		{"no expiry", nil, ""},
		{"already past", ptr(now.Add(-time.Hour)), "Expired"},
		{"inside grace window", ptr(now.Add(800 * time.Millisecond)), "Expired"},
		{"exactly one second", ptr(now.Add(time.Second)), "Expired"},
		{"under a minute", ptr(now.Add(30 * time.Second)), "0m left"},
		{"minutes", ptr(now.Add(90 * time.Second)), "1m left"},
		{"forty five minutes", ptr(now.Add(45 * time.Minute)), "45m left"},
		{"hours", ptr(now.Add(3*time.Hour + 20*time.Minute)), "3h left"},
		{"just under a day", ptr(now.Add(23 * time.Hour)), "23h left"},
		{"days win over hours", ptr(now.Add(49 * time.Hour)), "2d left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeRemaining(tt.expiresAt, now))
		})
	}
}

func TestTimeRemainingMonotonic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Later expiries never read as less remaining than earlier ones.
	expiries := []time.Duration{
		-time.Hour, 0, time.Second, time.Minute, time.Hour, 26 * time.Hour, 200 * time.Hour,
	}
	rank := func(label string) int {
		switch {
		case label == "Expired":
			return 0
		case label[len(label)-6] == 'm':
			return 1
		case label[len(label)-6] == 'h':
			return 2
		}
		return 3
	}
	prev := -1
	for _, d := range expiries {
		label := TimeRemaining(ptr(now.Add(d)), now)
		r := rank(label)
		assert.GreaterOrEqual(t, r, prev, "expiry %v regressed to %q", d, label)
		prev = r
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"now", now, "Today"},
		{"earlier today", time.Date(2026, 3, 10, 0, 0, 30, 0, time.UTC), "Today"},
		// Two minutes of elapsed time, but the calendar date rolled over.
		{"just before midnight", time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{"three days", time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), "3 days ago"},
		{"six days", time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), "6 days ago"},
		{"a week or more", time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC), "Feb 20"},
		// Future dates clamp to Today rather than going negative.
		{"future", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), "Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDate(tt.ts, now))
		})
	}
}

func TestRelativeDateUsesCalendarNotElapsed(t *testing.T) {
	// A full 24 hours earlier, but on the same calendar date offset of
	// one, is still "Yesterday"; 23 hours earlier on the same date is
	// "Today".
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", RelativeDate(now.Add(-24*time.Hour), now))
	assert.Equal(t, "Today", RelativeDate(now.Add(-23*time.Hour), now))
}
