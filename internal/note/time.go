package note

import (
	"fmt"
	"math"
	"time"
)

// TimeRemaining renders the gap between now and an expiry as the largest
// whole unit of days, hours or minutes. It returns "" when the note never
// expires and "Expired" once the expiry is within one second of now; the
// one second grace absorbs clock skew and render latency. Seconds are
// never shown.
func TimeRemaining(expiresAt *time.Time, now time.Time) string {
	if expiresAt == nil {
		return ""
	}

	diff := expiresAt.Sub(now)
	if diff <= time.Second {
		return "Expired"
	}

	hours := int(diff / time.Hour)
	days := hours / 24

	if days > 0 {
		return fmt.Sprintf("%dd left", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh left", hours)
	}
	return fmt.Sprintf("%dm left", int(diff/time.Minute))
}

// RelativeDate labels a timestamp by calendar-date distance, not elapsed
// time, so 11:59pm yesterday is still "Yesterday" two minutes later.
// Both instants are compared in now's zone. A future date clamps to
// "Today" rather than producing a negative count.
func RelativeDate(t, now time.Time) string {
	loc := now.Location()
	t = t.In(loc)

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Rounding keeps the diff whole across DST transitions.
	days := int(math.Round(today.Sub(day).Hours() / 24))

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return t.Format("Jan 2")
}
