package hub

import (
	"fmt"
	"time"
)

// RelativeTime renders a timestamp as a coarse human phrase using a fixed
// minute/hour/day staircase. A nil timestamp means the event never happened.
func RelativeTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return relativeSince(time.Since(*t))
}

func relativeSince(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
