package analyzer

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way the dashboard displays response
// times and silences: seconds below a minute, whole minutes below an hour,
// "10h 0m" below a day, then "3d 7h". Zero means no samples and renders
// "N/A".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}

	seconds := int64(d / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	days := hours / 24
	return fmt.Sprintf("%dd %dh", days, hours%24)
}
