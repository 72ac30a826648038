// Package display renders countdown values for the user.
package display

import (
	"fmt"
	"time"
)

// Remaining formats a countdown value as H:MM:SS, dropping the hour field
// below one hour. Sub-second parts are truncated.
func Remaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int64(remaining / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
