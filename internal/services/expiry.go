package services

import "time"

// Expired reports whether a todo's duration window has elapsed at the given
// instant. A todo with no start time or no duration never expires, and the
// exact end of the window still counts as not expired.
func Expired(startedTime *time.Time, durationMinutes *int, now time.Time) bool {
	if startedTime == nil || durationMinutes == nil {
		return false
	}
	deadline := startedTime.Add(time.Duration(*durationMinutes) * time.Minute)
	return now.After(deadline)
}
