// Package timeutil provides time formatting utilities for memwatch.
//
// Timestamps handed around the TUI are Unix nanoseconds (int64), the
// same representation time.Time.UnixNano produces.
package timeutil

import (
	"fmt"
	"time"
)

// FromNano converts a Unix nanosecond timestamp to time.Time.
func FromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// FormatTimestamp formats a Unix nanosecond timestamp for log lines and
// the status bar. Format: "HH:MM:SS.mmm"
func FormatTimestamp(ns int64) string {
	return FromNano(ns).Format("15:04:05.000")
}

// FormatDuration formats a duration for the status bar.
// Examples: "450ms", "1.2s", "2m 15.3s", "1h 2m"
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	if minutes < 60 {
		remaining := seconds - float64(minutes*60)
		return fmt.Sprintf("%dm %.1fs", minutes, remaining)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
