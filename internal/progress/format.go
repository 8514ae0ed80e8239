package progress

import (
	"fmt"
	"time"
)

// Unknown is shown when a value is not known yet
const Unknown = "—"

// Size units
const (
	KB = 1024
	MB = 1024 * KB
)

// FormatSpeed renders bytes per second as B/s, KB/s or MB/s
func FormatSpeed(bytesPerSecond float64) string {
	switch {
	case bytesPerSecond <= 0:
		return Unknown
	case bytesPerSecond < KB:
		return fmt.Sprintf("%.0f B/s", bytesPerSecond)
	case bytesPerSecond < MB:
		return fmt.Sprintf("%.1f KB/s", bytesPerSecond/KB)
	default:
		return fmt.Sprintf("%.1f MB/s", bytesPerSecond/MB)
	}
}

// FormatETA returns ETA formatted as m:ss or h:mm:ss, or "—" if unknown
func FormatETA(eta time.Duration) string {
	secs := int(eta.Round(time.Second) / time.Second)
	if secs <= 0 {
		return Unknown
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
