// Package sqlite implements the ports storage contracts on top of the
// shared database handle.
package sqlite

import (
	"time"
)

// timeLayout keeps the fractional seconds fixed-width so TEXT timestamps
// sort lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
