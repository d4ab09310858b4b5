package utils

import (
	"strings"
	"time"
)

const layoutTripDate = "2 Jan"

// ParseISO parses an ISO-8601 timestamp as sent by the remote store.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(s))
}

// FormatISO renders a timestamp the way the remote store expects it.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTripDate renders a short "2 Mar" date for trip summary lines.
func FormatTripDate(t time.Time) string {
	return t.Format(layoutTripDate)
}
