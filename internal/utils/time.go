package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD, the wire format for trip and expense dates.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS", used for route point timestamps.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}
