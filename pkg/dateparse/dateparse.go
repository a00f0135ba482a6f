package dateparse

import (
	"strings"
	"time"
)

// Formats accepted by the ORIS exports, most specific first. The report
// writes dates as DD/MM/YYYY; older extracts carry ISO or dashed variants,
// sometimes with a time component appended.
var layouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2/1/2006",
}

// Parse converts a textual date from a roster snapshot. A value that fails
// every layout is treated as absent, not as an error: a single malformed
// field must not abort processing of the remaining rows.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseFirst returns the first parseable value among alternately named
// source fields.
func ParseFirst(raws ...string) (time.Time, bool) {
	for _, raw := range raws {
		if t, ok := Parse(raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatBR renders a date the way the report does.
func FormatBR(t time.Time) string {
	return t.Format("02/01/2006")
}
