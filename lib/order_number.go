package lib

import (
	"fmt"
	"time"
)

// Order numbers look like ORD-20250101-001: the UTC date of checkout plus
// the order's position in that day's sequence. The sequence itself lives in
// the order_counts table and is advanced atomically by the order service;
// this file only formats.

const orderNumberPrefix = "ORD"

// OrderDateKey returns the order_counts key for t: the UTC calendar date in
// YYYY-MM-DD form. Always the server clock, never client time.
func OrderDateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatOrderNumber builds the order number for the given checkout time and
// daily sequence value. The sequence is zero-padded to three digits and
// widens naturally past 999 (1000, 1001, ...) rather than failing.
func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", orderNumberPrefix, t.UTC().Format("20060102"), seq)
}

// UTCDayBounds returns the half-open interval [start, end) of the UTC
// calendar day containing t. Passing both bounds to a timestamptz comparison
// pins the day boundary regardless of the session time zone.
func UTCDayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
