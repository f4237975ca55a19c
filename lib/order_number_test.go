package lib_test

import (
	"freshcatch_server/lib"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber_Padding(t *testing.T) {
	t.Parallel()
	day := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20250101-001", lib.FormatOrderNumber(day, 1))
	assert.Equal(t, "ORD-20250101-042", lib.FormatOrderNumber(day, 42))
	assert.Equal(t, "ORD-20250101-999", lib.FormatOrderNumber(day, 999))
}

// Past 999 the sequence widens instead of overflowing or truncating.
func TestFormatOrderNumber_WidensPastThreeDigits(t *testing.T) {
	t.Parallel()
	day := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20250615-1000", lib.FormatOrderNumber(day, 1000))
	assert.Equal(t, "ORD-20250615-12345", lib.FormatOrderNumber(day, 12345))
}

// The date portion is always the UTC calendar date, regardless of the zone
// carried by the timestamp. A checkout late in the evening in a western zone
// must land on the UTC day, not the local one.
func TestFormatOrderNumber_UsesUTCDate(t *testing.T) {
	t.Parallel()
	nyc := time.FixedZone("EST", -5*60*60)
	// 23:30 local on Jan 1 is 04:30 UTC on Jan 2
	local := time.Date(2025, 1, 1, 23, 30, 0, 0, nyc)

	assert.Equal(t, "ORD-20250102-001", lib.FormatOrderNumber(local, 1))
	assert.Equal(t, "2025-01-02", lib.OrderDateKey(local))
}

func TestUTCDayBounds(t *testing.T) {
	t.Parallel()
	start, end := lib.UTCDayBounds(time.Date(2025, 6, 15, 13, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

// The bounds follow the UTC calendar day, not the local one; an evening
// timestamp in a western zone belongs to the next UTC day.
func TestUTCDayBounds_CrossesLocalMidnight(t *testing.T) {
	t.Parallel()
	nyc := time.FixedZone("EST", -5*60*60)
	local := time.Date(2025, 1, 1, 23, 30, 0, 0, nyc) // 04:30 UTC on Jan 2

	start, end := lib.UTCDayBounds(local)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), end)

	// End of day lands inside the half-open interval
	lastMoment := time.Date(2025, 1, 2, 23, 59, 59, 0, time.UTC)
	assert.True(t, !lastMoment.Before(start) && lastMoment.Before(end))
}

func TestOrderDateKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2025-12-31", lib.OrderDateKey(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "2026-01-01", lib.OrderDateKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
