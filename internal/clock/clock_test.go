package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFallsBackToFixedOffset(t *testing.T) {
	c := New("Not/AZone")
	assert.True(t, c.UsedFallback())

	// Fixed UTC-3, no DST.
	_, offset := time.Now().In(c.Location()).Zone()
	assert.Equal(t, -3*60*60, offset)
}

func TestNewResolvesConfiguredZone(t *testing.T) {
	c := New("America/Santiago")
	assert.False(t, c.UsedFallback())
	assert.Equal(t, "America/Santiago", c.Location().String())
}

func TestLocalDayAttributesUTCTimestampToLocalDay(t *testing.T) {
	c := New("Not/AZone") // fixed UTC-3 keeps the expectations stable

	// 23:50 local on Jan 5 is 02:50 UTC on Jan 6; the local day must win.
	utc := time.Date(2024, 1, 6, 2, 50, 0, 0, time.UTC)
	day := c.LocalDay(utc)
	assert.Equal(t, "2024-01-05", c.FormatDay(day))
}

func TestDayBounds(t *testing.T) {
	c := New("Not/AZone")

	day, err := c.ParseDay("2024-02-01")
	assert.NoError(t, err)

	start, end := c.DayBounds(day)
	assert.Equal(t, time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 2, 3, 0, 0, 0, time.UTC), end)

	// A payment at 23:50 local sits inside the window.
	paid := time.Date(2024, 2, 2, 2, 50, 0, 0, time.UTC)
	assert.True(t, !paid.Before(start) && paid.Before(end))
}

func TestSameLocalDay(t *testing.T) {
	c := New("Not/AZone")

	a := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)  // 09:00 local Jan 5
	b := time.Date(2024, 1, 6, 2, 0, 0, 0, time.UTC)   // 23:00 local Jan 5
	d := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)  // 09:00 local Jan 6

	assert.True(t, c.SameLocalDay(a, b))
	assert.False(t, c.SameLocalDay(a, d))
}
