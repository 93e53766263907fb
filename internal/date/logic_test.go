package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestExpandYear verifies the two digit year window (70-99 -> 19xx, 00-69 -> 20xx).
func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2000, expandYear(0))
	assert.Equal(t, 2069, expandYear(69))
	assert.Equal(t, 1970, expandYear(70))
	assert.Equal(t, 1999, expandYear(99))
}

func TestOrdinalSuffix(t *testing.T) {
	expected := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st"}
	for day, suffix := range expected {
		assert.Equal(t, suffix, ordinalSuffix(day), "day %d", day)
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, daysIn(time.January, 2017))
	assert.Equal(t, 28, daysIn(time.February, 2017))
	assert.Equal(t, 29, daysIn(time.February, 2016))
	assert.Equal(t, 29, daysIn(time.February, 2000), "2000 is a leap year")
	assert.Equal(t, 28, daysIn(time.February, 1900), "1900 is not a leap year")
	assert.Equal(t, 31, daysIn(time.December, 2017))

	assert.Equal(t, 365, daysInYear(2017))
	assert.Equal(t, 366, daysInYear(2016))
}

// TestParseLayout_BaselineIgnoresWallClock checks that absent fields never
// come from time.Now().
func TestParseLayout_BaselineIgnoresWallClock(t *testing.T) {
	got, reason := parseLayout("15", "i", time.UTC)

	assert.Empty(t, reason)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 15, 0, 0, time.UTC), got)
}

func TestFormatLayout_SkipsParseOnlyDirectives(t *testing.T) {
	ts := time.Date(2017, 1, 8, 4, 5, 6, 0, time.UTC)

	assert.Equal(t, "2017-01-08", formatLayout(ts, "!Y-m-d|+"))
	assert.Equal(t, "2017T01", formatLayout(ts, `Y\Tm`))
	assert.Equal(t, "UTC +0000 +00:00", formatLayout(ts, "T O P"))
	assert.Equal(t, "4 04 4 04 am AM", formatLayout(ts, "G H g h a A"))
}

func TestModify_ClockLayoutsRejectDates(t *testing.T) {
	_, ok := parseClock("2017")
	assert.False(t, ok)

	c, ok := parseClock("7:05:09")
	assert.True(t, ok)
	assert.Equal(t, 7, c.Hour())
	assert.Equal(t, 5, c.Minute())
	assert.Equal(t, 9, c.Second())
}
