package timeclock_test

import (
	"testing"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	t.Run("valid times", func(t *testing.T) {
		m, err := timeclock.ParseClock("00:00")
		assert.NoError(t, err)
		assert.Equal(t, 0, m)

		m, err = timeclock.ParseClock("08:30")
		assert.NoError(t, err)
		assert.Equal(t, 510, m)

		m, err = timeclock.ParseClock("23:59")
		assert.NoError(t, err)
		assert.Equal(t, 1439, m)
	})

	t.Run("malformed times", func(t *testing.T) {
		for _, v := range []string{"", "8", "25:00", "12:60", "12:0x", "ab:cd", "12.30"} {
			_, err := timeclock.ParseClock(v)
			assert.Error(t, err, v)
		}
	})
}

func TestScheduledHours(t *testing.T) {
	t.Run("standard shift with break", func(t *testing.T) {
		// 08:00-16:00 minus 30 min break
		assert.Equal(t, 7.5, timeclock.ScheduledHours("08:00", "16:00", 30))
	})

	t.Run("no break", func(t *testing.T) {
		assert.Equal(t, 8.0, timeclock.ScheduledHours("09:00", "17:00", 0))
	})

	t.Run("missing input returns zero", func(t *testing.T) {
		assert.Equal(t, 0.0, timeclock.ScheduledHours("", "16:00", 0))
		assert.Equal(t, 0.0, timeclock.ScheduledHours("08:00", "", 0))
		assert.Equal(t, 0.0, timeclock.ScheduledHours("bad", "16:00", 0))
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Equal(t, 0.0, timeclock.ScheduledHours("16:00", "08:00", 0))
		assert.Equal(t, 0.0, timeclock.ScheduledHours("08:00", "08:30", 60))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		// 8h20m = 8.333... -> 8.33
		assert.Equal(t, 8.33, timeclock.ScheduledHours("08:00", "16:20", 0))
	})
}

func TestActualHours(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("clock punches beyond the scheduled window", func(t *testing.T) {
		in := day.Add(7*time.Hour + 55*time.Minute)
		out := day.Add(16*time.Hour + 10*time.Minute)
		assert.Equal(t, 8.25, timeclock.ActualHours(&in, &out, 0))
	})

	t.Run("missing punch returns zero", func(t *testing.T) {
		in := day.Add(8 * time.Hour)
		assert.Equal(t, 0.0, timeclock.ActualHours(&in, nil, 0))
		assert.Equal(t, 0.0, timeclock.ActualHours(nil, &in, 0))
	})

	t.Run("break deducted", func(t *testing.T) {
		in := day.Add(8 * time.Hour)
		out := day.Add(16 * time.Hour)
		assert.Equal(t, 7.5, timeclock.ActualHours(&in, &out, 30))
	})
}

func TestValidRange(t *testing.T) {
	assert.True(t, timeclock.ValidRange("08:00", "16:00"))
	assert.False(t, timeclock.ValidRange("16:00", "08:00"))
	assert.False(t, timeclock.ValidRange("08:00", "08:00"))
	assert.False(t, timeclock.ValidRange("", "16:00"))
}

func TestRangesOverlap(t *testing.T) {
	// 09:00-13:00 vs 12:00-17:00 share 12:00-13:00
	assert.True(t, timeclock.RangesOverlap("09:00", "13:00", "12:00", "17:00"))

	// back-to-back shifts do not overlap under the half-open test
	assert.False(t, timeclock.RangesOverlap("09:00", "13:00", "13:00", "17:00"))

	// containment overlaps
	assert.True(t, timeclock.RangesOverlap("08:00", "18:00", "10:00", "12:00"))

	assert.False(t, timeclock.RangesOverlap("08:00", "10:00", "11:00", "12:00"))
}

func TestWeekWindow(t *testing.T) {
	t.Run("wednesday maps to its monday", func(t *testing.T) {
		// 2026-03-04 is a Wednesday
		start, end := timeclock.WeekWindow(time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC))
		assert.Equal(t, "2026-03-02", start.Format("2006-01-02"))
		assert.Equal(t, "2026-03-08", end.Format("2006-01-02"))
	})

	t.Run("monday is its own start", func(t *testing.T) {
		start, _ := timeclock.WeekWindow(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2026-03-02", start.Format("2006-01-02"))
	})

	t.Run("sunday belongs to the preceding monday", func(t *testing.T) {
		start, end := timeclock.WeekWindow(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2026-03-02", start.Format("2006-01-02"))
		assert.Equal(t, "2026-03-08", end.Format("2006-01-02"))
	})
}
