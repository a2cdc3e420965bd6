// Package timeclock holds the wall-clock arithmetic shared by the
// scheduling slices. Times are local "HH:MM" strings on a single day;
// overnight ranges are not supported by this model.
package timeclock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" into minutes from midnight.
func ParseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock time %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock time %q", v)
	}
	return h*60 + m, nil
}

// ValidRange reports whether start and end parse and satisfy start < end.
func ValidRange(start, end string) bool {
	s, err := ParseClock(start)
	if err != nil {
		return false
	}
	e, err := ParseClock(end)
	if err != nil {
		return false
	}
	return s < e && e <= minutesPerDay
}

// ScheduledHours computes planned hours for a shift, net of break.
// Returns 0 when either time is missing or malformed; a negative result
// (end before start) also collapses to 0, callers reject such input upfront.
func ScheduledHours(start, end string, breakMinutes int) float64 {
	if start == "" || end == "" {
		return 0
	}
	s, err := ParseClock(start)
	if err != nil {
		return 0
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0
	}
	hours := float64(e-s)/60 - float64(breakMinutes)/60
	if hours < 0 {
		return 0
	}
	return Round2(hours)
}

// ActualHours computes worked hours from clock punches, net of break.
// Returns 0 when either punch is absent.
func ActualHours(clockIn, clockOut *time.Time, breakMinutes int) float64 {
	if clockIn == nil || clockOut == nil {
		return 0
	}
	hours := clockOut.Sub(*clockIn).Hours() - float64(breakMinutes)/60
	if hours < 0 {
		return 0
	}
	return Round2(hours)
}

// Overlaps is the half-open interval test on minutes from midnight:
// [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// RangesOverlap applies Overlaps to "HH:MM" strings. Malformed input never
// overlaps.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, err := ParseClock(aStart)
	if err != nil {
		return false
	}
	ae, err := ParseClock(aEnd)
	if err != nil {
		return false
	}
	bs, err := ParseClock(bStart)
	if err != nil {
		return false
	}
	be, err := ParseClock(bEnd)
	if err != nil {
		return false
	}
	return Overlaps(as, ae, bs, be)
}

// WeekWindow returns the Monday-aligned 7-day window containing date.
func WeekWindow(date time.Time) (time.Time, time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start := d.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// Round2 rounds to two decimals, the precision every derived hour and cost
// figure is stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
