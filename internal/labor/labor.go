package labor

import (
	"github.com/justinnewbold/PattyShack-sub001/internal/shift"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"
)

// dailyOvertimeThreshold is the hours-per-shift line past which worked time
// counts as overtime.
const dailyOvertimeThreshold = 8.0

// PositionCoverage groups one position's share of a summary.
type PositionCoverage struct {
	Hours     float64 `json:"hours"`
	Headcount int     `json:"headcount"`
}

// Summary aggregates hours and cost across a set of shifts. Fields are
// always populated, rounded to 2 decimals; an empty input yields zeroes
// with a nil labor percent.
type Summary struct {
	TotalShifts         int                         `json:"total_shifts"`
	TotalScheduledHours float64                     `json:"total_scheduled_hours"`
	TotalActualHours    float64                     `json:"total_actual_hours"`
	TotalHours          float64                     `json:"total_hours"`
	TotalLaborCost      float64                     `json:"total_labor_cost"`
	OvertimeHours       float64                     `json:"overtime_hours"`
	OpenShifts          int                         `json:"open_shifts"`
	Coverage            map[string]PositionCoverage `json:"coverage"`
	TotalSales          *float64                    `json:"total_sales,omitempty"`
	LaborPercent        *float64                    `json:"labor_percent,omitempty"`
}

// CostForShift prices one shift: worked hours when the shift was clocked,
// otherwise the scheduled hours, times the hourly rate. Unknown rate
// prices at zero.
func CostForShift(sh shift.Shift) float64 {
	if sh.HourlyRate == nil {
		return 0
	}
	return timeclock.Round2(hoursForCost(sh) * *sh.HourlyRate)
}

func hoursForCost(sh shift.Shift) float64 {
	if sh.ActualHours > 0 {
		return sh.ActualHours
	}
	return sh.TotalHours
}

// Summarize folds a set of shifts into a Summary. Cancelled shifts are
// skipped entirely. TotalHours prefers worked hours per shift, matching
// how the shift is priced. Overtime counts worked hours beyond the daily
// threshold, per shift. The labor percent is only computed against a
// positive sales figure.
func Summarize(shifts []shift.Shift, sales *float64) Summary {
	summary := Summary{
		Coverage: make(map[string]PositionCoverage),
	}

	for _, sh := range shifts {
		if sh.Status == shift.StatusCancelled {
			continue
		}

		summary.TotalShifts++
		summary.TotalScheduledHours += sh.TotalHours
		summary.TotalActualHours += sh.ActualHours
		summary.TotalHours += hoursForCost(sh)
		summary.TotalLaborCost += CostForShift(sh)
		if sh.ActualHours > dailyOvertimeThreshold {
			summary.OvertimeHours += sh.ActualHours - dailyOvertimeThreshold
		}
		if sh.Status == shift.StatusOpen {
			summary.OpenShifts++
		}

		cov := summary.Coverage[sh.Position]
		cov.Hours = timeclock.Round2(cov.Hours + hoursForCost(sh))
		cov.Headcount++
		summary.Coverage[sh.Position] = cov
	}

	summary.TotalScheduledHours = timeclock.Round2(summary.TotalScheduledHours)
	summary.TotalActualHours = timeclock.Round2(summary.TotalActualHours)
	summary.TotalHours = timeclock.Round2(summary.TotalHours)
	summary.TotalLaborCost = timeclock.Round2(summary.TotalLaborCost)
	summary.OvertimeHours = timeclock.Round2(summary.OvertimeHours)

	if sales != nil && *sales > 0 {
		summary.TotalSales = sales
		pct := timeclock.Round2(summary.TotalLaborCost / *sales * 100)
		summary.LaborPercent = &pct
	}

	return summary
}
