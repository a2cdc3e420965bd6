package labor

import (
	"testing"

	"github.com/justinnewbold/PattyShack-sub001/internal/shift"

	"github.com/stretchr/testify/assert"
)

func rate(v float64) *float64 { return &v }

func TestCostForShift(t *testing.T) {
	// Scheduled hours price the shift until it has been worked
	scheduled := shift.Shift{TotalHours: 8, HourlyRate: rate(15)}
	assert.Equal(t, 120.0, CostForShift(scheduled))

	// Worked hours take over once clocked, even when shorter
	worked := shift.Shift{TotalHours: 8, ActualHours: 6.5, HourlyRate: rate(15)}
	assert.Equal(t, 97.5, CostForShift(worked))

	// No rate on file prices at zero rather than guessing
	unrated := shift.Shift{TotalHours: 8, ActualHours: 8}
	assert.Equal(t, 0.0, CostForShift(unrated))
}

func TestSummarize_Totals(t *testing.T) {
	shifts := []shift.Shift{
		{Position: "grill", Status: shift.StatusCompleted, TotalHours: 8, ActualHours: 9.5, HourlyRate: rate(18)},
		{Position: "grill", Status: shift.StatusScheduled, TotalHours: 6, HourlyRate: rate(18)},
		{Position: "register", Status: shift.StatusOpen, TotalHours: 4},
		{Position: "register", Status: shift.StatusCancelled, TotalHours: 8, HourlyRate: rate(20)},
	}

	summary := Summarize(shifts, nil)

	// Cancelled shift contributes nothing anywhere
	assert.Equal(t, 3, summary.TotalShifts)
	assert.Equal(t, 18.0, summary.TotalScheduledHours)
	assert.Equal(t, 9.5, summary.TotalActualHours)
	// Worked hours replace scheduled hours per shift: 9.5 + 6 + 4
	assert.Equal(t, 19.5, summary.TotalHours)
	// 9.5*18 + 6*18 + 0
	assert.Equal(t, 279.0, summary.TotalLaborCost)
	// Only the 9.5h shift crosses the daily line
	assert.Equal(t, 1.5, summary.OvertimeHours)
	assert.Equal(t, 1, summary.OpenShifts)

	assert.Equal(t, PositionCoverage{Hours: 15.5, Headcount: 2}, summary.Coverage["grill"])
	assert.Equal(t, PositionCoverage{Hours: 4, Headcount: 1}, summary.Coverage["register"])

	assert.Nil(t, summary.TotalSales)
	assert.Nil(t, summary.LaborPercent)
}

func TestSummarize_LaborPercent(t *testing.T) {
	shifts := []shift.Shift{
		{Position: "grill", Status: shift.StatusScheduled, TotalHours: 10, HourlyRate: rate(15)},
	}

	sales := 600.0
	summary := Summarize(shifts, &sales)

	assert.NotNil(t, summary.LaborPercent)
	assert.Equal(t, 25.0, *summary.LaborPercent)
	assert.Equal(t, &sales, summary.TotalSales)

	// Zero sales means the ratio is undefined, not zero
	none := 0.0
	summary = Summarize(shifts, &none)
	assert.Nil(t, summary.LaborPercent)
	assert.Nil(t, summary.TotalSales)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)

	assert.Zero(t, summary.TotalShifts)
	assert.Zero(t, summary.TotalScheduledHours)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.TotalLaborCost)
	assert.Zero(t, summary.OvertimeHours)
	assert.Empty(t, summary.Coverage)
	assert.Nil(t, summary.LaborPercent)
}
