package shifterrors

import (
	"net/http"

	"github.com/justinnewbold/PattyShack-sub001/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid location id",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid schedule id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be before end_time on the same day",
		http.StatusBadRequest,
	)
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
	ErrShiftOverlap = apperror.New(
		apperror.CodeConflict,
		"employee already has an overlapping shift on this date",
		http.StatusConflict,
	)
	ErrEmployeeOnTimeOff = apperror.New(
		apperror.CodeConflict,
		"employee has approved time off covering this date",
		http.StatusConflict,
	)
	ErrShiftNotAssigned = apperror.New(
		apperror.CodeInvalidState,
		"shift has no assigned employee",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid shift status transition",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"shift already has a clock-in",
		http.StatusBadRequest,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"shift has no clock-in yet",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"shift already has a clock-out",
		http.StatusBadRequest,
	)
)
