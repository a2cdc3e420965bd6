package scheduleerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid location id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWeekStartNotMonday = apperror.New(
		apperror.CodeInvalidInput,
		"week_start_date must fall on a Monday",
		http.StatusBadRequest,
	)
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"schedule not found",
		http.StatusNotFound,
	)
	ErrDuplicateWeek = apperror.New(
		apperror.CodeConflict,
		"a schedule already exists for this location and week",
		http.StatusConflict,
	)
	ErrScheduleNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"schedule is not in draft status",
		http.StatusUnprocessableEntity,
	)
	ErrScheduleAlreadyPublished = apperror.New(
		apperror.CodeInvalidState,
		"schedule is already published",
		http.StatusUnprocessableEntity,
	)
)
