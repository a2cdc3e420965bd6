package companyerrors

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
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid location id",
		http.StatusBadRequest,
	)
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"location not found",
		http.StatusNotFound,
	)
	ErrLocationNameTaken = apperror.New(
		apperror.CodeConflict,
		"a location with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidTimezone = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timezone",
		http.StatusBadRequest,
	)
)
