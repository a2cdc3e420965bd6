package forecasterrors

import (
	"net/http"

	"github.com/justinnewbold/PattyShack-sub001/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrHistoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"no schedule history for that location and date",
		http.StatusNotFound,
	)
)
