package tradeerrors

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
	ErrTradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift trade not found",
		http.StatusNotFound,
	)
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
	ErrNotShiftOwner = apperror.New(
		apperror.CodeInvalidInput,
		"only the shift's current owner can offer it",
		http.StatusBadRequest,
	)
	ErrRecipientNotCounterpartyOwner = apperror.New(
		apperror.CodeInvalidInput,
		"counterparty shift must belong to the recipient",
		http.StatusBadRequest,
	)
	ErrCounterpartyShiftRequired = apperror.New(
		apperror.CodeInvalidInput,
		"swap trades require a counterparty shift",
		http.StatusBadRequest,
	)
	ErrSelfTrade = apperror.New(
		apperror.CodeInvalidInput,
		"cannot trade a shift with yourself",
		http.StatusBadRequest,
	)
	ErrShiftNotTradeable = apperror.New(
		apperror.CodeInvalidState,
		"shift is not in a tradeable status",
		http.StatusUnprocessableEntity,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"only the recipient can respond to this trade",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel this trade",
		http.StatusForbidden,
	)
	ErrTradeNotPending = apperror.New(
		apperror.CodeInvalidState,
		"trade is no longer pending",
		http.StatusUnprocessableEntity,
	)
	ErrTradeNotAccepted = apperror.New(
		apperror.CodeConflict,
		"trade must be accepted by the recipient before approval",
		http.StatusConflict,
	)
	ErrRecipientConflict = apperror.New(
		apperror.CodeConflict,
		"recipient has a conflicting shift or approved time off",
		http.StatusConflict,
	)
)
