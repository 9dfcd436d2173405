package goalerrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

var (
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Sales goal not found",
		http.StatusNotFound,
	)

	ErrInvalidGoalID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid sales goal ID",
		http.StatusBadRequest,
	)

	ErrSellerAndTeam = apperror.New(
		apperror.CodeInvalidInput,
		"A goal is either for a seller or for a team, not both",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must not be after end date",
		http.StatusBadRequest,
	)

	ErrNegativeTarget = apperror.New(
		apperror.CodeInvalidInput,
		"Target must not be negative",
		http.StatusBadRequest,
	)

	ErrSellerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Seller not found",
		http.StatusNotFound,
	)

	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)

	ErrGoalAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A goal with the same period and scope already exists",
		http.StatusConflict,
	)

	ErrManageNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"Only managers can maintain sales goals",
		http.StatusForbidden,
	)
)
