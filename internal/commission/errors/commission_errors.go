package commissionerrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

var (
	ErrExceptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Commission exception not found",
		http.StatusNotFound,
	)

	ErrExceptionAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An exception already exists for this seller and product",
		http.StatusConflict,
	)

	ErrInvalidExceptionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid commission exception ID",
		http.StatusBadRequest,
	)

	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Commission kind must be P (percentage) or F (fixed)",
		http.StatusBadRequest,
	)

	ErrNegativeValue = apperror.New(
		apperror.CodeInvalidInput,
		"Commission value cannot be negative",
		http.StatusBadRequest,
	)

	ErrSellerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Seller not found",
		http.StatusNotFound,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)
)
