package producterrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product ID",
		http.StatusBadRequest,
	)

	ErrProductAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Product with the same name already exists",
		http.StatusConflict,
	)

	ErrProductInUse = apperror.New(
		apperror.CodeConflict,
		"Product is referenced by sales or commission exceptions",
		http.StatusConflict,
	)

	ErrInvalidCommissionKind = apperror.New(
		apperror.CodeInvalidInput,
		"Commission kind must be P (percentage) or F (fixed)",
		http.StatusBadRequest,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Monetary values cannot be negative",
		http.StatusBadRequest,
	)
)
