package customererrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid customer ID",
		http.StatusBadRequest,
	)

	ErrInvalidTaxID = apperror.New(
		apperror.CodeInvalidInput,
		"Tax ID must have 11 (CPF) or 14 (CNPJ) digits",
		http.StatusBadRequest,
	)

	ErrTaxIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Tax ID is required",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"Another customer already uses this email",
		http.StatusConflict,
	)

	ErrTaxIDAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"Another customer already uses this tax ID",
		http.StatusConflict,
	)
)
