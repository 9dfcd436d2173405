package loterrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

const (
	CodeNoSalesFound       = "NO_SALES_FOUND"
	CodeNoCommissionsToPay = "NO_COMMISSIONS_TO_PAY"
)

var (
	ErrLotNotFound = apperror.New(
		apperror.CodeNotFound,
		"Commission lot not found",
		http.StatusNotFound,
	)

	ErrInvalidLotID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid commission lot ID",
		http.StatusBadRequest,
	)

	ErrNoSalesFound = apperror.New(
		CodeNoSalesFound,
		"No approved sales without a lot were found for this period",
		http.StatusNotFound,
	)

	ErrNoCommissionsToPay = apperror.New(
		CodeNoCommissionsToPay,
		"The sales found carry no commission to pay",
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

	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Payment amount must be greater than zero",
		http.StatusBadRequest,
	)

	ErrAmountPrecision = apperror.New(
		apperror.CodeInvalidInput,
		"Payment amount must have at most two decimal places",
		http.StatusBadRequest,
	)

	ErrAmountExceedsBalance = apperror.New(
		apperror.CodeInvalidInput,
		"Payment amount is greater than the outstanding balance",
		http.StatusBadRequest,
	)

	ErrSalesChanged = apperror.New(
		apperror.CodeConflict,
		"Sales of this seller changed while the lot was being closed",
		http.StatusConflict,
	)

	ErrCloseNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to close commission lots",
		http.StatusForbidden,
	)

	ErrPaymentNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to record commission payments",
		http.StatusForbidden,
	)

	ErrAttachNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to attach documents to commission lots",
		http.StatusForbidden,
	)

	ErrDeleteNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can delete commission lots",
		http.StatusForbidden,
	)

	ErrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A file is required",
		http.StatusBadRequest,
	)

	ErrInvalidExportFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Export format must be csv or xlsx",
		http.StatusBadRequest,
	)
)
