package saleerrors

import (
	"net/http"

	"go-commission/internal/shared/apperror"
)

var (
	ErrSaleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Sale not found",
		http.StatusNotFound,
	)

	ErrInvalidSaleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid sale ID",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Monetary values and installment count cannot be negative",
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

	ErrNoStatusChange = apperror.New(
		apperror.CodeInvalidInput,
		"At least one status must be provided",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown status value",
		http.StatusBadRequest,
	)

	ErrStatusNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to change this status",
		http.StatusForbidden,
	)

	ErrCommissionSummaryNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to view commission figures",
		http.StatusForbidden,
	)

	ErrEditNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to edit this sale",
		http.StatusForbidden,
	)

	ErrManualCommissionNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"Only managers can set a manual commission",
		http.StatusForbidden,
	)

	ErrInvalidAttachmentKind = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment kind must be receipt, contract or invoice",
		http.StatusBadRequest,
	)

	ErrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A file is required",
		http.StatusBadRequest,
	)

	ErrAttachmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attachment not found",
		http.StatusNotFound,
	)

	ErrUploadNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to upload this kind of attachment",
		http.StatusForbidden,
	)

	ErrDeleteAttachmentNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to delete this attachment",
		http.StatusForbidden,
	)

	ErrInvalidExportFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Export format must be csv or xlsx",
		http.StatusBadRequest,
	)
)
