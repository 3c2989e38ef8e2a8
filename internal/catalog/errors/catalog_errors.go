package catalogerrors

import (
	"net/http"

	"go-erp/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Record not found",
		http.StatusNotFound,
	)

	ErrMissingID = apperror.New(
		apperror.CodeInvalidInput,
		"id is required",
		http.StatusBadRequest,
	)

	ErrUnknownAction = apperror.New(
		apperror.CodeNotFound,
		"Action is not available for this resource",
		http.StatusNotFound,
	)

	ErrFormClosed = apperror.New(
		apperror.CodeInvalidState,
		"Form is not open",
		http.StatusConflict,
	)
)
