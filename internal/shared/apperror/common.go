package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}

// Upstream builds the error surfaced for a failed ERP call. An empty message
// falls back to the localized generic text.
func Upstream(status int, message string, err error) *AppError {
	if message == "" {
		message = FallbackMessage
	}
	httpStatus := http.StatusBadGateway
	code := CodeUpstreamError
	switch {
	case status == http.StatusNotFound:
		httpStatus, code = http.StatusNotFound, CodeNotFound
	case status == http.StatusUnauthorized:
		httpStatus, code = http.StatusUnauthorized, CodeUnauthorized
	case status == http.StatusForbidden:
		httpStatus, code = http.StatusForbidden, CodeForbidden
	case status == http.StatusConflict:
		httpStatus, code = http.StatusConflict, CodeConflict
	case status >= 400 && status < 500:
		httpStatus, code = http.StatusBadRequest, CodeInvalidInput
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
