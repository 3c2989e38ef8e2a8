package payrollerrors

import (
	"net/http"

	"go-erp/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"salary component values cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidWorkdays = apperror.New(
		apperror.CodeInvalidInput,
		"actual workdays cannot exceed standard workdays",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrInsuranceConfigMissing = apperror.New(
		apperror.CodeNotFound,
		"insurance config is not set up",
		http.StatusNotFound,
	)
	ErrInvalidFixedAmount = apperror.New(
		apperror.CodeInvalidInput,
		"fixed insurance amount must be positive in fixed mode",
		http.StatusBadRequest,
	)
)
