package paymenterrors

import (
	"net/http"

	"go-erp/internal/shared/apperror"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contract not found",
		http.StatusNotFound,
	)

	ErrTransactionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Bank transaction not found",
		http.StatusNotFound,
	)

	ErrSagaNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payment match not found",
		http.StatusNotFound,
	)

	ErrContractAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Contract is already fully paid",
		http.StatusConflict,
	)

	ErrInvalidContractAmount = apperror.New(
		apperror.CodeInvalidState,
		"Contract has no positive total amount",
		http.StatusUnprocessableEntity,
	)

	ErrAmountMismatch = apperror.New(
		apperror.CodeInvalidState,
		"Transaction amount does not match the contract payment targets",
		http.StatusUnprocessableEntity,
	)

	ErrTransactionAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"Bank transaction is already linked to a contract",
		http.StatusConflict,
	)

	ErrMatchInProgress = apperror.New(
		apperror.CodeConflict,
		"This bank transaction is already being matched",
		http.StatusConflict,
	)

	ErrInvalidSagaID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment match ID",
		http.StatusBadRequest,
	)
)
