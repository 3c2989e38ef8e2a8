package payment

import (
	"errors"
	"strings"

	paymenterrors "go-erp/internal/payment/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const activeTransactionIndex = "uq_payment_sagas_active_tx"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paymenterrors.ErrSagaNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == activeTransactionIndex {
			return paymenterrors.ErrMatchInProgress
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, activeTransactionIndex) {
		return paymenterrors.ErrMatchInProgress
	}

	return err
}
