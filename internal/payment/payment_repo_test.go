package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	paymenterrors "go-erp/internal/payment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func TestRepository_CreateInsideOuterTx(t *testing.T) {
	db, mock := newGormMock(t)
	sqlDB, err := db.DB()
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "payment_sagas"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	assert.NoError(t, err)

	repo := NewRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), &Saga{
		ID:            uuid.New(),
		ContractID:    "c1",
		TransactionID: "t1",
		Amount:        10_000_000,
		ToStatus:      StatusPaid,
		State:         SagaPending,
	})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateState(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE "payment_sagas" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateState(context.Background(), uuid.New(), SagaMatchCreated, SagaUpdate{MatchID: "m1"}))

	mock.ExpectExec(`UPDATE "payment_sagas" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateState(context.Background(), uuid.New(), SagaCompleted, SagaUpdate{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListRecoverable(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "contract_id", "transaction_id", "state", "to_status"}).
		AddRow(id.String(), "c1", "t1", string(SagaCompensationFailed), StatusPaid)
	mock.ExpectQuery(`SELECT \* FROM "payment_sagas" WHERE`).WillReturnRows(rows)

	sagas, err := repo.ListRecoverable(context.Background(), time.Now().Add(-time.Minute), 10)

	assert.NoError(t, err)
	if assert.Len(t, sagas, 1) {
		assert.Equal(t, id, sagas[0].ID)
		assert.Equal(t, SagaCompensationFailed, sagas[0].State)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), paymenterrors.ErrSagaNotFound)
	assert.ErrorIs(t,
		mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: activeTransactionIndex}),
		paymenterrors.ErrMatchInProgress,
	)
	assert.ErrorIs(t,
		mapRepositoryError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_payment_sagas_active_tx"`)),
		paymenterrors.ErrMatchInProgress,
	)

	other := errors.New("connection refused")
	assert.Equal(t, other, mapRepositoryError(other))
}
