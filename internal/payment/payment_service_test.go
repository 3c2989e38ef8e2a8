package payment_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
	kafkaMock "go-erp/internal/messaging/kafka/mock"
	"go-erp/internal/payment"
	paymenterrors "go-erp/internal/payment/errors"
	paymentMock "go-erp/internal/payment/mock"
	"go-erp/internal/sepay"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payment.Service
	repo    *paymentMock.MockRepository
	erp     *paymentMock.MockERPGateway
	feed    *paymentMock.MockTransactionFeed
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := paymentMock.NewMockRepository(ctrl)
	erp := paymentMock.NewMockERPGateway(ctrl)
	feed := paymentMock.NewMockTransactionFeed(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := payment.NewService(db, repo, outboxRepo, erp, feed, nil, payment.Config{AccountNumber: "0123"})

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		erp:     erp,
		feed:    feed,
		outbox:  outboxRepo,
	}
}

var (
	signedContract = payment.Contract{ID: "c1", TotalAmount: 20_000_000, Status: payment.StatusSigned}
	halfTx         = sepay.Transaction{ID: "t1", AmountIn: 10_100_000, Content: "HD c1 coc"}
)

func sessionCtx() context.Context {
	ctx := contextutil.WithSession(context.Background(), contextutil.Session{Token: "tok", UserID: "u1", Role: "accountant"})
	return contextutil.WithRequestID(ctx, "rid-1")
}

func (d *serviceDeps) expectInputs(contract payment.Contract, tx sepay.Transaction, matches []payment.TransactionMatch) {
	d.erp.EXPECT().GetContract(gomock.Any(), contract.ID).Return(contract, nil)
	d.feed.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)
	d.erp.EXPECT().ListMatches(gomock.Any()).Return(matches, nil)
}

func (d *serviceDeps) expectComplete(t *testing.T, contractID string) {
	t.Helper()
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaCompleted, gomock.Any()).Return(nil)
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.PaymentMatchedTopic, e.Topic)
			assert.Equal(t, contractID, e.AggregateID)
			assert.Equal(t, kafka.OutboxStatusPending, e.Status)

			var evt events.PaymentMatchedEvent
			assert.NoError(t, json.Unmarshal(e.Payload, &evt))
			assert.Equal(t, events.PaymentMatchedEventType, evt.EventType)
			return nil
		})
	d.sqlMock.ExpectCommit()
}

func TestPaymentService_MatchPayment(t *testing.T) {
	req := payment.MatchRequest{ContractID: "c1", TransactionID: "t1"}

	t.Run("success - half deposit", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := sessionCtx()

		deps.expectInputs(signedContract, halfTx, []payment.TransactionMatch{{ID: "m0", TransactionID: "other"}})

		var sagaID uuid.UUID
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *payment.Saga) error {
				assert.Equal(t, payment.SagaPending, s.State)
				assert.Equal(t, payment.StatusHalfDeposited, s.ToStatus)
				assert.Equal(t, "u1", s.RequestedBy)
				assert.Equal(t, "rid-1", s.RequestID)
				sagaID = s.ID
				return nil
			})
		deps.erp.EXPECT().
			CreateMatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, m payment.TransactionMatch) (payment.TransactionMatch, error) {
				assert.Equal(t, "c1", m.ContractID)
				assert.Equal(t, int64(10_100_000), m.Amount)
				m.ID = "m1"
				return m, nil
			})
		deps.repo.EXPECT().
			UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, payment.SagaUpdate{MatchID: "m1"}).
			Return(nil)
		deps.erp.EXPECT().UpdateContractStatus(gomock.Any(), "c1", payment.StatusHalfDeposited).Return(nil)
		deps.expectComplete(t, "c1")

		resp, err := deps.service.MatchPayment(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, sagaID.String(), resp.SagaID)
		assert.Equal(t, "m1", resp.MatchID)
		assert.Equal(t, payment.SagaCompleted, resp.State)
		assert.Equal(t, payment.MatchHalf, resp.Decision.Kind)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("status update rejected - link is compensated", func(t *testing.T) {
		deps := setupServiceTest(t)
		statusErr := apperror.Upstream(http.StatusUnprocessableEntity, "Invalid status transition", errors.New("422"))

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{ID: "m1"}, nil)
		deps.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, gomock.Any()).Return(nil)
		deps.erp.EXPECT().UpdateContractStatus(gomock.Any(), "c1", payment.StatusHalfDeposited).Return(statusErr)
		deps.erp.EXPECT().DeleteMatch(gomock.Any(), "m1").Return(nil)
		deps.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaCompensated, gomock.Any()).Return(nil)

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, statusErr)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("compensation fails - left for recovery", func(t *testing.T) {
		deps := setupServiceTest(t)
		statusErr := apperror.Upstream(http.StatusConflict, "", errors.New("409"))

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{ID: "m1"}, nil)
		deps.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, gomock.Any()).Return(nil)
		deps.erp.EXPECT().UpdateContractStatus(gomock.Any(), "c1", gomock.Any()).Return(statusErr)
		deps.erp.EXPECT().DeleteMatch(gomock.Any(), "m1").Return(apperror.Upstream(0, "", errors.New("timeout")))
		deps.repo.EXPECT().
			UpdateState(gomock.Any(), gomock.Any(), payment.SagaCompensationFailed, gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uuid.UUID, state payment.SagaState, upd payment.SagaUpdate) error {
				assert.True(t, upd.IncAttempts)
				assert.Contains(t, upd.LastError, "compensation")
				return nil
			})

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, statusErr)
	})

	t.Run("status update outcome unknown - contract already updated completes", func(t *testing.T) {
		deps := setupServiceTest(t)
		timeout := apperror.Upstream(0, "", errors.New("Client.Timeout exceeded"))

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{ID: "m1"}, nil)
		deps.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, gomock.Any()).Return(nil)
		deps.erp.EXPECT().UpdateContractStatus(gomock.Any(), "c1", payment.StatusHalfDeposited).Return(timeout)
		deps.erp.EXPECT().
			GetContract(gomock.Any(), "c1").
			Return(payment.Contract{ID: "c1", TotalAmount: 20_000_000, Status: payment.StatusHalfDeposited}, nil)
		deps.erp.EXPECT().DeleteMatch(gomock.Any(), gomock.Any()).Times(0)
		deps.expectComplete(t, "c1")

		resp, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.NoError(t, err)
		assert.Equal(t, payment.SagaCompleted, resp.State)
		assert.Equal(t, "m1", resp.MatchID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("status update outcome unknown - link kept for recovery", func(t *testing.T) {
		deps := setupServiceTest(t)
		timeout := apperror.Upstream(0, "", errors.New("Client.Timeout exceeded"))

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{ID: "m1"}, nil)
		deps.repo.EXPECT().
			UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, payment.SagaUpdate{MatchID: "m1"}).
			Return(nil)
		deps.erp.EXPECT().UpdateContractStatus(gomock.Any(), "c1", payment.StatusHalfDeposited).Return(timeout)
		deps.erp.EXPECT().GetContract(gomock.Any(), "c1").Return(signedContract, nil)
		deps.erp.EXPECT().DeleteMatch(gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().
			UpdateState(gomock.Any(), gomock.Any(), payment.SagaMatchCreated, gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uuid.UUID, state payment.SagaState, upd payment.SagaUpdate) error {
				assert.Equal(t, "m1", upd.MatchID)
				assert.Contains(t, upd.LastError, "Client.Timeout")
				return nil
			})

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, timeout)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("amount mismatch shows both targets", func(t *testing.T) {
		deps := setupServiceTest(t)
		tx := sepay.Transaction{ID: "t1", AmountIn: 17_000_000}

		deps.expectInputs(signedContract, tx, nil)

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, paymenterrors.ErrAmountMismatch)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
		details, ok := httpErr.Details.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, []int64{20_000_000, 10_000_000}, details["targets"])
	})

	t.Run("paid contract is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		paid := payment.Contract{ID: "c1", TotalAmount: 20_000_000, Status: payment.StatusPaid}

		deps.expectInputs(paid, halfTx, nil)

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, paymenterrors.ErrContractAlreadyPaid)
	})

	t.Run("transaction already linked", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.expectInputs(signedContract, halfTx, []payment.TransactionMatch{{ID: "m9", TransactionID: "t1"}})

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, paymenterrors.ErrTransactionAlreadyLinked)
	})

	t.Run("concurrent attempt on the same transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_payment_sagas_active_tx"})

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, paymenterrors.ErrMatchInProgress)
	})

	t.Run("contract not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.erp.EXPECT().GetContract(gomock.Any(), "c1").Return(payment.Contract{}, apperror.Upstream(http.StatusNotFound, "", nil))
		deps.feed.EXPECT().GetTransaction(gomock.Any(), "t1").Return(halfTx, nil).AnyTimes()
		deps.erp.EXPECT().ListMatches(gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, paymenterrors.ErrContractNotFound)
	})

	t.Run("create match rejected - saga failed", func(t *testing.T) {
		deps := setupServiceTest(t)
		rejected := apperror.Upstream(http.StatusBadRequest, "contract locked", nil)

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{}, rejected)
		deps.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), payment.SagaFailed, gomock.Any()).Return(nil)

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.ErrorIs(t, err, rejected)
	})

	t.Run("create match outcome unknown - saga stays pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		unknown := apperror.Upstream(0, "", errors.New("connection reset"))

		deps.expectInputs(signedContract, halfTx, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.erp.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(payment.TransactionMatch{}, unknown)

		_, err := deps.service.MatchPayment(sessionCtx(), req)

		assert.Error(t, err)
	})
}

func TestPaymentService_UnlinkedTransactions(t *testing.T) {
	deps := setupServiceTest(t)

	deps.feed.EXPECT().
		ListTransactions(gomock.Any(), sepay.ListParams{AccountNumber: "0123"}).
		Return([]sepay.Transaction{{ID: "t1", AmountIn: 1}, {ID: "t2", AmountIn: 2}, {ID: "t3", AmountIn: 3}}, nil)
	deps.erp.EXPECT().
		ListMatches(gomock.Any()).
		Return([]payment.TransactionMatch{{ID: "m1", TransactionID: "t2"}}, nil)

	got, err := deps.service.UnlinkedTransactions(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "t1", got[0].ID)
		assert.Equal(t, "t3", got[1].ID)
	}
}

func TestPaymentService_UnlinkedTransactions_FeedError(t *testing.T) {
	deps := setupServiceTest(t)
	feedErr := apperror.Upstream(http.StatusBadGateway, "", nil)

	deps.feed.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, feedErr)
	deps.erp.EXPECT().ListMatches(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := deps.service.UnlinkedTransactions(context.Background())

	assert.ErrorIs(t, err, feedErr)
}

func TestPaymentService_GetSaga(t *testing.T) {
	deps := setupServiceTest(t)

	_, err := deps.service.GetSaga(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, paymenterrors.ErrInvalidSagaID)

	missing := uuid.New()
	deps.repo.EXPECT().FindByID(gomock.Any(), missing).Return(nil, gorm.ErrRecordNotFound)
	_, err = deps.service.GetSaga(context.Background(), missing.String())
	assert.ErrorIs(t, err, paymenterrors.ErrSagaNotFound)

	found := payment.Saga{ID: uuid.New(), ContractID: "c1", TransactionID: "t1", State: payment.SagaCompleted}
	deps.repo.EXPECT().FindByID(gomock.Any(), found.ID).Return(&found, nil)
	resp, err := deps.service.GetSaga(context.Background(), found.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, payment.SagaCompleted, resp.State)
}

func TestPaymentService_RecoverSagas(t *testing.T) {
	deps := setupServiceTest(t)

	compFailed := payment.Saga{
		ID: uuid.New(), ContractID: "c1", TransactionID: "t1", MatchID: "m1",
		ToStatus: payment.StatusHalfDeposited, State: payment.SagaCompensationFailed, LastError: "status update failed",
	}
	statusDone := payment.Saga{
		ID: uuid.New(), ContractID: "c2", TransactionID: "t2", MatchID: "m2",
		ToStatus: payment.StatusPaid, State: payment.SagaMatchCreated,
	}
	neverLinked := payment.Saga{
		ID: uuid.New(), ContractID: "c3", TransactionID: "t3",
		ToStatus: payment.StatusPaid, State: payment.SagaPending,
	}

	deps.repo.EXPECT().
		ListRecoverable(gomock.Any(), gomock.Any(), payment.DefaultRecoverBatch).
		DoAndReturn(func(ctx context.Context, staleBefore time.Time, limit int) ([]payment.Saga, error) {
			assert.True(t, staleBefore.Before(time.Now()))
			return []payment.Saga{compFailed, statusDone, neverLinked}, nil
		})

	// compensation retried
	deps.erp.EXPECT().GetContract(gomock.Any(), "c1").Return(payment.Contract{ID: "c1", Status: payment.StatusSigned}, nil)
	deps.erp.EXPECT().DeleteMatch(gomock.Any(), "m1").Return(nil)
	deps.repo.EXPECT().UpdateState(gomock.Any(), compFailed.ID, payment.SagaCompensated, gomock.Any()).Return(nil)

	// status already applied: completed forward
	deps.erp.EXPECT().GetContract(gomock.Any(), "c2").Return(payment.Contract{ID: "c2", Status: payment.StatusPaid}, nil)
	deps.expectComplete(t, "c2")

	// no link ever recorded
	deps.erp.EXPECT().ListMatches(gomock.Any()).Return([]payment.TransactionMatch{{ID: "m7", TransactionID: "other"}}, nil)
	deps.repo.EXPECT().UpdateState(gomock.Any(), neverLinked.ID, payment.SagaFailed, gomock.Any()).Return(nil)

	report, err := deps.service.RecoverSagas(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, payment.RecoveryReport{Scanned: 3, Completed: 1, Compensated: 1, Failed: 1}, report)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
