package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-erp/internal/apiclient"
	"go-erp/internal/bootstrap"
	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
	paymenterrors "go-erp/internal/payment/errors"
	"go-erp/internal/sepay"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultStaleAfter   = 2 * time.Minute
	DefaultRecoverBatch = 50
)

type Config struct {
	Tolerance     decimal.Decimal
	AccountNumber string
	FeedLimit     int
	StaleAfter    time.Duration
	RecoverBatch  int
}

type RecoveryReport struct {
	Scanned     int `json:"scanned"`
	Completed   int `json:"completed"`
	Compensated int `json:"compensated"`
	Failed      int `json:"failed"`
	Errors      int `json:"errors"`
}

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	UnlinkedTransactions(ctx context.Context) ([]UnlinkedTransaction, error)
	MatchPayment(ctx context.Context, req MatchRequest) (MatchResponse, error)
	GetSaga(ctx context.Context, id string) (SagaResponse, error)
	RecoverSagas(ctx context.Context) (RecoveryReport, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	erp    ERPGateway
	feed   TransactionFeed
	audit  bootstrap.AuditLogger
	cfg    Config
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	erp ERPGateway,
	feed TransactionFeed,
	audit bootstrap.AuditLogger,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	if !cfg.Tolerance.IsPositive() {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	if cfg.RecoverBatch <= 0 {
		cfg.RecoverBatch = DefaultRecoverBatch
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		erp:    erp,
		feed:   feed,
		audit:  audit,
		cfg:    cfg,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) UnlinkedTransactions(ctx context.Context) ([]UnlinkedTransaction, error) {
	var (
		feed    []sepay.Transaction
		matches []TransactionMatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.feed.ListTransactions(gctx, sepay.ListParams{
			AccountNumber: s.cfg.AccountNumber,
			Limit:         s.cfg.FeedLimit,
		})
		feed = txs
		return err
	})
	g.Go(func() error {
		m, err := s.erp.ListMatches(gctx)
		matches = m
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("list unlinked transactions failed", zap.Error(err))
		return nil, err
	}

	linked := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		linked[m.TransactionID] = struct{}{}
	}

	out := make([]UnlinkedTransaction, 0, len(feed))
	for _, tx := range feed {
		if _, ok := linked[tx.ID]; ok {
			continue
		}
		out = append(out, UnlinkedTransaction{
			ID:              tx.ID,
			AmountIn:        tx.AmountIn,
			Content:         tx.Content,
			ReferenceNumber: tx.ReferenceNumber,
			TransactionDate: tx.TransactionDate,
		})
	}
	return out, nil
}

func (s *service) MatchPayment(ctx context.Context, req MatchRequest) (MatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	contract, bankTx, err := s.loadMatchInputs(ctx, req)
	if err != nil {
		return MatchResponse{}, err
	}

	decision, err := Match(contract.TotalAmount, contract.Status, bankTx.AmountIn, s.cfg.Tolerance)
	if err != nil {
		log.Info("payment match rejected",
			zap.String("contract_id", req.ContractID),
			zap.String("transaction_id", req.TransactionID),
			zap.Error(err),
		)
		return MatchResponse{}, mapRuleError(err)
	}

	saga := &Saga{
		ID:            uuid.New(),
		RequestID:     rid,
		ContractID:    contract.ID,
		TransactionID: bankTx.ID,
		Amount:        bankTx.AmountIn,
		MatchKind:     decision.Kind,
		FromStatus:    decision.FromStatus,
		ToStatus:      decision.ToStatus,
		State:         SagaPending,
		RequestedBy:   contextutil.GetUserID(ctx),
	}
	if err := s.repo.Create(ctx, saga); err != nil {
		log.Warn("payment saga journal failed", zap.String("transaction_id", bankTx.ID), zap.Error(err))
		return MatchResponse{}, mapRepositoryError(err)
	}

	match, err := s.erp.CreateMatch(ctx, TransactionMatch{
		ContractID:    contract.ID,
		TransactionID: bankTx.ID,
		Amount:        bankTx.AmountIn,
		Content:       bankTx.Content,
		MatchType:     string(decision.Kind),
	})
	if err != nil {
		if !rejectedByERP(err) {
			// Outcome unknown: the saga stays PENDING and recovery checks the ERP.
			log.Warn("create match outcome unknown", zap.String("saga_id", saga.ID.String()), zap.Error(err))
			return MatchResponse{}, err
		}
		s.transition(context.WithoutCancel(ctx), saga, SagaFailed, SagaUpdate{LastError: err.Error()})
		return MatchResponse{}, err
	}

	// The link exists in the ERP now; finish the saga even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	saga.MatchID = match.ID
	s.transition(ctx, saga, SagaMatchCreated, SagaUpdate{MatchID: match.ID})

	if err := s.erp.UpdateContractStatus(ctx, contract.ID, decision.ToStatus); err != nil {
		if rejectedByERP(err) {
			log.Error("contract status update rejected, compensating",
				zap.String("saga_id", saga.ID.String()),
				zap.String("contract_id", contract.ID),
				zap.Error(err),
			)
			_ = s.compensate(ctx, saga, err)
			return MatchResponse{}, err
		}
		if !s.statusApplied(ctx, contract.ID, decision.ToStatus) {
			// The update may still land; recovery re-reads the contract once the saga is stale.
			log.Warn("contract status update outcome unknown",
				zap.String("saga_id", saga.ID.String()),
				zap.String("contract_id", contract.ID),
				zap.Error(err),
			)
			s.transition(ctx, saga, SagaMatchCreated, SagaUpdate{MatchID: saga.MatchID, LastError: err.Error()})
			return MatchResponse{}, err
		}
	}

	if err := s.complete(ctx, saga); err != nil {
		// The ERP is consistent; recovery completes the journal from MATCH_CREATED.
		log.Error("payment saga completion not journaled",
			zap.String("saga_id", saga.ID.String()),
			zap.Error(err),
		)
	}

	log.Info("payment matched",
		zap.String("saga_id", saga.ID.String()),
		zap.String("contract_id", contract.ID),
		zap.String("transaction_id", bankTx.ID),
		zap.String("to_status", decision.ToStatus),
	)

	return MatchResponse{
		SagaID:        saga.ID.String(),
		ContractID:    contract.ID,
		TransactionID: bankTx.ID,
		MatchID:       match.ID,
		Decision:      decision,
		State:         saga.State,
	}, nil
}

func (s *service) loadMatchInputs(ctx context.Context, req MatchRequest) (Contract, sepay.Transaction, error) {
	var (
		contract Contract
		bankTx   sepay.Transaction
		matches  []TransactionMatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.erp.GetContract(gctx, req.ContractID)
		if apiclient.IsNotFound(err) {
			return paymenterrors.ErrContractNotFound
		}
		contract = c
		return err
	})
	g.Go(func() error {
		tx, err := s.feed.GetTransaction(gctx, req.TransactionID)
		if errors.Is(err, sepay.ErrTransactionNotFound) {
			return paymenterrors.ErrTransactionNotFound
		}
		bankTx = tx
		return err
	})
	g.Go(func() error {
		m, err := s.erp.ListMatches(gctx)
		matches = m
		return err
	})
	if err := g.Wait(); err != nil {
		return Contract{}, sepay.Transaction{}, err
	}

	if contract.ID == "" {
		contract.ID = req.ContractID
	}
	for _, m := range matches {
		if m.TransactionID == bankTx.ID {
			return Contract{}, sepay.Transaction{}, paymenterrors.ErrTransactionAlreadyLinked
		}
	}
	return contract, bankTx, nil
}

// complete marks the saga COMPLETED and queues payment.matched in one DB transaction.
func (s *service) complete(ctx context.Context, saga *Saga) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateState(ctx, saga.ID, SagaCompleted, SagaUpdate{MatchID: saga.MatchID}); err != nil {
		return mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PaymentMatchedEvent{
			EventType:     events.PaymentMatchedEventType,
			RequestID:     saga.RequestID,
			SagaID:        saga.ID.String(),
			ContractID:    saga.ContractID,
			TransactionID: saga.TransactionID,
			MatchID:       saga.MatchID,
			Amount:        saga.Amount,
			FromStatus:    saga.FromStatus,
			ToStatus:      saga.ToStatus,
			OccurredAt:    s.now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     saga.RequestID,
			AggregateType: "contract",
			AggregateID:   saga.ContractID,
			EventType:     event.EventType,
			Topic:         events.PaymentMatchedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	saga.State = SagaCompleted

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "PAYMENT_MATCH_COMPLETED",
		Message: "Bank transaction linked to contract",
		Meta: map[string]any{
			"saga_id":        saga.ID.String(),
			"contract_id":    saga.ContractID,
			"transaction_id": saga.TransactionID,
			"to_status":      saga.ToStatus,
		},
	})
	return nil
}

// compensate deletes the link record created by an unfinished saga. An
// already-deleted link counts as compensated.
func (s *service) compensate(ctx context.Context, saga *Saga, cause error) error {
	if err := s.erp.DeleteMatch(ctx, saga.MatchID); err != nil && !apiclient.IsNotFound(err) {
		s.transition(ctx, saga, SagaCompensationFailed, SagaUpdate{
			LastError:   fmt.Sprintf("%v; compensation: %v", cause, err),
			IncAttempts: true,
		})
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "PAYMENT_MATCH_COMPENSATION_FAILED",
			Message: "Transaction link could not be removed after a failed status update",
			Meta: map[string]any{
				"saga_id":  saga.ID.String(),
				"match_id": saga.MatchID,
				"error":    err.Error(),
			},
		})
		return err
	}

	s.transition(ctx, saga, SagaCompensated, SagaUpdate{LastError: cause.Error()})
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "PAYMENT_MATCH_COMPENSATED",
		Message: "Transaction link removed after a failed status update",
		Meta: map[string]any{
			"saga_id":  saga.ID.String(),
			"match_id": saga.MatchID,
		},
	})
	return nil
}

// transition journals a state change. A journal failure is logged and left
// for recovery; it never masks the ERP outcome.
func (s *service) transition(ctx context.Context, saga *Saga, state SagaState, upd SagaUpdate) {
	if err := s.repo.UpdateState(ctx, saga.ID, state, upd); err != nil {
		s.logger.Error("payment saga state not journaled",
			zap.String("saga_id", saga.ID.String()),
			zap.String("state", string(state)),
			zap.Error(err),
		)
		return
	}
	saga.State = state
}

func (s *service) GetSaga(ctx context.Context, id string) (SagaResponse, error) {
	sagaID, err := uuid.Parse(id)
	if err != nil {
		return SagaResponse{}, paymenterrors.ErrInvalidSagaID
	}
	saga, err := s.repo.FindByID(ctx, sagaID)
	if err != nil {
		return SagaResponse{}, mapRepositoryError(err)
	}
	return toSagaResponse(*saga), nil
}

// RecoverSagas drives unfinished sagas to a terminal state: forward to
// COMPLETED when the contract already carries the target status, otherwise
// back by deleting the link record.
func (s *service) RecoverSagas(ctx context.Context) (RecoveryReport, error) {
	var report RecoveryReport

	sagas, err := s.repo.ListRecoverable(ctx, s.now().Add(-s.cfg.StaleAfter), s.cfg.RecoverBatch)
	if err != nil {
		return report, err
	}
	report.Scanned = len(sagas)
	if len(sagas) == 0 {
		return report, nil
	}

	var matches map[string]string
	for i := range sagas {
		saga := &sagas[i]
		log := s.logger.With(
			zap.String("saga_id", saga.ID.String()),
			zap.String("state", string(saga.State)),
		)

		if saga.MatchID == "" {
			if matches == nil {
				matches, err = s.matchIndex(ctx)
				if err != nil {
					return report, err
				}
			}
			saga.MatchID = matches[saga.TransactionID]
		}

		if saga.MatchID == "" {
			// No link was ever recorded: nothing to undo.
			s.transition(ctx, saga, SagaFailed, SagaUpdate{LastError: "no transaction match recorded"})
			report.Failed++
			continue
		}

		contract, err := s.erp.GetContract(ctx, saga.ContractID)
		if err != nil && !apiclient.IsNotFound(err) {
			log.Warn("saga recovery: contract lookup failed", zap.Error(err))
			report.Errors++
			continue
		}

		if err == nil && contract.Status == saga.ToStatus {
			if err := s.complete(ctx, saga); err != nil {
				log.Error("saga recovery: completion failed", zap.Error(err))
				report.Errors++
				continue
			}
			report.Completed++
			continue
		}

		cause := errors.New("contract status was not updated")
		if saga.LastError != "" {
			cause = errors.New(saga.LastError)
		}
		if err := s.compensate(ctx, saga, cause); err != nil {
			log.Warn("saga recovery: compensation failed", zap.Error(err))
			report.Errors++
			continue
		}
		report.Compensated++
	}

	s.logger.Info("payment saga recovery finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("completed", report.Completed),
		zap.Int("compensated", report.Compensated),
		zap.Int("failed", report.Failed),
		zap.Int("errors", report.Errors),
	)
	return report, nil
}

// statusApplied re-reads the contract after an ambiguous status update.
func (s *service) statusApplied(ctx context.Context, contractID, status string) bool {
	contract, err := s.erp.GetContract(ctx, contractID)
	return err == nil && contract.Status == status
}

func (s *service) matchIndex(ctx context.Context) (map[string]string, error) {
	list, err := s.erp.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(list))
	for _, m := range list {
		idx[m.TransactionID] = m.ID
	}
	return idx, nil
}

// rejectedByERP reports whether the ERP answered with a client error, so
// the write is known not to have happened.
func rejectedByERP(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus >= 400 && appErr.HTTPStatus < 500
}

func mapRuleError(err error) error {
	var mm *MismatchError
	switch {
	case errors.As(err, &mm):
		return paymenterrors.ErrAmountMismatch.WithDetails(map[string]any{
			"amount":  mm.Amount,
			"status":  mm.Status,
			"targets": mm.Targets,
		})
	case errors.Is(err, ErrContractPaid):
		return paymenterrors.ErrContractAlreadyPaid
	case errors.Is(err, ErrInvalidContractAmount):
		return paymenterrors.ErrInvalidContractAmount
	}
	return err
}
