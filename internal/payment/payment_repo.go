package payment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SagaUpdate carries the columns written together with a state change.
type SagaUpdate struct {
	MatchID     string
	LastError   string
	IncAttempts bool
}

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, saga *Saga) error
	FindByID(ctx context.Context, id uuid.UUID) (*Saga, error)
	UpdateState(ctx context.Context, id uuid.UUID, state SagaState, upd SagaUpdate) error
	ListRecoverable(ctx context.Context, staleBefore time.Time, limit int) ([]Saga, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the outer *sql.Tx when one is attached so
// the saga row and its outbox event commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, saga *Saga) error {
	return r.conn(ctx).Create(saga).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Saga, error) {
	var saga Saga
	err := r.conn(ctx).First(&saga, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &saga, nil
}

func (r *repository) UpdateState(ctx context.Context, id uuid.UUID, state SagaState, upd SagaUpdate) error {
	changes := map[string]any{
		"state":      state,
		"last_error": upd.LastError,
	}
	if upd.MatchID != "" {
		changes["match_id"] = upd.MatchID
	}
	if upd.IncAttempts {
		changes["attempts"] = gorm.Expr("attempts + 1")
	}

	res := r.conn(ctx).Model(&Saga{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRecoverable returns failed compensations plus in-flight sagas that
// have not moved since staleBefore, oldest first.
func (r *repository) ListRecoverable(ctx context.Context, staleBefore time.Time, limit int) ([]Saga, error) {
	var sagas []Saga
	err := r.conn(ctx).
		Where("state = ? OR (state IN ? AND updated_at < ?)",
			SagaCompensationFailed, []SagaState{SagaPending, SagaMatchCreated}, staleBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&sagas).Error
	return sagas, err
}
