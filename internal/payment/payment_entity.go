package payment

import (
	"time"

	"github.com/google/uuid"
)

type SagaState string

const (
	SagaPending            SagaState = "PENDING"
	SagaMatchCreated       SagaState = "MATCH_CREATED"
	SagaCompleted          SagaState = "COMPLETED"
	SagaFailed             SagaState = "FAILED"
	SagaCompensated        SagaState = "COMPENSATED"
	SagaCompensationFailed SagaState = "COMPENSATION_FAILED"
)

// Terminal states release the bank transaction for another attempt, except
// COMPLETED which keeps it linked.
func (s SagaState) Terminal() bool {
	switch s {
	case SagaCompleted, SagaFailed, SagaCompensated:
		return true
	}
	return false
}

// Saga journals one payment match across the two ERP calls. At most one
// non-released saga exists per bank transaction.
type Saga struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     string
	ContractID    string `gorm:"index;not null"`
	TransactionID string `gorm:"not null;uniqueIndex:uq_payment_sagas_active_tx,where:state <> 'FAILED' AND state <> 'COMPENSATED'"`
	MatchID       string
	Amount        int64     `gorm:"not null"`
	MatchKind     MatchKind `gorm:"type:varchar(32)"`
	FromStatus    string
	ToStatus      string    `gorm:"not null"`
	State         SagaState `gorm:"type:varchar(32);index;not null"`
	Attempts      int       `gorm:"not null"`
	LastError     string
	RequestedBy   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Saga) TableName() string {
	return "payment_sagas"
}
