package events

import "time"

const PaymentMatchedTopic = "erp.payment.matched.v1"

const PaymentMatchedEventType = "payment_matched"

// PaymentMatchedEvent is emitted once a bank transaction is linked and the
// contract status has been moved.
type PaymentMatchedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	SagaID        string    `json:"saga_id"`
	ContractID    string    `json:"contract_id"`
	TransactionID string    `json:"transaction_id"`
	MatchID       string    `json:"match_id"`
	Amount        int64     `json:"amount"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
