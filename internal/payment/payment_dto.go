package payment

import "time"

type MatchRequest struct {
	ContractID    string `json:"contract_id" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

type MatchResponse struct {
	SagaID        string    `json:"saga_id"`
	ContractID    string    `json:"contract_id"`
	TransactionID string    `json:"transaction_id"`
	MatchID       string    `json:"match_id"`
	Decision      Decision  `json:"decision"`
	State         SagaState `json:"state"`
}

type SagaResponse struct {
	ID            string    `json:"id"`
	ContractID    string    `json:"contract_id"`
	TransactionID string    `json:"transaction_id"`
	MatchID       string    `json:"match_id,omitempty"`
	Amount        int64     `json:"amount"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	State         SagaState `json:"state"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UnlinkedTransaction struct {
	ID              string    `json:"id"`
	AmountIn        int64     `json:"amount_in"`
	Content         string    `json:"content"`
	ReferenceNumber string    `json:"reference_number"`
	TransactionDate time.Time `json:"transaction_date"`
}

// Contract is the slice of the ERP contract record the matcher reads.
type Contract struct {
	ID           string `json:"id"`
	ContractCode string `json:"contractCode"`
	CustomerName string `json:"customerName"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status"`
}

// TransactionMatch is the ERP link record between a bank transaction and a contract.
type TransactionMatch struct {
	ID            string `json:"id,omitempty"`
	ContractID    string `json:"contractId"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Content       string `json:"content,omitempty"`
	MatchType     string `json:"matchType,omitempty"`
}

func toSagaResponse(s Saga) SagaResponse {
	return SagaResponse{
		ID:            s.ID.String(),
		ContractID:    s.ContractID,
		TransactionID: s.TransactionID,
		MatchID:       s.MatchID,
		Amount:        s.Amount,
		FromStatus:    s.FromStatus,
		ToStatus:      s.ToStatus,
		State:         s.State,
		Attempts:      s.Attempts,
		LastError:     s.LastError,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
