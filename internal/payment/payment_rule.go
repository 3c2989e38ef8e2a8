package payment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusSigned        = "Signed"
	StatusHalfDeposited = "50%-deposited"
	StatusPaid          = "Paid"
)

type MatchKind string

const (
	MatchFull          MatchKind = "full"
	MatchHalf          MatchKind = "half"
	MatchRemainingHalf MatchKind = "remaining_half"
)

var DefaultTolerance = decimal.RequireFromString("0.05")

var (
	ErrContractPaid          = errors.New("contract is already paid")
	ErrInvalidContractAmount = errors.New("contract amount must be positive")
)

// Decision is the accepted transition for one bank transaction.
type Decision struct {
	Kind       MatchKind `json:"kind"`
	Target     int64     `json:"target"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
}

// MismatchError lists every target the amount was compared against.
type MismatchError struct {
	Amount  int64
	Status  string
	Targets []int64
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Targets))
	for i, t := range e.Targets {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return fmt.Sprintf("amount %d matches none of the expected targets [%s]", e.Amount, strings.Join(parts, ", "))
}

// Match decides the contract transition for a transaction amount. A target
// matches when |amount - target| / target is strictly below tolerance.
func Match(contractAmount int64, status string, txAmount int64, tolerance decimal.Decimal) (Decision, error) {
	if contractAmount <= 0 {
		return Decision{}, ErrInvalidContractAmount
	}
	if status == StatusPaid {
		return Decision{}, ErrContractPaid
	}
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}

	full := decimal.NewFromInt(contractAmount)
	half := full.Div(decimal.NewFromInt(2))
	amount := decimal.NewFromInt(txAmount)

	if status == StatusHalfDeposited {
		if within(amount, half, tolerance) {
			return Decision{
				Kind:       MatchRemainingHalf,
				Target:     roundVND(half),
				FromStatus: status,
				ToStatus:   StatusPaid,
			}, nil
		}
		return Decision{}, &MismatchError{Amount: txAmount, Status: status, Targets: []int64{roundVND(half)}}
	}

	if within(amount, full, tolerance) {
		return Decision{Kind: MatchFull, Target: contractAmount, FromStatus: status, ToStatus: StatusPaid}, nil
	}
	if within(amount, half, tolerance) {
		return Decision{Kind: MatchHalf, Target: roundVND(half), FromStatus: status, ToStatus: StatusHalfDeposited}, nil
	}

	return Decision{}, &MismatchError{
		Amount:  txAmount,
		Status:  status,
		Targets: []int64{contractAmount, roundVND(half)},
	}
}

func within(amount, target, tolerance decimal.Decimal) bool {
	return amount.Sub(target).Abs().Div(target).LessThan(tolerance)
}

func roundVND(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
