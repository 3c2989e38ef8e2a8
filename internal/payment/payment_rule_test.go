package payment_test

import (
	"errors"
	"testing"

	"go-erp/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var tol = payment.DefaultTolerance

func TestMatch_Examples(t *testing.T) {
	t.Run("just over half deposits 50%", func(t *testing.T) {
		d, err := payment.Match(20_000_000, payment.StatusSigned, 10_100_000, tol)
		assert.NoError(t, err)
		assert.Equal(t, payment.MatchHalf, d.Kind)
		assert.Equal(t, payment.StatusHalfDeposited, d.ToStatus)
		assert.Equal(t, int64(10_000_000), d.Target)
	})

	t.Run("close to full pays", func(t *testing.T) {
		d, err := payment.Match(20_000_000, payment.StatusSigned, 19_500_000, tol)
		assert.NoError(t, err)
		assert.Equal(t, payment.MatchFull, d.Kind)
		assert.Equal(t, payment.StatusPaid, d.ToStatus)
	})

	t.Run("no match lists both targets", func(t *testing.T) {
		_, err := payment.Match(20_000_000, payment.StatusSigned, 17_000_000, tol)
		var mm *payment.MismatchError
		assert.True(t, errors.As(err, &mm))
		assert.Equal(t, []int64{20_000_000, 10_000_000}, mm.Targets)
		assert.Contains(t, err.Error(), "20000000")
		assert.Contains(t, err.Error(), "10000000")
	})
}

func TestMatch_HalfDeposited(t *testing.T) {
	d, err := payment.Match(20_000_000, payment.StatusHalfDeposited, 9_800_000, tol)
	assert.NoError(t, err)
	assert.Equal(t, payment.MatchRemainingHalf, d.Kind)
	assert.Equal(t, payment.StatusPaid, d.ToStatus)

	// the full amount is no longer acceptable once half is deposited
	_, err = payment.Match(20_000_000, payment.StatusHalfDeposited, 20_000_000, tol)
	var mm *payment.MismatchError
	assert.True(t, errors.As(err, &mm))
	assert.Equal(t, []int64{10_000_000}, mm.Targets)
}

func TestMatch_Rejections(t *testing.T) {
	_, err := payment.Match(20_000_000, payment.StatusPaid, 20_000_000, tol)
	assert.ErrorIs(t, err, payment.ErrContractPaid)

	_, err = payment.Match(0, payment.StatusSigned, 100, tol)
	assert.ErrorIs(t, err, payment.ErrInvalidContractAmount)

	_, err = payment.Match(20_000_000, payment.StatusSigned, 0, tol)
	var mm *payment.MismatchError
	assert.True(t, errors.As(err, &mm))
}

func TestMatch_ToleranceWindow(t *testing.T) {
	const c = int64(100_000_000)

	for _, amount := range []int64{95_100_000, 99_000_000, 100_000_000, 104_900_000} {
		d, err := payment.Match(c, payment.StatusSigned, amount, tol)
		assert.NoError(t, err, "amount %d", amount)
		assert.Equal(t, payment.MatchFull, d.Kind, "amount %d", amount)
	}

	for _, amount := range []int64{47_600_000, 52_400_000} {
		d, err := payment.Match(c, payment.StatusSigned, amount, tol)
		assert.NoError(t, err, "amount %d", amount)
		assert.Equal(t, payment.MatchHalf, d.Kind, "amount %d", amount)
	}

	// the bound itself is excluded, as is everything outside both windows
	for _, amount := range []int64{95_000_000, 105_000_000, 47_500_000, 52_500_000, 70_000_000, 1} {
		_, err := payment.Match(c, payment.StatusSigned, amount, tol)
		assert.Error(t, err, "amount %d", amount)
	}
}

func TestMatch_CustomTolerance(t *testing.T) {
	strict := decimal.RequireFromString("0.01")

	_, err := payment.Match(20_000_000, payment.StatusSigned, 19_500_000, strict)
	assert.Error(t, err)

	d, err := payment.Match(20_000_000, payment.StatusSigned, 19_900_000, strict)
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, d.ToStatus)
}
