// Package taxcalc computes the payslip preview: insurance deduction and
// Vietnamese progressive personal income tax. The ERP backend recomputes
// authoritatively; results here are for display.
package taxcalc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultFamilyDeduction    int64 = 11_000_000
	DefaultDependentDeduction int64 = 4_400_000
	DefaultStandardWorkdays   int64 = 26
)

// Bracket is one step of the monthly schedule. UpTo is the cumulative upper
// bound of taxable income; 0 marks the open-ended top bracket.
type Bracket struct {
	UpTo        int64 `json:"up_to" yaml:"up_to"`
	RatePercent int64 `json:"rate_percent" yaml:"rate_percent"`
}

type Schedule struct {
	FamilyDeduction    int64     `json:"family_deduction" yaml:"family_deduction"`
	DependentDeduction int64     `json:"dependent_deduction" yaml:"dependent_deduction"`
	StandardWorkdays   int64     `json:"standard_workdays" yaml:"standard_workdays"`
	Brackets           []Bracket `json:"brackets" yaml:"brackets"`
}

func DefaultBrackets() []Bracket {
	return []Bracket{
		{UpTo: 5_000_000, RatePercent: 5},
		{UpTo: 10_000_000, RatePercent: 10},
		{UpTo: 18_000_000, RatePercent: 15},
		{UpTo: 32_000_000, RatePercent: 20},
		{UpTo: 52_000_000, RatePercent: 25},
		{UpTo: 80_000_000, RatePercent: 30},
		{UpTo: 0, RatePercent: 35},
	}
}

func DefaultSchedule() Schedule {
	return Schedule{
		FamilyDeduction:    DefaultFamilyDeduction,
		DependentDeduction: DefaultDependentDeduction,
		StandardWorkdays:   DefaultStandardWorkdays,
		Brackets:           DefaultBrackets(),
	}
}

var (
	ErrNoBrackets       = errors.New("tax schedule has no brackets")
	ErrOpenBracketLast  = errors.New("only the last tax bracket may be open-ended")
	ErrMissingOpenEnded = errors.New("last tax bracket must be open-ended")
)

func (s Schedule) Validate() error {
	if len(s.Brackets) == 0 {
		return ErrNoBrackets
	}
	if s.FamilyDeduction < 0 || s.DependentDeduction < 0 || s.StandardWorkdays < 0 {
		return errors.New("deductions and workdays must be non-negative")
	}

	var prev int64
	for i, b := range s.Brackets {
		if b.RatePercent < 0 || b.RatePercent > 100 {
			return fmt.Errorf("bracket %d: rate out of range: %d", i, b.RatePercent)
		}
		last := i == len(s.Brackets)-1
		if b.UpTo == 0 {
			if !last {
				return ErrOpenBracketLast
			}
			continue
		}
		if last {
			return ErrMissingOpenEnded
		}
		if b.UpTo <= prev {
			return fmt.Errorf("bracket %d: thresholds must be strictly increasing", i)
		}
		prev = b.UpTo
	}
	return nil
}

// Tax walks the brackets left to right: every fully filled lower bracket
// contributes its width times its rate, the current one the remainder.
func (s Schedule) Tax(taxable int64) int64 {
	if taxable <= 0 {
		return 0
	}

	total := decimal.Zero
	var prev int64
	for _, b := range s.Brackets {
		upper := b.UpTo
		if upper == 0 || taxable <= upper {
			total = total.Add(percentOf(taxable-prev, b.RatePercent))
			break
		}
		total = total.Add(percentOf(upper-prev, b.RatePercent))
		prev = upper
	}

	return roundVND(total)
}

// CumulativeTaxAt is the tax owed exactly at the upper bound of bracket i,
// the sum of all fully filled brackets up to and including i.
func (s Schedule) CumulativeTaxAt(i int) int64 {
	total := decimal.Zero
	var prev int64
	for j := 0; j <= i && j < len(s.Brackets); j++ {
		b := s.Brackets[j]
		if b.UpTo == 0 {
			break
		}
		total = total.Add(percentOf(b.UpTo-prev, b.RatePercent))
		prev = b.UpTo
	}
	return roundVND(total)
}

func percentOf(amount, ratePercent int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(ratePercent)).Div(decimal.NewFromInt(100))
}

// roundVND rounds half away from zero to whole đồng.
func roundVND(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
