package taxcalc

import (
	"github.com/shopspring/decimal"
)

// InsuranceMode comes from the ERP's insurance config record. In fixed mode
// the amount is not derived from salary and the UI shows it read-only.
type InsuranceMode struct {
	Fixed       bool  `json:"fixed"`
	FixedAmount int64 `json:"fixed_amount"`
}

type SalaryInput struct {
	BasicSalary           int64           `json:"basic_salary"`
	WorkdaysStandard      int64           `json:"workdays_standard"`
	WorkdaysActual        int64           `json:"workdays_actual"`
	Bonus                 int64           `json:"bonus"`
	Penalty               int64           `json:"penalty"`
	InsuranceEmployeeRate decimal.Decimal `json:"insurance_employee_rate"`
	DependentsCount       int64           `json:"dependents_count"`
	HasCommitment08       bool            `json:"has_commitment_08"`
}

// sanitized coerces every negative numeric input to zero.
func (in SalaryInput) sanitized() SalaryInput {
	out := in
	out.BasicSalary = nonNegative(in.BasicSalary)
	out.WorkdaysStandard = nonNegative(in.WorkdaysStandard)
	out.WorkdaysActual = nonNegative(in.WorkdaysActual)
	out.Bonus = nonNegative(in.Bonus)
	out.Penalty = nonNegative(in.Penalty)
	out.DependentsCount = nonNegative(in.DependentsCount)
	if in.InsuranceEmployeeRate.IsNegative() {
		out.InsuranceEmployeeRate = decimal.Zero
	}
	return out
}

// SalaryResult is the eight-step chain, each value derived from the previous
// ones and the input only.
type SalaryResult struct {
	StandardWorkdays   int64 `json:"standard_workdays"`
	BaseSalary         int64 `json:"base_salary"`
	SalaryByWorkdays   int64 `json:"salary_by_workdays"`
	GrossIncome        int64 `json:"gross_income"`
	InsuranceDeduction int64 `json:"insurance_deduction"`
	AssessableIncome   int64 `json:"assessable_income"`
	TaxAmount          int64 `json:"tax_amount"`
	NetSalary          int64 `json:"net_salary"`
}

type Step struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

func (r SalaryResult) Steps() []Step {
	return []Step{
		{"standard_workdays", r.StandardWorkdays},
		{"base_salary", r.BaseSalary},
		{"salary_by_workdays", r.SalaryByWorkdays},
		{"gross_income", r.GrossIncome},
		{"insurance_deduction", r.InsuranceDeduction},
		{"assessable_income", r.AssessableIncome},
		{"tax_amount", r.TaxAmount},
		{"net_salary", r.NetSalary},
	}
}

// Insurance returns the employee insurance deduction for one month.
func (s Schedule) Insurance(basic int64, ratePercent decimal.Decimal, mode InsuranceMode) int64 {
	if mode.Fixed {
		return nonNegative(mode.FixedAmount)
	}
	if basic <= 0 || !ratePercent.IsPositive() {
		return 0
	}
	return roundVND(decimal.NewFromInt(basic).Mul(ratePercent).Div(decimal.NewFromInt(100)))
}

func (s Schedule) Calculate(input SalaryInput, mode InsuranceMode) SalaryResult {
	in := input.sanitized()
	var r SalaryResult

	r.StandardWorkdays = in.WorkdaysStandard
	if r.StandardWorkdays == 0 {
		r.StandardWorkdays = s.StandardWorkdays
	}
	if r.StandardWorkdays == 0 {
		r.StandardWorkdays = DefaultStandardWorkdays
	}

	r.BaseSalary = in.BasicSalary

	r.SalaryByWorkdays = roundVND(
		decimal.NewFromInt(r.BaseSalary).
			Mul(decimal.NewFromInt(in.WorkdaysActual)).
			Div(decimal.NewFromInt(r.StandardWorkdays)),
	)

	r.GrossIncome = nonNegative(r.SalaryByWorkdays + in.Bonus - in.Penalty)

	r.InsuranceDeduction = s.Insurance(r.BaseSalary, in.InsuranceEmployeeRate, mode)

	r.AssessableIncome = nonNegative(
		r.GrossIncome - r.InsuranceDeduction - s.FamilyDeduction - in.DependentsCount*s.DependentDeduction,
	)

	if !in.HasCommitment08 {
		r.TaxAmount = s.Tax(r.AssessableIncome)
	}

	r.NetSalary = r.GrossIncome - r.InsuranceDeduction - r.TaxAmount

	return r
}

type IncomeComponents struct {
	Basic      int64 `json:"basic"`
	Commission int64 `json:"commission"`
	Bonus      int64 `json:"bonus"`
}

type TaxPreview struct {
	GrossIncome     int64 `json:"gross_income"`
	FamilyDeduction int64 `json:"family_deduction"`
	TaxableIncome   int64 `json:"taxable_income"`
	TaxAmount       int64 `json:"tax_amount"`
}

// PreviewIncomeTax is the quick form: gross = basic + commission + bonus,
// only the family deduction applies.
func (s Schedule) PreviewIncomeTax(c IncomeComponents) TaxPreview {
	gross := nonNegative(c.Basic) + nonNegative(c.Commission) + nonNegative(c.Bonus)
	taxable := nonNegative(gross - s.FamilyDeduction)
	return TaxPreview{
		GrossIncome:     gross,
		FamilyDeduction: s.FamilyDeduction,
		TaxableIncome:   taxable,
		TaxAmount:       s.Tax(taxable),
	}
}
