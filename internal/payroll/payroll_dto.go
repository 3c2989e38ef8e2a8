package payroll

import (
	"go-erp/internal/taxcalc"

	"github.com/shopspring/decimal"
)

// PreviewRequest carries the form inputs. With EmployeeID set, salary,
// dependents and the commitment flag come from the employee's profile. A nil
// InsuranceEmployeeRate falls back to the configured rate; an explicit 0 is kept.
type PreviewRequest struct {
	EmployeeID            string           `json:"employee_id"`
	BasicSalary           int64            `json:"basic_salary"`
	WorkdaysStandard      int64            `json:"workdays_standard"`
	WorkdaysActual        int64            `json:"workdays_actual"`
	Bonus                 int64            `json:"bonus"`
	Penalty               int64            `json:"penalty"`
	InsuranceEmployeeRate *decimal.Decimal `json:"insurance_employee_rate"`
	DependentsCount       int64            `json:"dependents_count"`
	HasCommitment08       bool             `json:"has_commitment_08"`
}

type PreviewResponse struct {
	Result            taxcalc.SalaryResult  `json:"result"`
	Steps             []taxcalc.Step        `json:"steps"`
	InsuranceMode     taxcalc.InsuranceMode `json:"insurance_mode"`
	InsuranceReadOnly bool                  `json:"insurance_read_only"`
}

type CalculateRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required"`
	Period           string `json:"period" binding:"required"`
	WorkdaysStandard int64  `json:"workdays_standard"`
	WorkdaysActual   int64  `json:"workdays_actual" binding:"required"`
	Bonus            int64  `json:"bonus"`
	Penalty          int64  `json:"penalty"`
}

// calculatePayload is the ERP's body for POST /payslips/calculate.
type calculatePayload struct {
	EmployeeID       string `json:"employeeId"`
	Period           string `json:"period"`
	WorkdaysStandard int64  `json:"workdaysStandard"`
	WorkdaysActual   int64  `json:"workdaysActual"`
	Bonus            int64  `json:"bonus"`
	Penalty          int64  `json:"penalty"`
}

// CalculateResponse pairs the ERP's payslip with the local preview. When the
// net salaries differ Diverges is set instead of either number being hidden.
type CalculateResponse struct {
	Payslip       Payslip              `json:"payslip"`
	Preview       taxcalc.SalaryResult `json:"preview"`
	Diverges      bool                 `json:"diverges"`
	NetDifference int64                `json:"net_difference"`
}

type InsuranceConfigRequest struct {
	IsFixed     *bool  `json:"is_fixed" binding:"required"`
	FixedAmount *int64 `json:"fixed_amount"`
}
