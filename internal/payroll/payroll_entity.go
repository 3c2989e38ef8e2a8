package payroll

import (
	"go-erp/internal/taxcalc"

	"github.com/shopspring/decimal"
)

// Payslip statuses as the ERP reports them.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
)

// InsuranceConfig is the ERP's single insurance settings record.
type InsuranceConfig struct {
	ID           string          `json:"id"`
	IsFixed      bool            `json:"isFixed"`
	FixedAmount  int64           `json:"fixedAmount"`
	EmployeeRate decimal.Decimal `json:"employeeRate"`
}

func (c InsuranceConfig) Mode() taxcalc.InsuranceMode {
	return taxcalc.InsuranceMode{Fixed: c.IsFixed, FixedAmount: c.FixedAmount}
}

// SalaryProfile is the employee data a payslip preview can be seeded from.
type SalaryProfile struct {
	EmployeeID      string `json:"employeeId"`
	EmployeeName    string `json:"employeeName,omitempty"`
	BasicSalary     int64  `json:"basicSalary"`
	DependentsCount int64  `json:"dependentsCount"`
	HasCommitment08 bool   `json:"hasCommitment08"`
}

type Payslip struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employeeId"`
	EmployeeCode       string `json:"employeeCode,omitempty"`
	EmployeeName       string `json:"employeeName,omitempty"`
	DepartmentID       string `json:"departmentId,omitempty"`
	Period             string `json:"period"`
	Status             string `json:"status"`
	WorkdaysStandard   int64  `json:"workdaysStandard"`
	WorkdaysActual     int64  `json:"workdaysActual"`
	BasicSalary        int64  `json:"basicSalary"`
	Bonus              int64  `json:"bonus"`
	Penalty            int64  `json:"penalty"`
	GrossIncome        int64  `json:"grossIncome"`
	InsuranceDeduction int64  `json:"insuranceDeduction"`
	AssessableIncome   int64  `json:"assessableIncome"`
	TaxAmount          int64  `json:"taxAmount"`
	NetSalary          int64  `json:"netSalary"`
}
