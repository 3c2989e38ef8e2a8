package payroll

import (
	"context"
	"net/http"

	"go-erp/internal/apiclient"
	payrollerrors "go-erp/internal/payroll/errors"
)

type Gateway interface {
	GetInsuranceConfig(ctx context.Context) (InsuranceConfig, error)
	UpdateInsuranceConfig(ctx context.Context, cfg InsuranceConfig) (InsuranceConfig, error)
	GetSalaryProfile(ctx context.Context, employeeID string) (SalaryProfile, error)
	CalculatePayslip(ctx context.Context, req CalculateRequest) (Payslip, error)
	ListPayslips(ctx context.Context) ([]Payslip, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
}

type erpGateway struct {
	client *apiclient.Client
}

func NewGateway(client *apiclient.Client) Gateway {
	return &erpGateway{client: client}
}

// GetInsuranceConfig reads the config collection and uses its first record;
// the ERP keeps exactly one.
func (g *erpGateway) GetInsuranceConfig(ctx context.Context) (InsuranceConfig, error) {
	configs, err := apiclient.GetList[InsuranceConfig](ctx, g.client, "/insurance-config", nil)
	if err != nil {
		return InsuranceConfig{}, err
	}
	if len(configs) == 0 {
		return InsuranceConfig{}, payrollerrors.ErrInsuranceConfigMissing
	}
	return configs[0], nil
}

func (g *erpGateway) UpdateInsuranceConfig(ctx context.Context, cfg InsuranceConfig) (InsuranceConfig, error) {
	return apiclient.Send[InsuranceConfig](ctx, g.client, http.MethodPut, apiclient.ItemPath("/insurance-config", cfg.ID), cfg)
}

func (g *erpGateway) GetSalaryProfile(ctx context.Context, employeeID string) (SalaryProfile, error) {
	return apiclient.GetOne[SalaryProfile](ctx, g.client, apiclient.ItemPath("/employees", employeeID)+"/salary")
}

func (g *erpGateway) CalculatePayslip(ctx context.Context, req CalculateRequest) (Payslip, error) {
	return apiclient.Send[Payslip](ctx, g.client, http.MethodPost, "/payslips/calculate", calculatePayload{
		EmployeeID:       req.EmployeeID,
		Period:           req.Period,
		WorkdaysStandard: req.WorkdaysStandard,
		WorkdaysActual:   req.WorkdaysActual,
		Bonus:            req.Bonus,
		Penalty:          req.Penalty,
	})
}

func (g *erpGateway) ListPayslips(ctx context.Context) ([]Payslip, error) {
	return apiclient.GetList[Payslip](ctx, g.client, "/payslips", nil)
}

func (g *erpGateway) GetPayslip(ctx context.Context, id string) (Payslip, error) {
	return apiclient.GetOne[Payslip](ctx, g.client, apiclient.ItemPath("/payslips", id))
}
