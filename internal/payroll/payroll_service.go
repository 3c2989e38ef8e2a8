package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-erp/internal/apiclient"
	payrollerrors "go-erp/internal/payroll/errors"
	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/listing"
	"go-erp/internal/taxcalc"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	InsuranceConfigCacheKey = "payroll:insurance_config"
	insuranceConfigTTL      = 5 * time.Minute
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PayslipSpec drives list search and filters for GET /payslips.
var PayslipSpec = listing.Spec[Payslip]{
	SearchFields: func(p Payslip) []string { return []string{p.EmployeeName, p.EmployeeCode} },
	Filters: map[string]func(Payslip) string{
		"department_id": func(p Payslip) string { return p.DepartmentID },
		"status":        func(p Payslip) string { return p.Status },
		"period":        func(p Payslip) string { return p.Period },
	},
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	PreviewTax(ctx context.Context, c taxcalc.IncomeComponents) (taxcalc.TaxPreview, error)
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
	List(ctx context.Context, q listing.Query) (listing.Page[Payslip], error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	PayslipPDF(ctx context.Context, id string) ([]byte, string, error)
	InsuranceConfig(ctx context.Context) (InsuranceConfig, error)
	ToggleInsuranceMode(ctx context.Context, req InsuranceConfigRequest) (InsuranceConfig, error)
}

type service struct {
	gateway  Gateway
	rdb      *redis.Client
	schedule taxcalc.Schedule
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(gateway Gateway, rdb *redis.Client, schedule taxcalc.Schedule, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		gateway:  gateway,
		rdb:      rdb,
		schedule: schedule,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error) {
	cfg, profile, err := s.loadInputs(ctx, req.EmployeeID)
	if err != nil {
		return PreviewResponse{}, err
	}

	input := taxcalc.SalaryInput{
		BasicSalary:           req.BasicSalary,
		WorkdaysStandard:      req.WorkdaysStandard,
		WorkdaysActual:        req.WorkdaysActual,
		Bonus:                 req.Bonus,
		Penalty:               req.Penalty,
		InsuranceEmployeeRate: cfg.EmployeeRate,
		DependentsCount:       req.DependentsCount,
		HasCommitment08:       req.HasCommitment08,
	}
	if profile != nil {
		input.BasicSalary = profile.BasicSalary
		input.DependentsCount = profile.DependentsCount
		input.HasCommitment08 = profile.HasCommitment08
	}
	if req.InsuranceEmployeeRate != nil {
		input.InsuranceEmployeeRate = *req.InsuranceEmployeeRate
	}

	result := s.schedule.Calculate(input, cfg.Mode())
	return PreviewResponse{
		Result:            result,
		Steps:             result.Steps(),
		InsuranceMode:     cfg.Mode(),
		InsuranceReadOnly: cfg.IsFixed,
	}, nil
}

// loadInputs fetches the insurance config and, when employeeID is set, the
// salary profile in parallel. Either failure fails the whole preview.
func (s *service) loadInputs(ctx context.Context, employeeID string) (InsuranceConfig, *SalaryProfile, error) {
	var (
		cfg     InsuranceConfig
		profile *SalaryProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cfg, err = s.InsuranceConfig(gctx)
		return err
	})
	if employeeID = strings.TrimSpace(employeeID); employeeID != "" {
		g.Go(func() error {
			p, err := s.gateway.GetSalaryProfile(gctx, employeeID)
			if err != nil {
				if apiclient.IsNotFound(err) {
					return payrollerrors.ErrInvalidEmployeeID
				}
				return err
			}
			profile = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return InsuranceConfig{}, nil, err
	}
	return cfg, profile, nil
}

// PreviewTax never fails; negative components count as zero.
func (s *service) PreviewTax(_ context.Context, c taxcalc.IncomeComponents) (taxcalc.TaxPreview, error) {
	return s.schedule.PreviewIncomeTax(c), nil
}

func (s *service) Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error) {
	if strings.TrimSpace(req.EmployeeID) == "" {
		return CalculateResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if !periodPattern.MatchString(req.Period) {
		return CalculateResponse{}, payrollerrors.ErrInvalidPeriodFormat
	}
	if err := validateMoney(req.WorkdaysStandard, req.WorkdaysActual, req.Bonus, req.Penalty); err != nil {
		return CalculateResponse{}, err
	}
	if req.WorkdaysStandard > 0 && req.WorkdaysActual > req.WorkdaysStandard {
		return CalculateResponse{}, payrollerrors.ErrInvalidWorkdays
	}

	// The preview is read-only and runs first; a failure there never
	// abandons a payslip write already in flight.
	preview, err := s.Preview(ctx, PreviewRequest{
		EmployeeID:       req.EmployeeID,
		WorkdaysStandard: req.WorkdaysStandard,
		WorkdaysActual:   req.WorkdaysActual,
		Bonus:            req.Bonus,
		Penalty:          req.Penalty,
	})
	if err != nil {
		return CalculateResponse{}, err
	}

	payslip, err := s.gateway.CalculatePayslip(ctx, req)
	if err != nil {
		return CalculateResponse{}, err
	}

	resp := CalculateResponse{
		Payslip:       payslip,
		Preview:       preview.Result,
		NetDifference: payslip.NetSalary - preview.Result.NetSalary,
	}
	resp.Diverges = resp.NetDifference != 0
	if resp.Diverges {
		contextutil.GetLogger(ctx, s.logger).Warn("payslip preview diverges from ERP",
			zap.String("employee_id", req.EmployeeID),
			zap.String("period", req.Period),
			zap.Int64("erp_net", payslip.NetSalary),
			zap.Int64("preview_net", preview.Result.NetSalary),
		)
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[Payslip], error) {
	if period, ok := q.Filters["period"]; ok && !periodPattern.MatchString(period) {
		return listing.Page[Payslip]{}, payrollerrors.ErrInvalidPeriodFormat
	}
	payslips, err := s.gateway.ListPayslips(ctx)
	if err != nil {
		return listing.Page[Payslip]{}, err
	}
	return listing.Apply(payslips, PayslipSpec, q), nil
}

func (s *service) GetByID(ctx context.Context, id string) (Payslip, error) {
	p, err := s.gateway.GetPayslip(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return Payslip{}, payrollerrors.ErrPayslipNotFound
		}
		return Payslip{}, err
	}
	return p, nil
}

// PayslipPDF renders the payslip and returns it with its download filename.
func (s *service) PayslipPDF(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := buildPayslipPDF(p)
	if err != nil {
		return nil, "", err
	}
	return pdf, payslipFilename(p), nil
}

// InsuranceConfig is read through Redis; concurrent misses share one ERP call.
func (s *service) InsuranceConfig(ctx context.Context) (InsuranceConfig, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, InsuranceConfigCacheKey).Result()
		if err == nil {
			var cfg InsuranceConfig
			if err := json.Unmarshal([]byte(cached), &cfg); err == nil {
				return cfg, nil
			}
		} else if err != redis.Nil {
			log.Warn("insurance config cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(InsuranceConfigCacheKey, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		cfg, err := s.gateway.GetInsuranceConfig(ctx)
		if err != nil {
			return nil, err
		}
		s.cacheConfig(ctx, cfg)
		return cfg, nil
	})
	if err != nil {
		return InsuranceConfig{}, err
	}
	return v.(InsuranceConfig), nil
}

func (s *service) ToggleInsuranceMode(ctx context.Context, req InsuranceConfigRequest) (InsuranceConfig, error) {
	if req.IsFixed == nil {
		return InsuranceConfig{}, payrollerrors.ErrInvalidFixedAmount
	}

	current, err := s.gateway.GetInsuranceConfig(ctx)
	if err != nil {
		return InsuranceConfig{}, err
	}

	current.IsFixed = *req.IsFixed
	if req.FixedAmount != nil {
		current.FixedAmount = *req.FixedAmount
	}
	if current.IsFixed && current.FixedAmount <= 0 {
		return InsuranceConfig{}, payrollerrors.ErrInvalidFixedAmount
	}

	updated, err := s.gateway.UpdateInsuranceConfig(ctx, current)
	if err != nil {
		return InsuranceConfig{}, err
	}
	if updated.ID == "" {
		updated = current
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, InsuranceConfigCacheKey).Err(); err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate insurance config cache", zap.Error(err))
		}
	}

	contextutil.GetLogger(ctx, s.logger).Info("insurance mode changed",
		zap.Bool("fixed", updated.IsFixed),
		zap.Int64("fixed_amount", updated.FixedAmount),
	)
	return updated, nil
}

func (s *service) cacheConfig(ctx context.Context, cfg InsuranceConfig) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, InsuranceConfigCacheKey, data, insuranceConfigTTL).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("insurance config cache write failed", zap.Error(err))
	}
}

func validateMoney(values ...int64) error {
	for _, v := range values {
		if v < 0 {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	return nil
}

func payslipFilename(p Payslip) string {
	code := p.EmployeeCode
	if code == "" {
		code = p.EmployeeID
	}
	return fmt.Sprintf("payslip-%s-%s.pdf", code, p.Period)
}
