package catalog

import (
	"strings"

	"go-erp/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

// Record is one ERP catalog entity. WithID returns a copy carrying id, which
// lets generic code bind path ids without reflection.
type Record[T any] interface {
	RecordID() string
	Validate() error
	WithID(id string) T
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.RequiredField(field)
	}
	return nil
}

func positive(field string, v int64) error {
	if v <= 0 {
		return apperror.InvalidField(field)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type Role struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r Role) RecordID() string      { return r.ID }
func (r Role) WithID(id string) Role { r.ID = id; return r }
func (r Role) Validate() error       { return required("name", r.Name) }

type Position struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	Description  string `json:"description,omitempty"`
}

func (p Position) RecordID() string          { return p.ID }
func (p Position) WithID(id string) Position { p.ID = id; return p }
func (p Position) Validate() error {
	return firstErr(required("name", p.Name), required("departmentId", p.DepartmentID))
}

type Department struct {
	ID          string `json:"id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ManagerID   string `json:"managerId,omitempty"`
	Description string `json:"description,omitempty"`
}

func (d Department) RecordID() string            { return d.ID }
func (d Department) WithID(id string) Department { d.ID = id; return d }
func (d Department) Validate() error {
	return firstErr(required("code", d.Code), required("name", d.Name))
}

type Region struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r Region) RecordID() string        { return r.ID }
func (r Region) WithID(id string) Region { r.ID = id; return r }
func (r Region) Validate() error {
	return firstErr(required("code", r.Code), required("name", r.Name))
}

// TaxRate is a VAT-style rate applied on quotes, in percent.
type TaxRate struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description,omitempty"`
}

func (t TaxRate) RecordID() string         { return t.ID }
func (t TaxRate) WithID(id string) TaxRate { t.ID = id; return t }
func (t TaxRate) Validate() error {
	if err := required("name", t.Name); err != nil {
		return err
	}
	if t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.InvalidField("rate")
	}
	return nil
}

type CategoryService struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description,omitempty"`
}

type CategoryAddon struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Category groups sellable services and their optional add-ons.
type Category struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Services    []CategoryService `json:"services,omitempty"`
	Addons      []CategoryAddon   `json:"addons,omitempty"`
}

func (c Category) RecordID() string          { return c.ID }
func (c Category) WithID(id string) Category { c.ID = id; return c }
func (c Category) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	for _, s := range c.Services {
		if err := firstErr(required("services.name", s.Name), positive("services.price", s.Price)); err != nil {
			return err
		}
	}
	for _, a := range c.Addons {
		if err := firstErr(required("addons.name", a.Name), positive("addons.price", a.Price)); err != nil {
			return err
		}
	}
	return nil
}

// StartingPrice is the cheapest service, shown on the category card.
func (c Category) StartingPrice() int64 {
	var lowest int64
	for _, s := range c.Services {
		if lowest == 0 || s.Price < lowest {
			lowest = s.Price
		}
	}
	return lowest
}

type KPI struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	DepartmentID string          `json:"departmentId"`
	Unit         string          `json:"unit,omitempty"`
	Target       decimal.Decimal `json:"target"`
	Weight       decimal.Decimal `json:"weight"`
}

func (k KPI) RecordID() string     { return k.ID }
func (k KPI) WithID(id string) KPI { k.ID = id; return k }
func (k KPI) Validate() error {
	if err := firstErr(required("name", k.Name), required("departmentId", k.DepartmentID)); err != nil {
		return err
	}
	if !k.Target.IsPositive() {
		return apperror.InvalidField("target")
	}
	return nil
}

const (
	KPIRecordPending  = "pending"
	KPIRecordApproved = "approved"
	KPIRecordRejected = "rejected"
)

// KPIRecord is one measured value of a KPI for a user and period (YYYY-MM).
type KPIRecord struct {
	ID           string          `json:"id,omitempty"`
	KPIID        string          `json:"kpiId"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName,omitempty"`
	DepartmentID string          `json:"departmentId"`
	Period       string          `json:"period"`
	Value        decimal.Decimal `json:"value"`
	Status       string          `json:"status,omitempty"`
	Note         string          `json:"note,omitempty"`
}

func (k KPIRecord) RecordID() string           { return k.ID }
func (k KPIRecord) WithID(id string) KPIRecord { k.ID = id; return k }
func (k KPIRecord) Validate() error {
	return firstErr(
		required("kpiId", k.KPIID),
		required("userId", k.UserID),
		required("period", k.Period),
	)
}

type Quote struct {
	ID           string `json:"id,omitempty"`
	QuoteCode    string `json:"quoteCode"`
	CustomerName string `json:"customerName"`
	CategoryID   string `json:"categoryId,omitempty"`
	TaxRateID    string `json:"taxRateId,omitempty"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status,omitempty"`
	ValidUntil   string `json:"validUntil,omitempty"`
}

func (q Quote) RecordID() string       { return q.ID }
func (q Quote) WithID(id string) Quote { q.ID = id; return q }
func (q Quote) Validate() error {
	return firstErr(
		required("quoteCode", q.QuoteCode),
		required("customerName", q.CustomerName),
		positive("totalAmount", q.TotalAmount),
	)
}

// Contract statuses driven by payment matching.
const (
	ContractSigned        = "Signed"
	ContractHalfDeposited = "50%-deposited"
	ContractPaid          = "Paid"
)

type Contract struct {
	ID           string `json:"id,omitempty"`
	ContractCode string `json:"contractCode"`
	CustomerName string `json:"customerName"`
	QuoteID      string `json:"quoteId,omitempty"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status,omitempty"`
	SignedAt     string `json:"signedAt,omitempty"`
}

func (c Contract) RecordID() string          { return c.ID }
func (c Contract) WithID(id string) Contract { c.ID = id; return c }
func (c Contract) Validate() error {
	return firstErr(
		required("contractCode", c.ContractCode),
		required("customerName", c.CustomerName),
		positive("totalAmount", c.TotalAmount),
	)
}
