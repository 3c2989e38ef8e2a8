package catalog_test

import (
	"testing"

	"go-erp/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordValidate(t *testing.T) {
	cases := []struct {
		name    string
		rec     interface{ Validate() error }
		wantErr string
	}{
		{"role ok", catalog.Role{Name: "Admin"}, ""},
		{"role blank name", catalog.Role{Name: "  "}, "name is required"},
		{"position needs department", catalog.Position{Name: "Dev"}, "departmentId is required"},
		{"tax rate over 100", catalog.TaxRate{Name: "VAT", Rate: decimal.NewFromInt(101)}, "rate is invalid"},
		{"tax rate ok", catalog.TaxRate{Name: "VAT", Rate: decimal.NewFromInt(10)}, ""},
		{"category service price", catalog.Category{Name: "Web", Services: []catalog.CategoryService{{Name: "Landing", Price: 0}}}, "services.price is invalid"},
		{"kpi target must be positive", catalog.KPI{Name: "Leads", DepartmentID: "d-1"}, "target is invalid"},
		{"kpi record period", catalog.KPIRecord{KPIID: "k-1", UserID: "u-1"}, "period is required"},
		{"quote amount", catalog.Quote{QuoteCode: "Q1", CustomerName: "ACME"}, "totalAmount is invalid"},
		{"contract ok", catalog.Contract{ContractCode: "HD001", CustomerName: "ACME", TotalAmount: 20_000_000}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestCategory_StartingPrice(t *testing.T) {
	c := catalog.Category{Services: []catalog.CategoryService{{Price: 5_000_000}, {Price: 2_000_000}, {Price: 9_000_000}}}
	assert.Equal(t, int64(2_000_000), c.StartingPrice())
	assert.Zero(t, catalog.Category{}.StartingPrice())
}
