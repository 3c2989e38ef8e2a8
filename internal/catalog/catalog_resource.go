package catalog

import (
	"go-erp/internal/shared/listing"
)

// Resource describes one ERP collection: where it lives, which RBAC object
// guards it and how its list is searched and filtered.
type Resource[T Record[T]] struct {
	// Name is the RBAC object and the cache namespace.
	Name string
	// Path is the ERP collection path and the gateway route.
	Path string
	Spec listing.Spec[T]
	// Actions are extra POST {path}/{id}/{action} calls the ERP exposes.
	Actions []string
	// Defaults seeds a create form.
	Defaults func() T
}

func (r Resource[T]) FilterKeys() []string {
	keys := make([]string, 0, len(r.Spec.Filters))
	for k := range r.Spec.Filters {
		keys = append(keys, k)
	}
	return keys
}

func (r Resource[T]) hasAction(action string) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func (r Resource[T]) newRecord() T {
	if r.Defaults != nil {
		return r.Defaults()
	}
	var zero T
	return zero
}

var RoleResource = Resource[Role]{
	Name: "role",
	Path: "/roles",
	Spec: listing.Spec[Role]{
		SearchFields: func(r Role) []string { return []string{r.Name, r.Description} },
	},
}

var PositionResource = Resource[Position]{
	Name: "position",
	Path: "/positions",
	Spec: listing.Spec[Position]{
		SearchFields: func(p Position) []string { return []string{p.Name} },
		Filters: map[string]func(Position) string{
			"department_id": func(p Position) string { return p.DepartmentID },
		},
	},
}

var DepartmentResource = Resource[Department]{
	Name: "department",
	Path: "/departments",
	Spec: listing.Spec[Department]{
		SearchFields: func(d Department) []string { return []string{d.Code, d.Name} },
	},
}

var RegionResource = Resource[Region]{
	Name: "region",
	Path: "/regions",
	Spec: listing.Spec[Region]{
		SearchFields: func(r Region) []string { return []string{r.Code, r.Name} },
	},
}

var TaxRateResource = Resource[TaxRate]{
	Name: "tax",
	Path: "/taxes",
	Spec: listing.Spec[TaxRate]{
		SearchFields: func(t TaxRate) []string { return []string{t.Name, t.Description} },
	},
}

var CategoryResource = Resource[Category]{
	Name: "category",
	Path: "/categories",
	Spec: listing.Spec[Category]{
		SearchFields: func(c Category) []string {
			fields := []string{c.Name, c.Description}
			for _, s := range c.Services {
				fields = append(fields, s.Name)
			}
			return fields
		},
	},
}

var KPIResource = Resource[KPI]{
	Name: "kpi",
	Path: "/kpis",
	Spec: listing.Spec[KPI]{
		SearchFields: func(k KPI) []string { return []string{k.Name, k.Unit} },
		Filters: map[string]func(KPI) string{
			"department_id": func(k KPI) string { return k.DepartmentID },
		},
	},
}

var KPIRecordResource = Resource[KPIRecord]{
	Name: "kpi_record",
	Path: "/kpi-records",
	Spec: listing.Spec[KPIRecord]{
		SearchFields: func(k KPIRecord) []string { return []string{k.UserName, k.Note} },
		Filters: map[string]func(KPIRecord) string{
			"department_id": func(k KPIRecord) string { return k.DepartmentID },
			"status":        func(k KPIRecord) string { return k.Status },
			"period":        func(k KPIRecord) string { return k.Period },
		},
	},
	Actions:  []string{"approve"},
	Defaults: func() KPIRecord { return KPIRecord{Status: KPIRecordPending} },
}

var QuoteResource = Resource[Quote]{
	Name: "quote",
	Path: "/quotes",
	Spec: listing.Spec[Quote]{
		SearchFields: func(q Quote) []string { return []string{q.QuoteCode, q.CustomerName} },
		Filters: map[string]func(Quote) string{
			"status": func(q Quote) string { return q.Status },
		},
	},
	Defaults: func() Quote { return Quote{Status: "draft"} },
}

// ContractResource is also the list the payment-matched consumer invalidates.
var ContractResource = Resource[Contract]{
	Name: "contract",
	Path: "/contracts",
	Spec: listing.Spec[Contract]{
		SearchFields: func(c Contract) []string { return []string{c.ContractCode, c.CustomerName} },
		Filters: map[string]func(Contract) string{
			"status": func(c Contract) string { return c.Status },
		},
	},
	Defaults: func() Contract { return Contract{Status: ContractSigned} },
}
