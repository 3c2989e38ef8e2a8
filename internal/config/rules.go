package config

import (
	"errors"
	"fmt"
	"os"

	"go-erp/internal/taxcalc"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rules are the business constants the dashboard used to hard-code. They
// default to the values the ERP is known to use and can be overridden from a
// YAML file to stay aligned with the backend.
type Rules struct {
	Tax            taxcalc.Schedule `yaml:"tax"`
	MatchTolerance decimal.Decimal  `yaml:"-"`
}

type rulesFile struct {
	Tax            *taxcalc.Schedule `yaml:"tax"`
	MatchTolerance string            `yaml:"match_tolerance"`
}

var DefaultMatchTolerance = decimal.RequireFromString("0.05")

func DefaultRules() Rules {
	return Rules{
		Tax:            taxcalc.DefaultSchedule(),
		MatchTolerance: DefaultMatchTolerance,
	}
}

// LoadRules returns the defaults when path is empty or the file is missing.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return rules, nil
	}
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	return ParseRules(data)
}

func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	if f.Tax != nil {
		merged := rules.Tax
		if f.Tax.FamilyDeduction != 0 {
			merged.FamilyDeduction = f.Tax.FamilyDeduction
		}
		if f.Tax.DependentDeduction != 0 {
			merged.DependentDeduction = f.Tax.DependentDeduction
		}
		if f.Tax.StandardWorkdays != 0 {
			merged.StandardWorkdays = f.Tax.StandardWorkdays
		}
		if len(f.Tax.Brackets) > 0 {
			merged.Brackets = f.Tax.Brackets
		}
		if err := merged.Validate(); err != nil {
			return Rules{}, fmt.Errorf("invalid tax schedule: %w", err)
		}
		rules.Tax = merged
	}

	if f.MatchTolerance != "" {
		tol, err := decimal.NewFromString(f.MatchTolerance)
		if err != nil {
			return Rules{}, fmt.Errorf("invalid match_tolerance: %w", err)
		}
		if !tol.IsPositive() || tol.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return Rules{}, fmt.Errorf("match_tolerance must be in (0, 1): %s", tol)
		}
		rules.MatchTolerance = tol
	}

	return rules, nil
}
