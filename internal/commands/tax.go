package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go-erp/internal/taxcalc"
)

var vnd = message.NewPrinter(language.Vietnamese)

func formatVND(v int64) string {
	return vnd.Sprintf("%d ₫", v)
}

func newTaxCommand(loadRules rulesLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Personal income tax and payslip previews",
	}
	cmd.AddCommand(newTaxPayslipCommand(loadRules))
	cmd.AddCommand(newTaxQuickCommand(loadRules))
	return cmd
}

func newTaxPayslipCommand(loadRules rulesLoader) *cobra.Command {
	var (
		input          taxcalc.SalaryInput
		rate           string
		fixedInsurance int64
	)

	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Run the eight-step payslip chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			input.InsuranceEmployeeRate, err = decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --insurance-rate %q: %w", rate, err)
			}

			mode := taxcalc.InsuranceMode{Fixed: fixedInsurance > 0, FixedAmount: fixedInsurance}
			result := rules.Tax.Calculate(input, mode)
			return writeSteps(cmd.OutOrStdout(), result.Steps())
		},
	}

	f := cmd.Flags()
	f.Int64Var(&input.BasicSalary, "basic", 0, "basic monthly salary (VND)")
	f.Int64Var(&input.WorkdaysStandard, "workdays-standard", 0, "standard workdays, 0 uses the rules default")
	f.Int64Var(&input.WorkdaysActual, "workdays-actual", 0, "days actually worked")
	f.Int64Var(&input.Bonus, "bonus", 0, "bonus (VND)")
	f.Int64Var(&input.Penalty, "penalty", 0, "penalty (VND)")
	f.Int64Var(&input.DependentsCount, "dependents", 0, "registered dependents")
	f.BoolVar(&input.HasCommitment08, "commitment-08", false, "employee filed commitment form 08 (no tax withheld)")
	f.StringVar(&rate, "insurance-rate", "10.5", "employee insurance rate in percent")
	f.Int64Var(&fixedInsurance, "fixed-insurance", 0, "fixed insurance amount; overrides the rate when set")
	_ = cmd.MarkFlagRequired("basic")

	return cmd
}

func newTaxQuickCommand(loadRules rulesLoader) *cobra.Command {
	var c taxcalc.IncomeComponents

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Tax on basic + commission + bonus with only the family deduction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			p := rules.Tax.PreviewIncomeTax(c)
			return writeSteps(cmd.OutOrStdout(), []taxcalc.Step{
				{Name: "gross_income", Value: p.GrossIncome},
				{Name: "family_deduction", Value: p.FamilyDeduction},
				{Name: "taxable_income", Value: p.TaxableIncome},
				{Name: "tax_amount", Value: p.TaxAmount},
			})
		},
	}

	cmd.Flags().Int64Var(&c.Basic, "basic", 0, "basic salary (VND)")
	cmd.Flags().Int64Var(&c.Commission, "commission", 0, "commission (VND)")
	cmd.Flags().Int64Var(&c.Bonus, "bonus", 0, "bonus (VND)")

	return cmd
}

func writeSteps(out io.Writer, steps []taxcalc.Step) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, s := range steps {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", s.Name, formatVND(s.Value)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
