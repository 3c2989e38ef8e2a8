// Package commands implements erpctl, an offline companion to the gateway
// that runs the payslip and payment-matching rules without an ERP backend.
package commands

import (
	"github.com/spf13/cobra"

	"go-erp/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var rulesPath string

	rootCmd := &cobra.Command{
		Use:   "erpctl",
		Short: "Preview payslips and check payment matches offline",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "config/rules.yaml", "business rules file")

	loadRules := func() (config.Rules, error) {
		return config.LoadRules(rulesPath)
	}

	rootCmd.AddCommand(newTaxCommand(loadRules))
	rootCmd.AddCommand(newMatchCommand(loadRules))

	return rootCmd
}

type rulesLoader func() (config.Rules, error)
