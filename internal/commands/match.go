package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-erp/internal/payment"
)

func newMatchCommand(loadRules rulesLoader) *cobra.Command {
	var (
		contractAmount int64
		status         string
		amount         int64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Check which contract transition a bank transfer amount would trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			decision, err := payment.Match(contractAmount, status, amount, rules.MatchTolerance)
			var mismatch *payment.MismatchError
			if errors.As(err, &mismatch) {
				fmt.Fprintf(out, "no match for %s\n", formatVND(mismatch.Amount))
				for _, t := range mismatch.Targets {
					fmt.Fprintf(out, "  expected about %s\n", formatVND(t))
				}
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s payment of %s: %s -> %s\n",
				decision.Kind, formatVND(decision.Target), decision.FromStatus, decision.ToStatus)
			return nil
		},
	}

	cmd.Flags().Int64Var(&contractAmount, "contract-amount", 0, "contract total (VND)")
	cmd.Flags().StringVar(&status, "status", payment.StatusSigned, "current contract status")
	cmd.Flags().Int64Var(&amount, "amount", 0, "transferred amount (VND)")
	_ = cmd.MarkFlagRequired("contract-amount")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
