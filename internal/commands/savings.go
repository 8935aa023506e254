package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/savings"
)

func newSavingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Savings plan operations",
	}
	cmd.AddCommand(newSavingsStatusCommand())
	cmd.AddCommand(newSavingsAddCommand())
	cmd.AddCommand(newSavingsDepositCommand())
	return cmd
}

func openSavings(dir string) (*ledgerEnv, *savings.Service, error) {
	env, err := openLedger(dir)
	if err != nil {
		return nil, nil, err
	}
	return env, savings.NewService(env.root, env.cfg.Thresholds.OnTrackFactor), nil
}

func newSavingsStatusCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress for every savings plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, svc, err := openSavings(dir)
			if err != nil {
				return err
			}

			statuses, err := svc.Statuses(time.Now())
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Println("No savings plans.")
				return nil
			}

			for _, st := range statuses {
				mark := "on track"
				if !st.Progress.OnTrack {
					mark = "OFF TRACK"
				}
				fmt.Printf("%-20s %s%s / %s%s  %3.0f%% (expected %3.0f%%)  %d day(s) left  [%s]\n",
					st.Plan.Name,
					env.cfg.Profile.Currency, st.Plan.SavedAmount.StringFixed(2),
					env.cfg.Profile.Currency, st.Plan.TargetAmount.StringFixed(2),
					st.Progress.Progress*100, st.Progress.ExpectedProgress*100,
					st.Progress.RemainingDays, mark)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	return cmd
}

func newSavingsAddCommand() *cobra.Command {
	var (
		dir       string
		name      string
		startStr  string
		targetStr string
		amountStr string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := openSavings(dir)
			if err != nil {
				return err
			}

			start := time.Now()
			if startStr != "" {
				start, err = time.Parse("2006-01-02", startStr)
				if err != nil {
					return fmt.Errorf("parsing --start %q: %w", startStr, err)
				}
			}

			target, err := time.Parse("2006-01-02", targetStr)
			if err != nil {
				return fmt.Errorf("parsing --target %q: %w", targetStr, err)
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amountStr, err)
			}

			planID, err := svc.Add(model.SavingsPlan{
				Name:         name,
				StartDate:    start,
				TargetDate:   target,
				TargetAmount: amount,
				SavedAmount:  decimal.Zero,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created savings plan %d: %s\n", planID, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().StringVar(&name, "name", "", "plan name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&targetStr, "target", "", "target date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&amountStr, "amount", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newSavingsDepositCommand() *cobra.Command {
	var dir string
	var amountStr string

	cmd := &cobra.Command{
		Use:   "deposit <plan-id>",
		Short: "Add money to a savings plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := openSavings(dir)
			if err != nil {
				return err
			}

			var planID int
			if _, err := fmt.Sscanf(args[0], "%d", &planID); err != nil {
				return fmt.Errorf("parsing plan ID %q: %w", args[0], err)
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amountStr, err)
			}

			if err := svc.Deposit(planID, amount); err != nil {
				return err
			}

			fmt.Printf("Deposited %s into plan %d\n", amount.StringFixed(2), planID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().StringVar(&amountStr, "amount", "", "deposit amount (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
